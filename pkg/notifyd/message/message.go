// Package message defines the notification payload shape that the core
// hands to an external delivery service, and the small builder API used to
// construct structured detail bodies. It plays the role of the opaque
// rnotifylib collaborator referenced by the specification: the scheduling
// core only ever calls through the Level/Component/Message/MessageDetail
// types defined here, never a concrete delivery backend.
package message

import "fmt"

// Level is the notification severity, driving how a backend renders color
// and urgency.
type Level string

const (
	LevelInfo      Level = "info"
	LevelError     Level = "error"
	LevelSelfError Level = "self_error"
)

// Component identifies the subsystem a notification is about (e.g. "ping",
// "backups"). Free-form, operator-assigned.
type Component string

// Message is the payload forwarded to a Deliverer.
type Message struct {
	Level     Level
	Title     string
	Detail    MessageDetail
	Component Component
	Author    string
	// UnixMillis is milliseconds since the Unix epoch, matching the
	// timestamp precision rnotifyd's author used.
	UnixMillis int64
}

// Style marks how a span of text should be rendered.
type Style int

const (
	StylePlain Style = iota
	StyleMonospace
)

// Span is one piece of styled text within a Section.
type Span struct {
	Text  string
	Style Style
}

// Section is a titled group of spans within a Formatted detail.
type Section struct {
	Title string
	Spans []Span
}

// ElementKind discriminates the two kinds of element a Formatted detail can
// hold, in order.
type ElementKind int

const (
	ElementText ElementKind = iota
	ElementSection
)

// Element is one ordered piece of a Formatted detail: either a loose line of
// text or a titled Section.
type Element struct {
	Kind    ElementKind
	Text    string
	Section Section
}

// DetailShape discriminates the two MessageDetail shapes.
type DetailShape int

const (
	ShapeRaw DetailShape = iota
	ShapeFormatted
)

// MessageDetail is the structured body of a notification. A Raw detail is
// just a string; a Formatted detail carries a raw fallback plus an ordered
// list of elements for backends that can render rich structure.
type MessageDetail struct {
	Shape    DetailShape
	Raw      string
	Elements []Element
}

// Fallback returns the plain-text rendering used by backends (or log lines)
// that cannot render structured elements.
func (d MessageDetail) Fallback() string {
	return d.Raw
}

// NewRaw builds a Raw-shaped detail.
func NewRaw(s string) MessageDetail {
	return MessageDetail{Shape: ShapeRaw, Raw: s}
}

// DetailBuilder incrementally constructs a Formatted MessageDetail.
type DetailBuilder struct {
	raw      string
	elements []Element
}

// NewDetailBuilder starts a Formatted detail with the given raw fallback
// text (typically the unparsed program output).
func NewDetailBuilder(raw string) *DetailBuilder {
	return &DetailBuilder{raw: raw}
}

// Text appends a loose line of text.
func (b *DetailBuilder) Text(s string) *DetailBuilder {
	b.elements = append(b.elements, Element{Kind: ElementText, Text: s})
	return b
}

// Section appends a titled section built by fn against a *SectionWriter.
func (b *DetailBuilder) Section(title string, fn func(w *SectionWriter)) *DetailBuilder {
	w := &SectionWriter{}
	fn(w)
	b.elements = append(b.elements, Element{Kind: ElementSection, Section: Section{Title: title, Spans: w.spans}})
	return b
}

// Build finalizes the builder into a MessageDetail.
func (b *DetailBuilder) Build() MessageDetail {
	return MessageDetail{Shape: ShapeFormatted, Raw: b.raw, Elements: b.elements}
}

// SectionWriter accumulates spans for one Section.
type SectionWriter struct {
	spans []Span
}

// AppendPlain appends plain text, formatting args like fmt.Sprint if more
// than one value is given.
func (w *SectionWriter) AppendPlain(a ...interface{}) {
	w.spans = append(w.spans, Span{Text: fmt.Sprint(a...), Style: StylePlain})
}

// AppendStyled appends text with an explicit style.
func (w *SectionWriter) AppendStyled(text string, style Style) {
	w.spans = append(w.spans, Span{Text: text, Style: style})
}
