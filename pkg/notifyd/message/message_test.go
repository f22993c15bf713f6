package message

import "testing"

func TestDetailBuilderOrdersTextAndSections(t *testing.T) {
	detail := NewDetailBuilder("raw fallback").
		Text("topline").
		Section("Stdout", func(w *SectionWriter) {
			w.AppendStyled("hello", StyleMonospace)
		}).
		Build()

	if detail.Shape != ShapeFormatted {
		t.Fatalf("got shape %v", detail.Shape)
	}
	if detail.Raw != "raw fallback" {
		t.Fatalf("got raw %q", detail.Raw)
	}
	if len(detail.Elements) != 2 {
		t.Fatalf("got %d elements", len(detail.Elements))
	}
	if detail.Elements[0].Kind != ElementText || detail.Elements[0].Text != "topline" {
		t.Fatalf("got first element %+v", detail.Elements[0])
	}
	if detail.Elements[1].Kind != ElementSection || detail.Elements[1].Section.Title != "Stdout" {
		t.Fatalf("got second element %+v", detail.Elements[1])
	}
	if detail.Elements[1].Section.Spans[0].Style != StyleMonospace {
		t.Fatalf("got span style %v", detail.Elements[1].Section.Spans[0].Style)
	}
}

func TestFallbackReturnsRaw(t *testing.T) {
	if NewRaw("plain").Fallback() != "plain" {
		t.Fatalf("expected fallback to return raw text")
	}
}
