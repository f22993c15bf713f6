package frequency

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// rawFrequency mirrors the YAML shape of a frequency block. Only the fields
// relevant to Type are expected to be present.
type rawFrequency struct {
	Type    string      `yaml:"type"`
	Hours   int         `yaml:"hours"`
	Minutes int         `yaml:"minutes"`
	Seconds int         `yaml:"seconds"`
	Time    TimeOfDay   `yaml:"time"`
	Days    []string    `yaml:"days"`
	Day     int         `yaml:"day"`
	Months  []string    `yaml:"months"`
}

// UnmarshalYAML decodes the tagged-union YAML shape (a "type" discriminator
// plus the fields relevant to that type) into a Frequency.
func (f *Frequency) UnmarshalYAML(value *yaml.Node) error {
	var raw rawFrequency
	if err := value.Decode(&raw); err != nil {
		return err
	}

	switch Kind(raw.Type) {
	case KindFixedPeriod:
		*f = FixedPeriod(raw.Hours, raw.Minutes, raw.Seconds)
	case KindDaily:
		*f = Daily(raw.Time)
	case KindWeekly:
		days, err := parseWeekdays(raw.Days)
		if err != nil {
			return err
		}
		*f = Weekly(days, raw.Time)
	case KindMonthly:
		if raw.Day < 1 || raw.Day > 31 {
			return fmt.Errorf("frequency: monthly day %d out of range 1..31", raw.Day)
		}
		*f = Monthly(raw.Day, raw.Time)
	case KindYearly:
		months, err := parseMonths(raw.Months)
		if err != nil {
			return err
		}
		if raw.Day < 1 || raw.Day > 31 {
			return fmt.Errorf("frequency: yearly day %d out of range 1..31", raw.Day)
		}
		*f = Yearly(months, raw.Day, raw.Time)
	default:
		return fmt.Errorf("frequency: unknown type %q (want FixedPeriod, Daily, Weekly, Monthly, or Yearly)", raw.Type)
	}
	return nil
}

func (f Frequency) MarshalYAML() (interface{}, error) {
	raw := rawFrequency{Type: string(f.Kind)}
	switch f.Kind {
	case KindFixedPeriod:
		raw.Hours, raw.Minutes, raw.Seconds = f.Hours, f.Minutes, f.Seconds
	case KindDaily:
		raw.Time = f.Time
	case KindWeekly:
		raw.Time = f.Time
		for d := range f.Days {
			raw.Days = append(raw.Days, d.String())
		}
	case KindMonthly:
		raw.Time, raw.Day = f.Time, f.Day
	case KindYearly:
		raw.Time, raw.Day = f.Time, f.Day
		for m := range f.Months {
			raw.Months = append(raw.Months, m.String())
		}
	}
	return raw, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

func parseWeekdays(names []string) (map[time.Weekday]struct{}, error) {
	out := make(map[time.Weekday]struct{}, len(names))
	for _, name := range names {
		d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("frequency: unknown weekday %q", name)
		}
		out[d] = struct{}{}
	}
	return out, nil
}

func parseMonths(names []string) (map[time.Month]struct{}, error) {
	out := make(map[time.Month]struct{}, len(names))
	for _, name := range names {
		m, ok := monthNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("frequency: unknown month %q", name)
		}
		out[m] = struct{}{}
	}
	return out, nil
}
