// Package frequency computes next-fire-times for the five job recurrence kinds.
package frequency

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeOfDay is a wall-clock time with second precision, compared and
// constructed independently of any particular date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// After reports whether t is strictly later in the day than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.asSeconds() > other.asSeconds()
}

func (t TimeOfDay) asSeconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// timeOfDayFromTime extracts the wall-clock time component of a time.Time.
func timeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseTimeOfDay parses "HH:MM:SS" or "HH:MM" into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	n, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	if err != nil || n != 3 {
		sec = 0
		n, err = fmt.Sscanf(s, "%d:%d", &h, &m)
		if err != nil || n != 2 {
			return TimeOfDay{}, fmt.Errorf("invalid time of day %q: want HH:MM or HH:MM:SS", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m, Second: sec}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// UnmarshalYAML allows TimeOfDay to be written as a plain "HH:MM:SS" scalar.
func (t *TimeOfDay) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML renders TimeOfDay back to "HH:MM:SS".
func (t TimeOfDay) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}
