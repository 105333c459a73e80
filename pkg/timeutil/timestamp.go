package timeutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DayLayout is the label used when notes are clustered by calendar day.
const DayLayout = "Jan 02, 2006"

// Timestamp is a millisecond-precision instant. It is stored as Unix
// milliseconds; RFC3339 strings are accepted when reading older documents.
type Timestamp struct {
	time.Time
}

// At truncates t to millisecond precision and drops the monotonic reading so
// a value survives a JSON round trip unchanged.
func At(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: time.UnixMilli(t.UnixMilli())}
}

// FromMillis builds a Timestamp from Unix milliseconds.
func FromMillis(ms int64) Timestamp {
	return Timestamp{Time: time.UnixMilli(ms)}
}

// Millis returns the Unix millisecond value, or 0 for the zero Timestamp.
func (t Timestamp) Millis() int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// SameDay reports whether t and then fall on the same local calendar day.
func (t Timestamp) SameDay(then time.Time) bool {
	ty, tm, td := t.Local().Date()
	ny, nm, nd := then.Local().Date()
	return ty == ny && tm == nm && td == nd
}

// DayLabel formats the local calendar day, e.g. "Jan 05, 2024".
func (t Timestamp) DayLabel() string {
	return t.Local().Format(DayLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("timeutil: parse timestamp %q: %w", s, err)
		}
		*t = At(parsed)
		return nil
	}
	var ms float64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("timeutil: parse timestamp %s: %w", b, err)
	}
	if ms == 0 {
		t.Time = time.Time{}
		return nil
	}
	*t = FromMillis(int64(ms))
	return nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}
