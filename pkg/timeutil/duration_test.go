package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 7*24*time.Hour {
		t.Fatalf("expected one week, got %v", dur)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3parsecs", "0d"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		0:    "00:00",
		59:   "00:59",
		60:   "01:00",
		1500: "25:00",
		5400: "90:00",
		-3:   "00:00",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	orig := At(time.Date(2024, time.January, 5, 10, 30, 0, 123456789, time.UTC))
	b, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "1704450600123" {
		t.Fatalf("unexpected encoding %s", b)
	}
	var back Timestamp
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(orig.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", back, orig)
	}
}

func TestTimestampAcceptsRFC3339(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-01-05T10:30:00Z"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ts.UTC().Hour() != 10 || ts.UTC().Day() != 5 {
		t.Fatalf("unexpected time %v", ts)
	}
}

func TestTimestampDayLabel(t *testing.T) {
	ts := At(time.Date(2024, time.January, 5, 12, 0, 0, 0, time.Local))
	if got := ts.DayLabel(); got != "Jan 05, 2024" {
		t.Fatalf("unexpected label %q", got)
	}
	if !ts.SameDay(time.Date(2024, time.January, 5, 23, 59, 0, 0, time.Local)) {
		t.Fatalf("expected same day")
	}
}
