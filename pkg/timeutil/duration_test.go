package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 14 * 24 * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "2w" {
		t.Fatalf("expected label 2w, got %s", label)
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
	if _, _, err := ParseWindow("noop"); err == nil {
		t.Fatalf("expected error for invalid window")
	}
}

func TestParseWindowTooLarge(t *testing.T) {
	if _, _, err := ParseWindow("60w"); err == nil {
		t.Fatalf("expected error for oversized window")
	}
}

func TestWindowDays(t *testing.T) {
	cases := map[time.Duration]int{
		0:                   1,
		12 * time.Hour:      1,
		24 * time.Hour:      1,
		36 * time.Hour:      2,
		14 * 24 * time.Hour: 14,
	}
	for in, want := range cases {
		if got := WindowDays(in); got != want {
			t.Fatalf("WindowDays(%v): expected %d, got %d", in, want, got)
		}
	}
}
