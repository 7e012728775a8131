package domain

import (
	"testing"
	"time"
)

func TestDateUTC(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	// 23:30 JST on the 14th is 14:30 UTC on the 14th.
	in := time.Date(2025, 3, 14, 23, 30, 0, 0, jst)

	got := DateUTC(in)
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateUTC: got %v, want %v", got, want)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("location: got %v, want UTC", got.Location())
	}

	if _, err := ParseDate("14/03/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("expected error for empty string")
	}
}
