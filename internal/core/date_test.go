package core

import (
	"testing"
	"time"
)

func TestParseCivilDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-03-01", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-3-1", false},
		{"not-a-date", false},
		{"", false},
	}
	for _, tc := range cases {
		d, err := ParseCivilDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseCivilDate(%q): %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseCivilDate(%q): expected error", tc.in)
		}
		if tc.ok && d.String() != tc.in {
			t.Fatalf("round trip %q -> %q", tc.in, d.String())
		}
	}
}

func TestCivilDateOfReinterpretsInBusinessZone(t *testing.T) {
	// 16:00 UTC is already the next civil day in UTC+8.
	instant := time.Date(2023, 9, 17, 16, 0, 0, 0, time.UTC)
	if got := CivilDateOf(instant).String(); got != "2023-09-18" {
		t.Fatalf("got %s, want 2023-09-18", got)
	}
	early := time.Date(2023, 9, 17, 15, 59, 59, 0, time.UTC)
	if got := CivilDateOf(early).String(); got != "2023-09-17" {
		t.Fatalf("got %s, want 2023-09-17", got)
	}
}

func TestDayOfYear(t *testing.T) {
	d := NewCivilDate(2024, time.January, 10)
	if got := d.DayOfYear(); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
	if got := NewCivilDate(2024, time.December, 31).DayOfYear(); got != 366 {
		t.Fatalf("got %d, want 366", got)
	}
}

func TestDaysInYear(t *testing.T) {
	cases := map[int]int{2023: 365, 2024: 366, 1900: 365, 2000: 366}
	for year, want := range cases {
		if got := DaysInYear(year); got != want {
			t.Fatalf("DaysInYear(%d) = %d, want %d", year, got, want)
		}
	}
}

func TestCivilDateJSON(t *testing.T) {
	d := NewCivilDate(2024, time.March, 1)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-03-01"` {
		t.Fatalf("got %s", b)
	}
	var back CivilDate
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Fatalf("got %+v, want %+v", back, d)
	}
	if err := back.UnmarshalJSON([]byte(`"2023-02-30"`)); err == nil {
		t.Fatal("expected error for impossible date")
	}
}
