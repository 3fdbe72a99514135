package coerce

import (
	"testing"
	"time"
)

func TestStringTrimsAndNulls(t *testing.T) {
	if v := String("  Dr. X  "); v == nil || *v != "Dr. X" {
		t.Fatalf("String trimmed: got %v", v)
	}
	if v := String(""); v != nil {
		t.Fatalf("String empty: got %q, want nil", *v)
	}
	if v := String("   "); v != nil {
		t.Fatalf("String whitespace-only: got %q, want nil", *v)
	}
}

func TestLower(t *testing.T) {
	if v := Lower("  St. MARY  "); v == nil || *v != "st. mary" {
		t.Fatalf("Lower: got %v", v)
	}
	if v := Lower(" "); v != nil {
		t.Fatalf("Lower empty: got %q, want nil", *v)
	}
}

func TestInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		null bool
	}{
		{"34", 34, false},
		{"42.0", 42, false},
		{"42.9", 42, false},
		{" 7 ", 7, false},
		{"-3", -3, false},
		{"", 0, true},
		{"abc", 0, true},
		{"12abc", 0, true},
		// Values outside the int range parse as floats but must not be
		// stored as wrapped-around garbage.
		{"1e300", 0, true},
		{"-1e300", 0, true},
		{"9223372036854775807", 0, true},
		{"NaN", 0, true},
	}
	for _, c := range cases {
		got := Int(c.in)
		if c.null {
			if got != nil {
				t.Fatalf("Int(%q): got %d, want nil", c.in, *got)
			}
			continue
		}
		if got == nil || *got != c.want {
			t.Fatalf("Int(%q): got %v, want %d", c.in, got, c.want)
		}
	}
}

func TestFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		null bool
	}{
		{"1,200.50", 1200.50, false},
		{"1,000,000", 1e6, false},
		{"3.14", 3.14, false},
		{"", 0, true},
		{"n/a", 0, true},
	}
	for _, c := range cases {
		got := Float(c.in)
		if c.null {
			if got != nil {
				t.Fatalf("Float(%q): got %v, want nil", c.in, *got)
			}
			continue
		}
		if got == nil || *got != c.want {
			t.Fatalf("Float(%q): got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDateDayFirst(t *testing.T) {
	got := Date("05/11/2023")
	want := time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Fatalf("Date(05/11/2023): got %v, want %v (day-first)", got, want)
	}

	got = Date("03/04/2021")
	want = time.Date(2021, time.April, 3, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Fatalf("Date(03/04/2021): got %v, want 3 April 2021", got)
	}
}

func TestDateLayoutsAndTruncation(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"1/2/2022", time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"15.08.2022", time.Date(2022, time.August, 15, 0, 0, 0, 0, time.UTC)},
		{"2022-08-15", time.Date(2022, time.August, 15, 0, 0, 0, 0, time.UTC)},
		// time-of-day and timezone offsets are discarded
		{"2022-08-15 10:30:00", time.Date(2022, time.August, 15, 0, 0, 0, 0, time.UTC)},
		{"2022-08-15T10:30:00+02:00", time.Date(2022, time.August, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := Date(c.in)
		if got == nil || !got.Equal(c.want) {
			t.Fatalf("Date(%q): got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDateMalformed(t *testing.T) {
	for _, in := range []string{"", "not a date", "31/02/2021", "2021-13-01"} {
		if got := Date(in); got != nil {
			t.Fatalf("Date(%q): got %v, want nil", in, *got)
		}
	}
}
