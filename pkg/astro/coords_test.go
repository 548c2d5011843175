package astro

import (
	"errors"
	"math"
	"testing"
)

func TestParseRASexagesimal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"10:00:00", 150},
		{"00:00:00", 0},
		{"23:59:59", (23 + 59.0/60 + 59.0/3600) * 15},
		{"12 30 00", 187.5},
		{"06:30", 97.5},
	}
	for _, tc := range cases {
		ra, err := ParseRA(tc.in)
		if err != nil {
			t.Fatalf("ParseRA(%q): %v", tc.in, err)
		}
		if math.Abs(ra.Degrees()-tc.want) > 1e-9 {
			t.Fatalf("ParseRA(%q) = %v degrees, want %v", tc.in, ra.Degrees(), tc.want)
		}
	}
}

func TestParseRADecimalDegrees(t *testing.T) {
	ra, err := ParseRA("150.0")
	if err != nil {
		t.Fatalf("ParseRA: %v", err)
	}
	if got := ra.Degrees(); got != 150 {
		t.Fatalf("degrees = %v, want 150", got)
	}

	// negative degrees normalise into [0, 360)
	ra, err = ParseRA("-10")
	if err != nil {
		t.Fatalf("ParseRA: %v", err)
	}
	if got := ra.Degrees(); got != 350 {
		t.Fatalf("degrees = %v, want 350", got)
	}
}

func TestParseRAErrors(t *testing.T) {
	for _, in := range []string{"", "25:00:00", "10:61:00", "abc", "1:2:3:4"} {
		if _, err := ParseRA(in); err == nil {
			t.Fatalf("ParseRA(%q): expected error", in)
		}
	}
}

func TestParseDec(t *testing.T) {
	dec, err := ParseDec("-30:00:00")
	if err != nil {
		t.Fatalf("ParseDec: %v", err)
	}
	if got := dec.Degrees(); got != -30 {
		t.Fatalf("degrees = %v, want -30", got)
	}
	if !dec.Negative() {
		t.Fatal("expected southern declination")
	}
	if dec.Sign() != "-" {
		t.Fatalf("sign = %q, want -", dec.Sign())
	}

	dec, err = ParseDec("+45:30:00")
	if err != nil {
		t.Fatalf("ParseDec: %v", err)
	}
	if got := dec.Degrees(); math.Abs(got-45.5) > 1e-9 {
		t.Fatalf("degrees = %v, want 45.5", got)
	}
}

func TestParseDecRange(t *testing.T) {
	for _, in := range []string{"-90:00:01", "91", "-95.2", "90:30:00"} {
		_, err := ParseDec(in)
		if err == nil {
			t.Fatalf("ParseDec(%q): expected error", in)
		}
		if !errors.Is(err, ErrDecRange) {
			t.Fatalf("ParseDec(%q): error %v, want ErrDecRange", in, err)
		}
	}

	for _, in := range []string{"-90:00:00", "90", "0"} {
		if _, err := ParseDec(in); err != nil {
			t.Fatalf("ParseDec(%q): %v", in, err)
		}
	}
}

func TestRAHMS(t *testing.T) {
	ra, err := ParseRA("10:20:30.5")
	if err != nil {
		t.Fatalf("ParseRA: %v", err)
	}
	h, m, s := ra.HMS()
	if h != 10 || m != 20 {
		t.Fatalf("HMS = %d:%d:%v, want hours 10 minutes 20", h, m, s)
	}
	if math.Abs(s-30.5) > 0.01 {
		t.Fatalf("seconds = %v, want 30.5", s)
	}
	if got := ra.String(); got != "10:20:30.50" {
		t.Fatalf("String = %q", got)
	}
}

func TestDecDMS(t *testing.T) {
	dec, err := ParseDec("-30:15:12")
	if err != nil {
		t.Fatalf("ParseDec: %v", err)
	}
	d, m, s := dec.DMS()
	if d != 30 || m != 15 {
		t.Fatalf("DMS = %d:%d:%v, want 30:15", d, m, s)
	}
	if math.Abs(s-12) > 0.01 {
		t.Fatalf("arcseconds = %v, want 12", s)
	}
	if got := dec.String(); got != "-30:15:12.00" {
		t.Fatalf("String = %q", got)
	}
}

func TestSexagesimalCarry(t *testing.T) {
	// values that round to 60 seconds must carry, never render as :60.00
	dec := Dec(29.9999999)
	if got := dec.String(); got != "+30:00:00.00" {
		t.Fatalf("String = %q, want +30:00:00.00", got)
	}
}
