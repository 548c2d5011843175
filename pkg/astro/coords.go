// Package astro handles the equatorial coordinate formats SALT proposals use:
// sexagesimal right ascension (hours:minutes:seconds), signed sexagesimal
// declination (degrees:arcminutes:arcseconds), and their decimal-degree
// equivalents. Formatting is fixed-precision so identical inputs always yield
// identical output.
package astro

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RA is a right ascension stored in decimal degrees, normalised to [0, 360).
type RA float64

// Dec is a declination stored in decimal degrees within [-90, +90].
type Dec float64

// ErrDecRange marks declinations outside [-90, +90].
var ErrDecRange = errors.New("astro: declination out of range [-90, +90]")

// ParseRA accepts sexagesimal hours ("10:00:00", "10 00 00.5") or decimal
// degrees ("150.0") and returns the right ascension in degrees.
func ParseRA(raw string) (RA, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errors.New("astro: right ascension is empty")
	}

	if isSexagesimal(trimmed) {
		hours, err := parseSexagesimal(trimmed)
		if err != nil {
			return 0, fmt.Errorf("astro: right ascension %q: %w", raw, err)
		}
		if hours < 0 || hours >= 24 {
			return 0, fmt.Errorf("astro: right ascension %q out of range [0, 24h)", raw)
		}
		return RA(hours * 15), nil
	}

	degrees, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("astro: right ascension %q is not a coordinate", raw)
	}
	degrees = math.Mod(degrees, 360)
	if degrees < 0 {
		degrees += 360
	}
	return RA(degrees), nil
}

// ParseDec accepts signed sexagesimal degrees ("-30:00:00") or decimal
// degrees ("-30.5") and returns the declination. Values outside [-90, +90]
// fail with ErrDecRange.
func ParseDec(raw string) (Dec, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errors.New("astro: declination is empty")
	}

	var (
		degrees float64
		err     error
	)
	if isSexagesimal(trimmed) {
		degrees, err = parseSexagesimal(trimmed)
		if err != nil {
			return 0, fmt.Errorf("astro: declination %q: %w", raw, err)
		}
	} else {
		degrees, err = strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("astro: declination %q is not a coordinate", raw)
		}
	}

	if degrees < -90 || degrees > 90 {
		return 0, fmt.Errorf("astro: declination %q: %w", raw, ErrDecRange)
	}
	return Dec(degrees), nil
}

// Degrees returns the right ascension in decimal degrees.
func (ra RA) Degrees() float64 {
	return float64(ra)
}

// Hours returns the right ascension in decimal hours.
func (ra RA) Hours() float64 {
	return float64(ra) / 15
}

// HMS splits the right ascension into whole hours, whole minutes, and
// fractional seconds.
func (ra RA) HMS() (hours, minutes int, seconds float64) {
	total := ra.Hours()
	hours = int(total)
	rem := (total - float64(hours)) * 60
	minutes = int(rem)
	seconds = (rem - float64(minutes)) * 60
	hours, minutes, seconds = carrySexagesimal(hours, minutes, seconds)
	if hours >= 24 {
		hours -= 24
	}
	return hours, minutes, seconds
}

// String renders the right ascension as fixed-precision sexagesimal hours.
func (ra RA) String() string {
	h, m, s := ra.HMS()
	return fmt.Sprintf("%02d:%02d:%05.2f", h, m, s)
}

// Degrees returns the declination in decimal degrees.
func (d Dec) Degrees() float64 {
	return float64(d)
}

// Negative reports whether the declination is south of the equator.
func (d Dec) Negative() bool {
	return d < 0
}

// Sign returns "-" for southern declinations and "+" otherwise, matching the
// sign element of the proposal schema.
func (d Dec) Sign() string {
	if d.Negative() {
		return "-"
	}
	return "+"
}

// DMS splits the absolute declination into whole degrees, whole arcminutes,
// and fractional arcseconds. Combine with Sign for a full rendering.
func (d Dec) DMS() (degrees, arcminutes int, arcseconds float64) {
	total := math.Abs(float64(d))
	degrees = int(total)
	rem := (total - float64(degrees)) * 60
	arcminutes = int(rem)
	arcseconds = (rem - float64(arcminutes)) * 60
	degrees, arcminutes, arcseconds = carrySexagesimal(degrees, arcminutes, arcseconds)
	return degrees, arcminutes, arcseconds
}

// String renders the declination as fixed-precision signed sexagesimal
// degrees.
func (d Dec) String() string {
	deg, m, s := d.DMS()
	return fmt.Sprintf("%s%02d:%02d:%05.2f", d.Sign(), deg, m, s)
}

func isSexagesimal(s string) bool {
	return strings.ContainsAny(s, ": ")
}

func parseSexagesimal(s string) (float64, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ' '
	})
	if len(parts) < 2 || len(parts) > 3 {
		return 0, errors.New("expected 2 or 3 sexagesimal components")
	}

	negative := strings.HasPrefix(parts[0], "-")
	first, err := strconv.ParseFloat(strings.TrimPrefix(parts[0], "+"), 64)
	if err != nil {
		return 0, fmt.Errorf("component %q is not numeric", parts[0])
	}
	first = math.Abs(first)

	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("component %q is not numeric", parts[1])
	}
	if minutes < 0 || minutes >= 60 {
		return 0, errors.New("minutes component out of range [0, 60)")
	}

	var seconds float64
	if len(parts) == 3 {
		seconds, err = strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0, fmt.Errorf("component %q is not numeric", parts[2])
		}
		if seconds < 0 || seconds >= 60 {
			return 0, errors.New("seconds component out of range [0, 60)")
		}
	}

	value := first + minutes/60 + seconds/3600
	if negative {
		value = -value
	}
	return value, nil
}

// carrySexagesimal rounds seconds to two decimals and carries overflow into
// the minute and whole components so "59.999..." never renders as "60.00".
func carrySexagesimal(whole, minutes int, seconds float64) (int, int, float64) {
	seconds = math.Round(seconds*100) / 100
	if seconds >= 60 {
		seconds -= 60
		minutes++
	}
	if minutes >= 60 {
		minutes -= 60
		whole++
	}
	return whole, minutes, seconds
}
