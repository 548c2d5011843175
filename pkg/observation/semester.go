package observation

import (
	"fmt"
	"time"
)

// Semester identifies a SALT proposal semester. Semester 1 runs May through
// October; semester 2 runs November through April and is labelled with the
// year it started in.
type Semester struct {
	Year int
	Term int
}

// SemesterFor returns the semester containing the given time.
func SemesterFor(now time.Time) Semester {
	month := now.Month()
	switch {
	case month >= time.May && month <= time.October:
		return Semester{Year: now.Year(), Term: 1}
	case month > time.October:
		return Semester{Year: now.Year(), Term: 2}
	default:
		return Semester{Year: now.Year() - 1, Term: 2}
	}
}

// String renders the semester the way the portal labels it, e.g. "2020-1".
func (s Semester) String() string {
	return fmt.Sprintf("%d-%d", s.Year, s.Term)
}
