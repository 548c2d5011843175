package observation

import (
	"testing"
	"time"
)

func TestSemesterFor(t *testing.T) {
	cases := []struct {
		now  time.Time
		want Semester
	}{
		// May through October belong to semester 1 of the current year.
		{time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC), Semester{Year: 2020, Term: 1}},
		{time.Date(2020, time.July, 15, 12, 0, 0, 0, time.UTC), Semester{Year: 2020, Term: 1}},
		{time.Date(2020, time.October, 31, 23, 59, 0, 0, time.UTC), Semester{Year: 2020, Term: 1}},
		// November and December start semester 2 of the same year.
		{time.Date(2020, time.November, 1, 0, 0, 0, 0, time.UTC), Semester{Year: 2020, Term: 2}},
		{time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC), Semester{Year: 2020, Term: 2}},
		// January through April still belong to the semester that started the
		// previous November.
		{time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), Semester{Year: 2020, Term: 2}},
		{time.Date(2021, time.April, 30, 0, 0, 0, 0, time.UTC), Semester{Year: 2020, Term: 2}},
	}

	for _, tc := range cases {
		if got := SemesterFor(tc.now); got != tc.want {
			t.Fatalf("SemesterFor(%s) = %+v, want %+v", tc.now.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestSemesterString(t *testing.T) {
	if got := (Semester{Year: 2020, Term: 1}).String(); got != "2020-1" {
		t.Fatalf("String = %q, want 2020-1", got)
	}
	if got := (Semester{Year: 2017, Term: 2}).String(); got != "2017-2" {
		t.Fatalf("String = %q, want 2017-2", got)
	}
}
