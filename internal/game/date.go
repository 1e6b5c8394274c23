// internal/game/date.go
//
// Proleptic calendar dates for event chronology.
// Events may predate the representable range of time.Time-style epochs
// (e.g. "-0490-09-12" for the Battle of Marathon), so dates are parsed
// into plain year/month/day integers and compared field by field rather
// than through timestamp conversion.

package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Date is a proleptic calendar date. Year may be negative (BC).
// The zero value is not a valid date; dates come from ParseDate.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate parses the wire format ±YYYY-MM-DD. The year may carry a
// leading minus for BC dates and is otherwise zero-padded to four
// digits; month and day are zero-padded to two.
func ParseDate(s string) (Date, error) {
	rest := s
	neg := false
	if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	}
	parts := strings.Split(rest, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("date %q: want ±YYYY-MM-DD", s)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) < 4 {
		return Date{}, fmt.Errorf("date %q: bad year", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return Date{}, fmt.Errorf("date %q: bad month", s)
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil || d < 1 || d > 31 {
		return Date{}, fmt.Errorf("date %q: bad day", s)
	}
	if neg {
		y = -y
	}
	return Date{Year: y, Month: m, Day: d}, nil
}

// Compare returns -1, 0, or +1 ordering d against o chronologically.
// Comparison is by year, then month, then day, as integers; more
// negative years sort earlier.
func (d Date) Compare(o Date) int {
	if d.Year != o.Year {
		return sign(d.Year - o.Year)
	}
	if d.Month != o.Month {
		return sign(d.Month - o.Month)
	}
	return sign(d.Day - o.Day)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// String renders the wire format ±YYYY-MM-DD.
func (d Date) String() string {
	y := d.Year
	sign := ""
	if y < 0 {
		sign = "-"
		y = -y
	}
	return fmt.Sprintf("%s%04d-%02d-%02d", sign, y, d.Month, d.Day)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
