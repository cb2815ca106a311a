package market

import "time"

// Calendar knows which days are holidays in a market.
type Calendar interface {
	Name() string
	IsHoliday(d time.Time) bool
}

// IsBusinessDay reports whether d is open for business on cal.
func IsBusinessDay(cal Calendar, d time.Time) bool {
	return !cal.IsHoliday(normalize(d))
}

// Adjust rolls d forward to the next business day of cal (the following
// convention).
func Adjust(cal Calendar, d time.Time) time.Time {
	d = normalize(d)
	for !IsBusinessDay(cal, d) {
		d = AddDays(d, 1)
	}
	return d
}

// Target is the TARGET calendar of the Eurosystem payment system.
type Target struct{}

func (Target) Name() string { return "TARGET" }

func (Target) IsHoliday(d time.Time) bool {
	d = normalize(d)
	y, m, day := d.Year(), d.Month(), d.Day()
	wd := d.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return true
	}

	easter := easterSunday(y)
	goodFriday := AddDays(easter, -2)
	easterMonday := AddDays(easter, 1)

	switch {
	case m == time.January && day == 1:
		return true
	case y >= 2000 && (d.Equal(goodFriday) || d.Equal(easterMonday)):
		return true
	case y >= 2000 && m == time.May && day == 1:
		return true
	case m == time.December && day == 25:
		return true
	case y >= 2000 && m == time.December && day == 26:
		return true
	case m == time.December && day == 31 && (y == 1998 || y == 1999 || y == 2001):
		return true
	}
	return false
}

// easterSunday uses the anonymous Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return Date(year, time.Month(month), day)
}
