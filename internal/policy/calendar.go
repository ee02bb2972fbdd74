package policy

import "time"

const DateLayout = "2006-01-02"

// national holidays observed every year, as month/day
var nationalHolidays = []struct {
	month time.Month
	day   int
}{
	{time.January, 26},
	{time.August, 15},
	{time.October, 2},
	{time.December, 25},
}

// Date truncates t to its calendar day in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(v string) (time.Time, error) {
	return time.Parse(DateLayout, v)
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Holidays returns the fixed national holiday list of one calendar year.
func Holidays(year int) []time.Time {
	days := make([]time.Time, 0, len(nationalHolidays))
	for _, h := range nationalHolidays {
		days = append(days, time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC))
	}
	return days
}

// HolidaysBetween returns the holidays of every calendar year touched by
// [start, end], so ranges crossing New Year see both years.
func HolidaysBetween(start, end time.Time) []time.Time {
	if end.Before(start) {
		return nil
	}
	var days []time.Time
	for year := start.Year(); year <= end.Year(); year++ {
		days = append(days, Holidays(year)...)
	}
	return days
}

// BusinessDays counts the dates in [start, end] that are neither weekend days
// nor in holidays. It returns 0 when start is after end.
func BusinessDays(start, end time.Time, holidays []time.Time) int {
	start, end = Date(start), Date(end)
	if start.After(end) {
		return 0
	}

	off := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		off[Date(h)] = struct{}{}
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			continue
		}
		if _, ok := off[d]; ok {
			continue
		}
		count++
	}
	return count
}

// Duration is the business-day length of a leave using the national calendar.
func Duration(start, end time.Time) int {
	return BusinessDays(start, end, HolidaysBetween(start, end))
}

// CalendarDays is the inclusive day span of [start, end].
func CalendarDays(start, end time.Time) int {
	start, end = Date(start), Date(end)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
