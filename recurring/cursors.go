// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package recurring

import (
	"time"
)

// cursor walks the candidate dates of one pattern. Dates are midnight UTC
// values standing for calendar days. Successive calls to next return
// strictly increasing dates; next returns false if there are no more.
type cursor interface {
	next() (time.Time, bool)
}

type cursorFactory func(p Pattern, firstDayOfWeek time.Weekday) cursor

var kCursors = map[Variant]cursorFactory{
	Daily:      newDailyCursor,
	Weekly:     newWeeklyCursor,
	Monthly:    newMonthlyCursor,
	MonthlyNth: newMonthlyNthCursor,
	Yearly:     newYearlyCursor,
	YearlyNth:  newYearlyNthCursor,
}

type dailyCursor struct {
	date     time.Time
	days     DaysOfWeek
	interval int
	started  bool
}

func newDailyCursor(p Pattern, _ time.Weekday) cursor {
	return &dailyCursor{date: civil(p.start), days: p.days, interval: p.interval}
}

func (c *dailyCursor) next() (time.Time, bool) {
	if !c.started {
		c.started = true
		return c.align(c.date)
	}
	switch {
	case c.days.IsWeekdays():
		if c.date.Weekday() == time.Friday {
			c.date = c.date.AddDate(0, 0, 3)
		} else {
			c.date = c.date.AddDate(0, 0, 1)
		}
	case c.interval > 0:
		c.date = c.date.AddDate(0, 0, c.interval)
	default:
		// Zero or negative interval walks the matching days.
		return c.align(c.date.AddDate(0, 0, 1))
	}
	return c.date, true
}

// align moves to the first matching day on or after d. A week without a
// match means no day ever matches.
func (c *dailyCursor) align(d time.Time) (time.Time, bool) {
	for i := 0; i < 7; i++ {
		if c.days.Has(d.Weekday()) {
			c.date = d
			return d, true
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

type weeklyCursor struct {
	weekStart time.Time
	offset    int
	start     time.Time
	days      DaysOfWeek
	interval  int
}

func newWeeklyCursor(p Pattern, firstDayOfWeek time.Weekday) cursor {
	start := civil(p.start)
	weekStart := start
	for weekStart.Weekday() != firstDayOfWeek {
		weekStart = weekStart.AddDate(0, 0, -1)
	}
	return &weeklyCursor{
		weekStart: weekStart,
		start:     start,
		days:      p.days,
		interval:  p.interval,
	}
}

func (c *weeklyCursor) next() (time.Time, bool) {
	for {
		if c.offset == 7 {
			c.weekStart = c.weekStart.AddDate(0, 0, 7*c.interval)
			c.offset = 0
		}
		d := c.weekStart.AddDate(0, 0, c.offset)
		c.offset++
		if !d.Before(c.start) && c.days.Has(d.Weekday()) {
			return d, true
		}
	}
}

type monthlyCursor struct {
	month      time.Time
	dayOfMonth int
	interval   int
}

func newMonthlyCursor(p Pattern, _ time.Weekday) cursor {
	start := civil(p.start)
	month := firstOfMonth(start)
	if start.Day() > p.dayOfMonth {
		month = addMonths(month, p.interval)
	}
	return &monthlyCursor{
		month: month, dayOfMonth: p.dayOfMonth, interval: p.interval}
}

func (c *monthlyCursor) next() (time.Time, bool) {
	result := clampedDate(c.month.Year(), c.month.Month(), c.dayOfMonth)
	c.month = addMonths(c.month, c.interval)
	return result, true
}

type monthlyNthCursor struct {
	month    time.Time
	p        Pattern
	interval int
}

func newMonthlyNthCursor(p Pattern, _ time.Weekday) cursor {
	start := civil(p.start)
	month := firstOfMonth(start)
	if resolveNthDateInPeriod(month, p).Before(start) {
		month = addMonths(month, p.interval)
	}
	return &monthlyNthCursor{month: month, p: p, interval: p.interval}
}

func (c *monthlyNthCursor) next() (time.Time, bool) {
	result := resolveNthDateInPeriod(c.month, c.p)
	c.month = addMonths(c.month, c.interval)
	return result, true
}

type yearlyCursor struct {
	year       int
	month      time.Month
	dayOfMonth int
	interval   int
}

func newYearlyCursor(p Pattern, _ time.Weekday) cursor {
	start := civil(p.start)
	c := &yearlyCursor{
		year:       start.Year(),
		month:      time.Month(p.monthOfYear),
		dayOfMonth: p.dayOfMonth,
		interval:   p.interval,
	}
	if c.date().Before(start) {
		c.year += c.interval
	}
	return c
}

func (c *yearlyCursor) date() time.Time {
	return clampedDate(c.year, c.month, c.dayOfMonth)
}

func (c *yearlyCursor) next() (time.Time, bool) {
	result := c.date()
	c.year += c.interval
	return result, true
}

type yearlyNthCursor struct {
	year  int
	month time.Month
	p     Pattern
	step  int
}

func newYearlyNthCursor(p Pattern, _ time.Weekday) cursor {
	start := civil(p.start)
	c := &yearlyNthCursor{
		year:  start.Year(),
		month: time.Month(p.monthOfYear),
		p:     p,
		step:  p.interval,
	}
	// Validate lets an interval of 0 through. Step a year at a time
	// instead of repeating the same date forever.
	if c.step < 1 {
		c.step = 1
	}
	if c.date().Before(start) {
		c.year += c.step
	}
	return c
}

func (c *yearlyNthCursor) date() time.Time {
	return resolveNthDateInPeriod(
		time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.UTC), c.p)
}

func (c *yearlyNthCursor) next() (time.Time, bool) {
	result := c.date()
	c.year += c.step
	return result, true
}

func dayMatches(date time.Time, p Pattern) bool {
	return p.days.Has(date.Weekday())
}

func isWeekend(date time.Time) bool {
	w := date.Weekday()
	return w == time.Saturday || w == time.Sunday
}

// periodDayMatches treats exactly Monday through Friday as "a weekday" and
// exactly Saturday and Sunday as "a weekend day" rather than as literal
// sets of days.
func periodDayMatches(date time.Time, p Pattern) bool {
	switch {
	case p.days.IsWeekend():
		return isWeekend(date)
	case p.days.IsWeekdays():
		return !isWeekend(date)
	default:
		return dayMatches(date, p)
	}
}

// resolveNthDateInPeriod returns the Instance-th matching day of the month
// starting at first. Instances above 4 mean the last matching day.
func resolveNthDateInPeriod(first time.Time, p Pattern) time.Time {
	last := daysIn(first.Year(), first.Month())
	if p.instance > 4 {
		for day := last; day >= 1; day-- {
			d := first.AddDate(0, 0, day-1)
			if periodDayMatches(d, p) {
				return d
			}
		}
		return first
	}
	var d time.Time
	found := 0
	for day := 1; day <= last; day++ {
		d = first.AddDate(0, 0, day-1)
		if periodDayMatches(d, p) {
			found++
			if found == p.instance {
				return d
			}
		}
	}
	return d
}

// enoughGenerated reports whether candidate and everything after it must
// be dropped.
func enoughGenerated(count int, candidate time.Time, p Pattern) bool {
	if end, ok := p.end.Get(); ok {
		return candidate.After(civil(end))
	}
	return count >= p.count
}

// civil returns t's calendar date, as seen in t's own location, at
// midnight UTC.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// atTimeOf combines the calendar date of date with the time of day and
// location of clock.
func atTimeOf(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(),
		clock.Location())
}

func firstOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func addMonths(first time.Time, n int) time.Time {
	return time.Date(first.Year(), first.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampedDate returns year/month/day or the last day of the month if the
// month is shorter than day.
func clampedDate(year int, month time.Month, day int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
