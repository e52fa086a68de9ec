// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package recurring

import (
	"fmt"
	"time"

	"github.com/samber/mo"
)

// Variant selects how a Pattern steps from one occurrence to the next.
type Variant int

const (
	// Daily repeats every Interval days or every weekday.
	Daily Variant = iota + 1
	// Weekly repeats on the chosen days of every Interval-th week.
	Weekly
	// Monthly repeats on DayOfMonth of every Interval-th month.
	Monthly
	// MonthlyNth repeats on the Instance-th chosen day of every
	// Interval-th month.
	MonthlyNth
	// Yearly repeats on MonthOfYear/DayOfMonth every Interval years.
	Yearly
	// YearlyNth repeats on the Instance-th chosen day of MonthOfYear
	// every Interval years.
	YearlyNth
)

// Last is the Instance value meaning the last matching day of the period.
const Last = 5

var kVariantNames = map[Variant]string{
	Daily:      "daily",
	Weekly:     "weekly",
	Monthly:    "monthly",
	MonthlyNth: "monthly_nth",
	Yearly:     "yearly",
	YearlyNth:  "yearly_nth",
}

func (v Variant) String() string {
	if name, ok := kVariantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant returns the Variant whose String() is name.
func ParseVariant(name string) (Variant, error) {
	for v, n := range kVariantNames {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedVariant, name)
}

// Pattern describes a recurring appointment. Pattern instances are
// immutable; create them with a Builder.
type Pattern struct {
	variant     Variant
	interval    int
	days        DaysOfWeek
	dayOfMonth  int
	monthOfYear int
	instance    int
	start       time.Time
	count       int
	end         mo.Option[time.Time]
}

func (p Pattern) Variant() Variant { return p.variant }

// Interval is the step size in days, weeks, months or years depending on
// the variant.
func (p Pattern) Interval() int { return p.interval }

func (p Pattern) Days() DaysOfWeek { return p.days }

func (p Pattern) DayOfMonth() int { return p.dayOfMonth }

func (p Pattern) MonthOfYear() int { return p.monthOfYear }

// Instance is 1 through 4 for the Nth matching day of a period or Last.
func (p Pattern) Instance() int { return p.instance }

// Start anchors the pattern. Every occurrence has the same time of day
// as Start in Start's location. On a date where that time of day does not
// exist, such as during a daylight saving gap, time.Date normalizes it so
// the occurrence moves by the size of the gap.
func (p Pattern) Start() time.Time { return p.start }

// Count is the number of occurrences wanted or 0 if End is used instead.
func (p Pattern) Count() int { return p.count }

// End is the last date, inclusive, on which an occurrence may fall.
// Only the date portion is significant.
func (p Pattern) End() mo.Option[time.Time] { return p.end }

// Builder builds Pattern instances. The zero value is ready to use.
type Builder struct {
	p Pattern
}

// NewBuilder returns a Builder for a pattern of variant v.
func NewBuilder(v Variant) *Builder {
	return &Builder{p: Pattern{variant: v}}
}

// Builder returns a Builder initialised with the fields of p.
func (p Pattern) Builder() *Builder {
	return &Builder{p: p}
}

func (b *Builder) Variant(v Variant) *Builder {
	b.p.variant = v
	return b
}

func (b *Builder) Interval(n int) *Builder {
	b.p.interval = n
	return b
}

// Days replaces the set of matching days.
func (b *Builder) Days(d DaysOfWeek) *Builder {
	b.p.days = d
	return b
}

// On adds d to the set of matching days.
func (b *Builder) On(d DaysOfWeek) *Builder {
	b.p.days |= d
	return b
}

// NotOn removes d from the set of matching days.
func (b *Builder) NotOn(d DaysOfWeek) *Builder {
	b.p.days &^= d
	return b
}

func (b *Builder) DayOfMonth(day int) *Builder {
	b.p.dayOfMonth = day
	return b
}

func (b *Builder) MonthOfYear(month int) *Builder {
	b.p.monthOfYear = month
	return b
}

func (b *Builder) Instance(n int) *Builder {
	b.p.instance = n
	return b
}

func (b *Builder) Start(t time.Time) *Builder {
	b.p.start = t
	return b
}

func (b *Builder) Count(n int) *Builder {
	b.p.count = n
	return b
}

// End sets the inclusive end date.
func (b *Builder) End(t time.Time) *Builder {
	b.p.end = mo.Some(t)
	return b
}

// NoEnd clears the end date.
func (b *Builder) NoEnd() *Builder {
	b.p.end = mo.None[time.Time]()
	return b
}

// Build returns the pattern. Build does not validate; use Validate or
// let Calculator reject invalid patterns.
func (b *Builder) Build() Pattern {
	return b.p
}
