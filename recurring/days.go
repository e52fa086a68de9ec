// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package recurring

import (
	"strings"
	"time"
)

// DaysOfWeek is a set of days of the week. Individual days may be ored
// together e.g Tuesday | Thursday.
type DaysOfWeek int

const (
	Sunday DaysOfWeek = 1 << iota
	Saturday
	Friday
	Thursday
	Wednesday
	Tuesday
	Monday
)

const (
	Weekdays = Monday | Tuesday | Wednesday | Thursday | Friday
	Weekend  = Saturday | Sunday
	AllDays  = Weekdays | Weekend
)

var kDayOrder = []time.Weekday{
	time.Sunday,
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
}

// DayOf returns the DaysOfWeek value containing just w.
func DayOf(w time.Weekday) DaysOfWeek {
	return 1 << uint((7-w)%7)
}

// Has returns true if w is in this set.
func (d DaysOfWeek) Has(w time.Weekday) bool {
	return d&DayOf(w) != 0
}

// IsEmpty returns true if no day is in this set.
func (d DaysOfWeek) IsEmpty() bool {
	return d&AllDays == 0
}

// IsWeekdays returns true if this set is exactly Monday through Friday.
func (d DaysOfWeek) IsWeekdays() bool {
	return d&AllDays == Weekdays
}

// IsWeekend returns true if this set is exactly Saturday and Sunday.
func (d DaysOfWeek) IsWeekend() bool {
	return d&AllDays == Weekend
}

// String returns the days in this set as comma separated three letter
// abbreviations starting with Sunday e.g "Tue,Thu".
func (d DaysOfWeek) String() string {
	var names []string
	for _, w := range kDayOrder {
		if d.Has(w) {
			names = append(names, w.String()[:3])
		}
	}
	return strings.Join(names, ",")
}
