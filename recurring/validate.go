// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package recurring

// Diagnostics that Validate returns.
const (
	MsgCountOrEndRequired = "number of occurrences or end date is required"
	MsgCountAndEnd        = "cannot set both number of occurrences and end date"
	MsgStartAfterEnd      = "start date must be before end date"
	MsgDaily              = "daily recurrence requires a day to occur on"
	MsgWeekly             = "weekly recurrence requires an interval and a day to occur on"
	MsgMonthly            = "monthly recurrence requires an interval and a day of the month"
	MsgMonthlyNth         = "monthly recurrence requires an interval, an instance and a day of the week"
	MsgYearly             = "yearly recurrence requires an interval, a day of the month and a month of the year"
	MsgYearlyNth          = "yearly recurrence requires an interval, an instance, a day of the week and a month of the year"
)

// Validate returns the empty string if p is a valid pattern or a
// diagnostic explaining what is wrong with it. Validate reports only the
// first problem found. Validate does not reject unknown variants;
// Calculator does that.
func Validate(p Pattern) string {
	end, hasEnd := p.end.Get()
	if p.count < 1 && !hasEnd {
		return MsgCountOrEndRequired
	}
	if p.count > 0 && hasEnd {
		return MsgCountAndEnd
	}
	if hasEnd && civil(p.start).After(civil(end)) {
		return MsgStartAfterEnd
	}
	hasDay := !p.days.IsEmpty()
	switch p.variant {
	case Daily:
		// A positive interval with no days passes here.
		if p.interval == 0 && !hasDay {
			return MsgDaily
		}
	case Weekly:
		if p.interval < 1 || !hasDay {
			return MsgWeekly
		}
	case Monthly:
		if p.interval < 1 || p.dayOfMonth < 1 {
			return MsgMonthly
		}
	case MonthlyNth:
		if p.interval < 1 || p.instance < 1 || p.instance > Last || !hasDay {
			return MsgMonthlyNth
		}
	case Yearly:
		if p.interval < 1 || p.dayOfMonth < 1 || p.monthOfYear < 1 || p.monthOfYear > 12 {
			return MsgYearly
		}
	case YearlyNth:
		// Looser than Yearly: interval may be 0 and month has no upper bound.
		if p.interval < 0 || p.instance < 1 || p.monthOfYear < 1 || !hasDay {
			return MsgYearlyNth
		}
	}
	return ""
}
