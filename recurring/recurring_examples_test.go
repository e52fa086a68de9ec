// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package recurring_test

import (
	"fmt"
	"github.com/keep94/recurrence/recurring"
	"time"
)

func ExampleCalculator_Occurrences() {
	// Every other Tuesday and Thursday at 16:00
	p := recurring.NewBuilder(recurring.Weekly).
		Interval(2).
		Days(recurring.Tuesday | recurring.Thursday).
		Start(time.Date(2014, 1, 31, 16, 0, 0, 0, time.UTC)).
		Count(5).
		Build()
	times, err := recurring.NewCalculator().Occurrences(p)
	if err != nil {
		fmt.Println(err)
		return
	}
	layout := "Mon Jan 2 15:04"
	for _, t := range times {
		fmt.Println(t.Format(layout))
	}
	// Output:
	// Tue Feb 11 16:00
	// Thu Feb 13 16:00
	// Tue Feb 25 16:00
	// Thu Feb 27 16:00
	// Tue Mar 11 16:00
}

func ExampleCalculator_Stream() {
	// The last weekday of every month, forever
	p := recurring.NewBuilder(recurring.MonthlyNth).
		Interval(1).
		Instance(recurring.Last).
		Days(recurring.Weekdays).
		Start(time.Date(2014, 1, 1, 9, 30, 0, 0, time.UTC)).
		Count(1 << 30).
		Build()
	stream, err := recurring.NewCalculator().Stream(p)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer stream.Close()
	layout := "Mon Jan 2 15:04"
	var current time.Time
	for i := 0; i < 4; i++ {
		stream.Next(&current)
		fmt.Println(current.Format(layout))
	}
	// Output:
	// Fri Jan 31 09:30
	// Fri Feb 28 09:30
	// Mon Mar 31 09:30
	// Wed Apr 30 09:30
}

func ExampleFilter() {
	// Weekdays at 7:00
	s, _ := recurring.NewCalculator().Schedule(
		recurring.NewBuilder(recurring.Daily).
			Interval(1).
			Days(recurring.AllDays).
			Start(time.Date(2013, 10, 1, 7, 0, 0, 0, time.UTC)).
			Count(7).
			Build())
	times, _ := recurring.Collect(
		recurring.Filter(s, recurring.OnDays(recurring.Weekdays)).Occurrences())
	layout := "Mon Jan 2 15:04:05"
	for _, t := range times {
		fmt.Println(t.Format(layout))
	}
	// Output:
	// Tue Oct 1 07:00:00
	// Wed Oct 2 07:00:00
	// Thu Oct 3 07:00:00
	// Fri Oct 4 07:00:00
	// Mon Oct 7 07:00:00
}

func ExampleCombine() {
	// The 15th and the last Friday of each month
	calc := recurring.NewCalculator()
	start := time.Date(2013, 10, 2, 12, 0, 0, 0, time.UTC)
	fifteenth, _ := calc.Schedule(
		recurring.NewBuilder(recurring.Monthly).
			Interval(1).
			DayOfMonth(15).
			Start(start).
			Count(2).
			Build())
	lastFriday, _ := calc.Schedule(
		recurring.NewBuilder(recurring.MonthlyNth).
			Interval(1).
			Instance(recurring.Last).
			Days(recurring.Friday).
			Start(start).
			Count(2).
			Build())
	times, _ := recurring.Collect(
		recurring.Combine(fifteenth, lastFriday).Occurrences())
	layout := "Mon Jan 2 15:04"
	for _, t := range times {
		fmt.Println(t.Format(layout))
	}
	// Output:
	// Tue Oct 15 12:00
	// Fri Oct 25 12:00
	// Fri Nov 15 12:00
	// Fri Nov 29 12:00
}

func ExampleValidate() {
	p := recurring.NewBuilder(recurring.Daily).
		Interval(1).
		Days(recurring.AllDays).
		Start(time.Date(2014, 1, 31, 16, 0, 0, 0, time.UTC)).
		Count(5).
		End(time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)).
		Build()
	fmt.Println(recurring.Validate(p))
	// Output:
	// cannot set both number of occurrences and end date
}
