// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

// Package recurring computes the occurrences of recurring appointments
// such as every other Tuesday and Thursday at 16:00 or the last weekday
// of every third month.
//
// A Pattern describes the recurrence. A Calculator validates a Pattern
// and turns it into concrete times, either all at once with Occurrences
// or lazily with Stream.
package recurring

import (
	"time"

	"github.com/keep94/common"
	"github.com/keep94/gofunctional3/functional"
)

// Schedule represents the occurrences of one or more recurring
// appointments.
type Schedule interface {

	// Occurrences returns a new Stream of time.Time. The times that the
	// returned Stream emits are in ascending order.
	Occurrences() functional.Stream
}

// ScheduleFunc converts an ordinary function to a Schedule instance.
type ScheduleFunc func() functional.Stream

func (f ScheduleFunc) Occurrences() functional.Stream {
	return f()
}

// Combine combines multiple Schedule instances together and returns them
// as a single one. Times that more than one schedule share appear once.
func Combine(schedules ...Schedule) Schedule {
	var aggregate combinedSchedule
	return common.Join(schedules, aggregate, nilSchedule{}).(Schedule)
}

// Filter returns a new Schedule that filters the time.Time Streams that
// s creates.
func Filter(s Schedule, f functional.Filterer) Schedule {
	if nested, ok := s.(*filterSchedule); ok {
		return &filterSchedule{
			schedule: nested.schedule, filter: functional.All(nested.filter, f)}
	}
	return &filterSchedule{schedule: s, filter: f}
}

// After returns a new Schedule that represents duration d after every time
// in s. d may be negative.
func After(s Schedule, d time.Duration) Schedule {
	if nested, ok := s.(*afterSchedule); ok {
		return &afterSchedule{schedule: nested.schedule, after: nested.after + d}
	}
	return &afterSchedule{schedule: s, after: d}
}

// StartAt returns a new Schedule that is the same as s but contains only
// the times on or after startTime.
func StartAt(s Schedule, startTime time.Time) Schedule {
	if nested, ok := s.(*startUntilSchedule); ok {
		return nested.AddStart(startTime)
	}
	return withStart(s, startTime)
}

// Until returns a new Schedule that is the same as s but contains only
// times before t.
func Until(s Schedule, t time.Time) Schedule {
	if nested, ok := s.(*startUntilSchedule); ok {
		return nested.AddUntil(t)
	}
	return withUntil(s, t)
}

// Nil returns a Schedule that never happens.
func Nil() Schedule {
	return nilSchedule{}
}

// OnDays filters times by day of week. dayMask is the desired days of the
// week ored together e.g recurring.Monday | recurring.Tuesday
func OnDays(dayMask DaysOfWeek) functional.Filterer {
	return functional.NewFilterer(func(ptr interface{}) error {
		p := ptr.(*time.Time)
		if dayMask.Has(p.Weekday()) {
			return nil
		}
		return functional.Skipped
	})
}

type filterSchedule struct {
	schedule Schedule
	filter   functional.Filterer
}

func (s *filterSchedule) Occurrences() functional.Stream {
	return functional.Filter(s.filter, s.schedule.Occurrences())
}

type afterSchedule struct {
	schedule Schedule
	after    time.Duration
}

func (s *afterSchedule) Filter(ptr interface{}) error {
	p := ptr.(*time.Time)
	*p = (*p).Add(s.after)
	return nil
}

func (s *afterSchedule) Occurrences() functional.Stream {
	return functional.Filter(s, s.schedule.Occurrences())
}

// startUntilSchedule cannot seek so it drops the times before start.
type startUntilSchedule struct {
	schedule Schedule
	start    time.Time
	until    time.Time
	startSet bool
	untilSet bool
}

func withStart(s Schedule, t time.Time) *startUntilSchedule {
	return &startUntilSchedule{schedule: s, start: t, startSet: true}
}

func (s *startUntilSchedule) AddStart(t time.Time) *startUntilSchedule {
	if s.startSet && !t.After(s.start) {
		return s
	}
	result := *s
	result.start = t
	result.startSet = true
	return &result
}

func withUntil(s Schedule, t time.Time) *startUntilSchedule {
	return &startUntilSchedule{schedule: s, until: t, untilSet: true}
}

func (s *startUntilSchedule) AddUntil(t time.Time) *startUntilSchedule {
	if s.untilSet && !t.Before(s.until) {
		return s
	}
	result := *s
	result.until = t
	result.untilSet = true
	return &result
}

// Filter is the TakeWhile condition.
func (s *startUntilSchedule) Filter(ptr interface{}) error {
	p := ptr.(*time.Time)
	if p.Before(s.until) {
		return nil
	}
	return functional.Skipped
}

func (s *startUntilSchedule) Occurrences() functional.Stream {
	result := s.schedule.Occurrences()
	if s.startSet {
		start := s.start
		result = functional.DropWhile(
			functional.NewFilterer(func(ptr interface{}) error {
				if ptr.(*time.Time).Before(start) {
					return nil
				}
				return functional.Skipped
			}),
			result)
	}
	if s.untilSet {
		return functional.TakeWhile(s, result)
	}
	return result
}

type combinedSchedule []Schedule

func (ss combinedSchedule) Occurrences() functional.Stream {
	streams := make([]functional.Stream, len(ss))
	for i := range ss {
		streams[i] = ss[i].Occurrences()
	}
	return combineStreams(streams)
}

type closeDoesNothing struct {
}

func (n closeDoesNothing) Close() error {
	return nil
}

func combineStreams(streams []functional.Stream) functional.Stream {
	allTimes := functional.Merge(
		func() interface{} { return new(time.Time) },
		nil,
		func(lhs, rhs interface{}) bool {
			l := lhs.(*time.Time)
			r := rhs.(*time.Time)
			return l.Before(*r)
		},
		streams...)
	return &uniqueStream{Stream: allTimes}
}

type uniqueStream struct {
	functional.Stream
	lastTime time.Time
	started  bool
}

func (s *uniqueStream) Next(ptr interface{}) (err error) {
	for err = s.Stream.Next(ptr); err == nil; err = s.Stream.Next(ptr) {
		current := *ptr.(*time.Time)
		if s.started && current.Equal(s.lastTime) {
			continue
		}
		s.started = true
		s.lastTime = current
		return
	}
	return
}

type nilSchedule struct {
}

func (n nilSchedule) Occurrences() functional.Stream {
	return functional.NilStream()
}

// Collect reads every time from s into a slice and closes s.
func Collect(s functional.Stream) ([]time.Time, error) {
	defer s.Close()
	var result []time.Time
	var t time.Time
	var err error
	for err = s.Next(&t); err == nil; err = s.Next(&t) {
		result = append(result, t)
	}
	if err != functional.Done {
		return nil, err
	}
	return result, nil
}
