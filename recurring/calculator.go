// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package recurring

import (
	"errors"
	"fmt"
	"time"

	"github.com/keep94/gofunctional3/functional"
)

var (
	// ErrInvalidPattern matches every *InvalidPatternError.
	ErrInvalidPattern = errors.New("recurring: invalid pattern")

	// ErrUnsupportedVariant means a pattern has a Variant outside Daily
	// through YearlyNth.
	ErrUnsupportedVariant = errors.New("recurring: unsupported variant")
)

// InvalidPatternError is returned for patterns that Validate rejects.
type InvalidPatternError struct {
	// Reason is the diagnostic from Validate.
	Reason string
}

func (e *InvalidPatternError) Error() string {
	return "recurring: invalid pattern: " + e.Reason
}

func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// Config configures a Calculator.
type Config struct {
	// FirstDayOfWeek is where weeks begin for Weekly patterns.
	FirstDayOfWeek time.Weekday
}

// DefaultConfig starts weeks on Sunday.
var DefaultConfig = Config{
	FirstDayOfWeek: time.Sunday,
}

// Calculator computes the occurrences of patterns. A Calculator has no
// mutable state so it is safe to use with multiple goroutines.
type Calculator struct {
	config Config
}

// NewCalculator returns a Calculator using DefaultConfig.
func NewCalculator() *Calculator {
	return NewCalculatorWithConfig(DefaultConfig)
}

// NewCalculatorWithConfig returns a Calculator using config. An out of
// range FirstDayOfWeek is treated as Sunday.
func NewCalculatorWithConfig(config Config) *Calculator {
	if config.FirstDayOfWeek < time.Sunday || config.FirstDayOfWeek > time.Saturday {
		config.FirstDayOfWeek = time.Sunday
	}
	return &Calculator{config: config}
}

// FirstDayOfWeek returns the day on which weeks begin.
func (c *Calculator) FirstDayOfWeek() time.Weekday {
	return c.config.FirstDayOfWeek
}

// Occurrences returns all the occurrences of p in ascending order.
// If p is invalid, Occurrences returns an *InvalidPatternError and no
// times.
func (c *Calculator) Occurrences(p Pattern) ([]time.Time, error) {
	s, err := c.Stream(p)
	if err != nil {
		return nil, err
	}
	return Collect(s)
}

// Stream returns the occurrences of p as a Stream of time.Time. The
// returned Stream computes each time as the caller asks for it and
// cannot be restarted.
func (c *Calculator) Stream(p Pattern) (functional.Stream, error) {
	factory, err := c.factoryFor(p)
	if err != nil {
		return nil, err
	}
	return c.newStream(factory, p), nil
}

// Schedule validates p and returns it as a Schedule.
func (c *Calculator) Schedule(p Pattern) (Schedule, error) {
	factory, err := c.factoryFor(p)
	if err != nil {
		return nil, err
	}
	return ScheduleFunc(func() functional.Stream {
		return c.newStream(factory, p)
	}), nil
}

func (c *Calculator) factoryFor(p Pattern) (cursorFactory, error) {
	if reason := Validate(p); reason != "" {
		return nil, &InvalidPatternError{Reason: reason}
	}
	factory, ok := kCursors[p.variant]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedVariant, p.variant)
	}
	return factory, nil
}

func (c *Calculator) newStream(factory cursorFactory, p Pattern) *occurrenceStream {
	return &occurrenceStream{
		cursor: factory(p, c.config.FirstDayOfWeek), pattern: p}
}

type occurrenceStream struct {
	cursor  cursor
	pattern Pattern
	count   int
	done    bool
	closeDoesNothing
}

func (s *occurrenceStream) Next(ptr interface{}) error {
	if s.done {
		return functional.Done
	}
	date, ok := s.cursor.next()
	if !ok || enoughGenerated(s.count, date, s.pattern) {
		s.done = true
		return functional.Done
	}
	s.count++
	p := ptr.(*time.Time)
	*p = atTimeOf(date, s.pattern.start)
	return nil
}
