// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

// Package remind sends reminders ahead of recurring appointments.
package remind

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/keep94/gofunctional3/functional"
	"github.com/rs/zerolog"

	"github.com/keep94/recurrence/recurring"
)

// Reminder reminds someone of an appointment.
type Reminder interface {

	// Remind is called once for each occurrence. name is the name of the
	// appointment and at is when it happens.
	Remind(ctx context.Context, name string, at time.Time) error
}

// ReminderFunc wraps a simple function to implement Reminder.
type ReminderFunc func(ctx context.Context, name string, at time.Time) error

func (f ReminderFunc) Remind(ctx context.Context, name string, at time.Time) error {
	return f(ctx, name, at)
}

// WriterReminder returns a Reminder that writes one line per reminder to
// w. The returned Reminder is safe to use with multiple goroutines.
func WriterReminder(w io.Writer) Reminder {
	return &writerReminder{w: w}
}

// Clock represents the system clock.
type Clock interface {

	// Now returns the current time
	Now() time.Time

	// After waits for given duration to elapse and then sends current time on
	// the returned channel.
	After(d time.Duration) <-chan time.Time
}

// ClockForTesting is a test implementation of Clock.
// Current time advances only when After() is called.
// ClockForTesting instances are safe to use with multiple goroutines.
type ClockForTesting struct {

	// The current time
	Current time.Time
	lock    sync.Mutex
}

func (c *ClockForTesting) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.Current
}

// After immediately advances current time by d and send that current time
// on the returned channel.
func (c *ClockForTesting) After(d time.Duration) <-chan time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Current = c.Current.Add(d)
	result := make(chan time.Time, 1)
	result <- c.Current
	close(result)
	return result
}

// Job is a named schedule to send reminders for.
type Job struct {
	Name     string
	Schedule recurring.Schedule
}

// Runner waits for the occurrences of schedules and calls a Reminder
// ahead of each one. The zero value uses the system clock, no lead time
// and a disabled logger.
type Runner struct {
	// Clock defaults to the system clock.
	Clock Clock

	// Lead is how long before each occurrence to remind.
	Lead time.Duration

	Logger zerolog.Logger
}

// Run reminds about each occurrence of schedule in turn. Occurrences
// whose reminder time is not after the time Run starts are skipped. Run
// returns nil once schedule has no more occurrences, ctx.Err() if ctx is
// done first or the first error from reminder.
func (r *Runner) Run(
	ctx context.Context,
	name string,
	schedule recurring.Schedule,
	reminder Reminder) error {
	clock := r.clock()
	log := r.Logger.With().Str("appointment", name).Logger()
	fireTimes := recurring.StartAt(
		recurring.After(schedule, -r.Lead),
		clock.Now().Add(time.Nanosecond))
	s := fireTimes.Occurrences()
	defer s.Close()
	var fireAt time.Time
	var err error
	for err = s.Next(&fireAt); err == nil; err = s.Next(&fireAt) {
		if err := ctx.Err(); err != nil {
			return err
		}
		at := fireAt.Add(r.Lead)
		dur := fireAt.Sub(clock.Now())
		log.Debug().Time("at", at).Dur("wait", dur).Msg("waiting")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(dur):
		}
		if err := reminder.Remind(ctx, name, at); err != nil {
			log.Error().Err(err).Time("at", at).Msg("reminder failed")
			return fmt.Errorf("remind %q at %s: %w", name, at.Format(time.RFC3339), err)
		}
		log.Info().Time("at", at).Msg("reminded")
	}
	if err != functional.Done {
		return err
	}
	log.Info().Msg("no more occurrences")
	return nil
}

// RunAll runs every job in parallel with Run. When one job fails, RunAll
// cancels the others. RunAll returns once every job has returned; the
// error is the first failure or ctx.Err() if ctx was done.
func (r *Runner) RunAll(ctx context.Context, jobs []Job, reminder Reminder) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i := range jobs {
		go func(i int) {
			defer wg.Done()
			if err := r.Run(ctx, jobs[i].Name, jobs[i].Schedule, reminder); err != nil {
				errs[i] = err
				cancel()
			}
		}(i)
	}
	wg.Wait()
	var canceled error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			canceled = err
			continue
		}
		return err
	}
	return canceled
}

func (r *Runner) clock() Clock {
	if r.Clock != nil {
		return r.Clock
	}
	return systemClock{}
}

type writerReminder struct {
	lock sync.Mutex
	w    io.Writer
}

func (wr *writerReminder) Remind(ctx context.Context, name string, at time.Time) error {
	wr.lock.Lock()
	defer wr.lock.Unlock()
	_, err := fmt.Fprintf(wr.w, "%s\t%s\n", name, at.Format("2006-01-02 15:04 Mon"))
	return err
}

type systemClock struct {
}

func (s systemClock) Now() time.Time {
	return time.Now()
}

func (s systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
