// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package cli

import (
	"fmt"
	"time"

	"github.com/keep94/recurrence/config"
	"github.com/keep94/recurrence/recurring"
)

// workspace is an appointment file ready for computing.
type workspace struct {
	calc         *recurring.Calculator
	loc          *time.Location
	appointments []config.Appointment
}

// load reads the appointment file at path. If name is not empty, only
// that appointment is kept.
func load(opts *RootOptions, path, name string) (*workspace, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot load appointments", err)
	}
	loc, err := opts.location()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid --tz", err)
	}
	calcConfig, err := f.CalculatorConfig()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot load appointments", err)
	}
	if opts.FirstDayOfWeek != "" {
		calcConfig.FirstDayOfWeek, err = config.ParseWeekday(opts.FirstDayOfWeek)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --first-day-of-week", err)
		}
	}
	appointments := f.Appointments
	if name != "" {
		a, ok := f.Find(name)
		if !ok {
			return nil, NewExitError(
				ExitCommandError, fmt.Sprintf("no appointment named %q", name))
		}
		appointments = []config.Appointment{*a}
	}
	return &workspace{
		calc:         recurring.NewCalculatorWithConfig(calcConfig),
		loc:          loc,
		appointments: appointments,
	}, nil
}

// schedule converts a to a Schedule or reports why it cannot.
func (w *workspace) schedule(a *config.Appointment) (recurring.Schedule, error) {
	p, err := a.Pattern(w.loc)
	if err != nil {
		return nil, err
	}
	s, err := w.calc.Schedule(p)
	if err != nil {
		return nil, fmt.Errorf("appointment %q: %w", a.Name, err)
	}
	return s, nil
}
