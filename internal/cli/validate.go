// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keep94/recurrence/config"
	"github.com/keep94/recurrence/recurring"
)

// AppointmentResult is the validation outcome for one appointment.
type AppointmentResult struct {
	Name       string `json:"name"`
	Valid      bool   `json:"valid"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid        bool                `json:"valid"`
	Appointments []AppointmentResult `json:"appointments"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check appointments for mistakes",
		Long: `Check every appointment in the file and report the first problem
with each. Exits with status 1 if any appointment is invalid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	log := formatter.Logger()
	w, err := load(opts, path, "")
	if err != nil {
		return err
	}
	result := ValidationResult{
		Valid:        true,
		Appointments: make([]AppointmentResult, 0, len(w.appointments)),
	}
	for i := range w.appointments {
		a := &w.appointments[i]
		diagnostic := diagnose(w, a)
		log.Debug().Str("appointment", a.Name).Str("diagnostic", diagnostic).Msg("validated")
		if diagnostic != "" {
			result.Valid = false
		}
		result.Appointments = append(result.Appointments, AppointmentResult{
			Name: a.Name, Valid: diagnostic == "", Diagnostic: diagnostic})
	}

	if formatter.Format == "json" {
		if err := formatter.Envelope(result.Valid, result); err != nil {
			return err
		}
	} else {
		for _, r := range result.Appointments {
			status := r.Diagnostic
			if r.Valid {
				status = "ok"
			}
			if _, err := fmt.Fprintf(formatter.Writer, "%s: %s\n", r.Name, status); err != nil {
				return err
			}
		}
	}
	if !result.Valid {
		invalid := 0
		for _, r := range result.Appointments {
			if !r.Valid {
				invalid++
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid appointment(s)", invalid))
	}
	return nil
}

// diagnose returns what is wrong with a or the empty string.
func diagnose(w *workspace, a *config.Appointment) string {
	p, err := a.Pattern(w.loc)
	if err != nil {
		if inner := errors.Unwrap(err); inner != nil {
			return inner.Error()
		}
		return err.Error()
	}
	return recurring.Validate(p)
}
