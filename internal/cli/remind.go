// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/keep94/recurrence/remind"
)

// RemindOptions holds the flags of the remind command.
type RemindOptions struct {
	Name string
	Lead time.Duration

	// Clock is for tests. nil means the system clock.
	Clock remind.Clock
}

// NewRemindCommand creates the remind command.
func NewRemindCommand(rootOpts *RootOptions) *cobra.Command {
	return newRemindCommand(rootOpts, &RemindOptions{})
}

func newRemindCommand(rootOpts *RootOptions, opts *RemindOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind <file>",
		Short: "Print a reminder ahead of each appointment",
		Long: `Wait for upcoming appointments and print a line for each one --lead
before it starts. Runs until no appointment has occurrences left or until
interrupted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemind(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "only this appointment")
	cmd.Flags().DurationVar(&opts.Lead, "lead", 15*time.Minute, "how long before each occurrence to remind")
	return cmd
}

func runRemind(rootOpts *RootOptions, opts *RemindOptions, path string, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)
	log := formatter.Logger()
	w, err := load(rootOpts, path, opts.Name)
	if err != nil {
		return err
	}
	jobs := make([]remind.Job, 0, len(w.appointments))
	for i := range w.appointments {
		a := &w.appointments[i]
		s, err := w.schedule(a)
		if err != nil {
			return WrapExitError(ExitFailure, "invalid appointment", err)
		}
		jobs = append(jobs, remind.Job{Name: a.Name, Schedule: s})
	}
	runner := &remind.Runner{Clock: opts.Clock, Lead: opts.Lead, Logger: log}
	log.Info().Int("appointments", len(jobs)).Dur("lead", opts.Lead).Msg("starting")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	err = runner.RunAll(ctx, jobs, remind.WriterReminder(formatter.Writer))
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("interrupted")
		return nil
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "reminders stopped", err)
	}
	return nil
}
