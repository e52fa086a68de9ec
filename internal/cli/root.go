// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

// Package cli implements the recurcalc command line.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/keep94/recurrence/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose        bool
	Format         string // "text" | "json" | "ics"
	FirstDayOfWeek string // overrides the appointment file when set
	TZ             string // location for dates in appointment files
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "ics"}

// NewRootCommand creates the root command for recurcalc.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "recurcalc",
		Short: "Compute recurring appointments",
		Long: `recurcalc reads recurring appointments from a YAML file and lists
when they happen, checks them for mistakes or reminds you ahead of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(
					ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.FirstDayOfWeek != "" {
				if _, err := config.ParseWeekday(opts.FirstDayOfWeek); err != nil {
					return WrapExitError(ExitCommandError, "invalid --first-day-of-week", err)
				}
			}
			if _, err := opts.location(); err != nil {
				return WrapExitError(ExitCommandError, "invalid --tz", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|ics)")
	cmd.PersistentFlags().StringVar(
		&opts.FirstDayOfWeek, "first-day-of-week", "", "day weeks begin on (default from file)")
	cmd.PersistentFlags().StringVar(
		&opts.TZ, "tz", "Local", "time zone for dates in the appointment file")

	cmd.AddCommand(NewOccurrencesCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRemindCommand(opts))

	return cmd
}

func (o *RootOptions) location() (*time.Location, error) {
	if o.TZ == "" || o.TZ == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(o.TZ)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
