// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/keep94/recurrence/calendar"
	"github.com/keep94/recurrence/config"
	"github.com/keep94/recurrence/recurring"
)

const (
	kTextLayout = "2006-01-02 15:04 Mon"
	kJSONLayout = "2006-01-02T15:04:05"
)

// AppointmentOccurrences is the json output for one appointment.
type AppointmentOccurrences struct {
	Name        string   `json:"name"`
	Occurrences []string `json:"occurrences"`
}

type computed struct {
	name  string
	times []time.Time
}

// OccurrencesOptions narrows what the occurrences command lists.
type OccurrencesOptions struct {
	Name   string
	Merged bool
	On     []string
	From   string
	Until  string
}

// NewOccurrencesCommand creates the occurrences command.
func NewOccurrencesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OccurrencesOptions{}
	cmd := &cobra.Command{
		Use:   "occurrences <file>",
		Short: "List when appointments happen",
		Long: `List every occurrence of every appointment in the file, or of just
the one chosen with --name. Appointments without an end date or count
are rejected.

--merged lists the occurrences of all the appointments as one timeline
named after the file. Times that appointments share are listed once.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOccurrences(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "only this appointment")
	cmd.Flags().BoolVar(&opts.Merged, "merged", false, "one merged timeline for the whole file")
	cmd.Flags().StringSliceVar(&opts.On, "on", nil, "only occurrences on these days e.g. tue,weekend")
	cmd.Flags().StringVar(&opts.From, "from", "", "only occurrences on or after this time")
	cmd.Flags().StringVar(&opts.Until, "until", "", "only occurrences before this time")
	return cmd
}

// narrowing returns a function that applies the --on, --from and --until
// restrictions to a schedule.
func (o *OccurrencesOptions) narrowing(
	loc *time.Location) (func(recurring.Schedule) recurring.Schedule, error) {
	var days recurring.DaysOfWeek
	if len(o.On) > 0 {
		var err error
		if days, err = config.ParseDays(o.On); err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --on", err)
		}
	}
	var from, until time.Time
	if o.From != "" {
		var err error
		if from, err = config.ParseTime(o.From, loc); err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --from", err)
		}
	}
	if o.Until != "" {
		var err error
		if until, err = config.ParseTime(o.Until, loc); err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --until", err)
		}
	}
	return func(s recurring.Schedule) recurring.Schedule {
		if len(o.On) > 0 {
			s = recurring.Filter(s, recurring.OnDays(days))
		}
		if o.From != "" {
			s = recurring.StartAt(s, from)
		}
		if o.Until != "" {
			s = recurring.Until(s, until)
		}
		return s
	}, nil
}

func runOccurrences(
	rootOpts *RootOptions,
	opts *OccurrencesOptions,
	path string,
	cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)
	log := formatter.Logger()
	w, err := load(rootOpts, path, opts.Name)
	if err != nil {
		return err
	}
	narrow, err := opts.narrowing(w.loc)
	if err != nil {
		return err
	}
	schedules := make([]recurring.Schedule, len(w.appointments))
	for i := range w.appointments {
		s, err := w.schedule(&w.appointments[i])
		if err != nil {
			return WrapExitError(ExitFailure, "invalid appointment", err)
		}
		schedules[i] = narrow(s)
	}
	var results []computed
	if opts.Merged {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		times, err := recurring.Collect(recurring.Combine(schedules...).Occurrences())
		if err != nil {
			return WrapExitError(ExitFailure, "cannot compute occurrences", err)
		}
		log.Debug().Str("file", path).Int("count", len(times)).Msg("merged")
		results = []computed{{name: name, times: times}}
	} else {
		results = make([]computed, 0, len(schedules))
		for i, s := range schedules {
			name := w.appointments[i].Name
			times, err := recurring.Collect(s.Occurrences())
			if err != nil {
				return WrapExitError(ExitFailure, "cannot compute occurrences", err)
			}
			log.Debug().Str("appointment", name).Int("count", len(times)).Msg("computed")
			results = append(results, computed{name: name, times: times})
		}
	}
	switch formatter.Format {
	case "json":
		return writeOccurrencesJSON(formatter, results)
	case "ics":
		return writeOccurrencesICS(formatter, results)
	default:
		return writeOccurrencesText(formatter, results)
	}
}

func writeOccurrencesText(f *OutputFormatter, results []computed) error {
	for _, r := range results {
		for _, t := range r.times {
			if _, err := fmt.Fprintf(f.Writer, "%s\t%s\n", r.name, t.Format(kTextLayout)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeOccurrencesJSON(f *OutputFormatter, results []computed) error {
	out := make([]AppointmentOccurrences, len(results))
	for i, r := range results {
		out[i] = AppointmentOccurrences{
			Name: r.name, Occurrences: make([]string, len(r.times))}
		for j, t := range r.times {
			out[i].Occurrences[j] = t.Format(kJSONLayout)
		}
	}
	return f.JSON(out)
}

func writeOccurrencesICS(f *OutputFormatter, results []computed) error {
	var exporter calendar.Exporter
	cal := exporter.New()
	for _, r := range results {
		exporter.Add(cal, r.name, r.times)
	}
	return calendar.Write(f.Writer, cal)
}
