// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

// Package config reads recurring appointments from YAML files.
//
// A file looks like this:
//
//	first_day_of_week: monday
//	appointments:
//	  - name: standup
//	    variant: weekly
//	    interval: 2
//	    days: [tuesday, thursday]
//	    start: 2014-01-31T16:00:00
//	    count: 5
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/keep94/recurrence/recurring"
)

var (
	kStartLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}

	kWeekdays = map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	kDaySets = map[string]recurring.DaysOfWeek{
		"weekdays": recurring.Weekdays,
		"weekend":  recurring.Weekend,
		"all":      recurring.AllDays,
	}

	kInstances = map[string]int{
		"first":  1,
		"second": 2,
		"third":  3,
		"fourth": 4,
		"last":   recurring.Last,
	}
)

// Scalar holds the raw text of a YAML scalar. Dates and instances are
// kept as text so that they can be interpreted once the time zone is
// known.
type Scalar string

func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", value.Line)
	}
	*s = Scalar(value.Value)
	return nil
}

// Appointment is one named recurring appointment.
type Appointment struct {
	Name string `yaml:"name"`

	// Variant is one of daily, weekly, monthly, monthly_nth, yearly or
	// yearly_nth.
	Variant string `yaml:"variant"`

	Interval int `yaml:"interval"`

	// Days lists day names, three letter abbreviations, weekdays, weekend
	// or all.
	Days []string `yaml:"days"`

	// Start is when the appointment first happens. Supported forms are
	// 2014-01-31T16:00:00, 2014-01-31 16:00 and 2014-01-31.
	Start Scalar `yaml:"start"`

	Count int `yaml:"count"`

	// End is the last date the appointment may happen on.
	End Scalar `yaml:"end"`

	DayOfMonth  int `yaml:"day_of_month"`
	MonthOfYear int `yaml:"month_of_year"`

	// Instance is 1 through 5 or first, second, third, fourth or last.
	Instance Scalar `yaml:"instance"`
}

// File is the contents of an appointment file.
type File struct {
	// FirstDayOfWeek names the day weeks begin on. Default is sunday.
	FirstDayOfWeek string        `yaml:"first_day_of_week"`
	Appointments   []Appointment `yaml:"appointments"`
}

// Normalize fills in defaults for missing values.
func (f *File) Normalize() {
	if f.FirstDayOfWeek == "" {
		f.FirstDayOfWeek = "sunday"
	}
	if f.Appointments == nil {
		f.Appointments = []Appointment{}
	}
}

// Load reads the appointment file at path.
func Load(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes an appointment file. Parse checks that every appointment
// has a unique name and that the first day of week is known. It does not
// check the appointments themselves; see Appointment.Pattern.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	f.Normalize()
	if _, err := f.FirstDay(); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(f.Appointments))
	for i := range f.Appointments {
		name := f.Appointments[i].Name
		if name == "" {
			return nil, fmt.Errorf("appointment %d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate appointment %q", name)
		}
		seen[name] = true
	}
	return &f, nil
}

// FirstDay returns the day on which weeks begin.
func (f *File) FirstDay() (time.Weekday, error) {
	if f.FirstDayOfWeek == "" {
		return time.Sunday, nil
	}
	return ParseWeekday(f.FirstDayOfWeek)
}

// CalculatorConfig returns the engine configuration this file asks for.
func (f *File) CalculatorConfig() (recurring.Config, error) {
	day, err := f.FirstDay()
	if err != nil {
		return recurring.Config{}, err
	}
	config := recurring.DefaultConfig
	config.FirstDayOfWeek = day
	return config, nil
}

// Find returns the appointment called name.
func (f *File) Find(name string) (*Appointment, bool) {
	for i := range f.Appointments {
		if f.Appointments[i].Name == name {
			return &f.Appointments[i], true
		}
	}
	return nil, false
}

// Pattern converts this appointment to a recurring.Pattern. Dates without
// a zone are interpreted in loc. Pattern does not call recurring.Validate.
func (a *Appointment) Pattern(loc *time.Location) (recurring.Pattern, error) {
	p, err := a.pattern(loc)
	if err != nil {
		return recurring.Pattern{}, fmt.Errorf("appointment %q: %w", a.Name, err)
	}
	return p, nil
}

func (a *Appointment) pattern(loc *time.Location) (recurring.Pattern, error) {
	variant, err := recurring.ParseVariant(strings.ToLower(a.Variant))
	if err != nil {
		return recurring.Pattern{}, err
	}
	days, err := ParseDays(a.Days)
	if err != nil {
		return recurring.Pattern{}, err
	}
	if a.Start == "" {
		return recurring.Pattern{}, errors.New("start is required")
	}
	start, err := ParseTime(string(a.Start), loc)
	if err != nil {
		return recurring.Pattern{}, fmt.Errorf("start: %w", err)
	}
	instance, err := ParseInstance(string(a.Instance))
	if err != nil {
		return recurring.Pattern{}, err
	}
	b := recurring.NewBuilder(variant).
		Interval(a.Interval).
		Days(days).
		Start(start).
		Count(a.Count).
		DayOfMonth(a.DayOfMonth).
		MonthOfYear(a.MonthOfYear).
		Instance(instance)
	if a.End != "" {
		end, err := ParseTime(string(a.End), loc)
		if err != nil {
			return recurring.Pattern{}, fmt.Errorf("end: %w", err)
		}
		b.End(end)
	}
	return b.Build(), nil
}

// ParseWeekday parses a day name such as "monday" or "Mon".
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if w, ok := kWeekdays[name]; ok {
		return w, nil
	}
	if len(name) == 3 {
		for full, w := range kWeekdays {
			if strings.HasPrefix(full, name) {
				return w, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("unknown day of week %q", s)
}

// ParseDays ors together the days that names lists. names may also
// contain weekdays, weekend and all.
func ParseDays(names []string) (recurring.DaysOfWeek, error) {
	var result recurring.DaysOfWeek
	for _, name := range names {
		if set, ok := kDaySets[strings.ToLower(strings.TrimSpace(name))]; ok {
			result |= set
			continue
		}
		w, err := ParseWeekday(name)
		if err != nil {
			return 0, err
		}
		result |= recurring.DayOf(w)
	}
	return result, nil
}

// ParseInstance parses an instance such as "3" or "last". The empty
// string means 0.
func ParseInstance(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	if n, ok := kInstances[s]; ok {
		return n, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown instance %q", s)
	}
	return n, nil
}

// ParseTime parses s in loc using the first layout that fits.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range kStartLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date", s)
}
