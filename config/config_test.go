// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keep94/recurrence/config"
	"github.com/keep94/recurrence/recurring"
)

func TestLoad(t *testing.T) {
	f, err := config.Load(filepath.Join("testdata", "appointments.yaml"))
	require.NoError(t, err)
	require.Len(t, f.Appointments, 4)

	day, err := f.FirstDay()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)
	calcConfig, err := f.CalculatorConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, calcConfig.FirstDayOfWeek)

	a, ok := f.Find("standup")
	require.True(t, ok)
	p, err := a.Pattern(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, recurring.Weekly, p.Variant())
	assert.Equal(t, 2, p.Interval())
	assert.Equal(t, recurring.Tuesday|recurring.Thursday, p.Days())
	assert.Equal(t, time.Date(2014, 1, 31, 16, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, 5, p.Count())
	assert.Empty(t, recurring.Validate(p))

	a, ok = f.Find("rent")
	require.True(t, ok)
	p, err = a.Pattern(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, recurring.Monthly, p.Variant())
	assert.Equal(t, 31, p.DayOfMonth())
	assert.Equal(t, time.Date(2014, 1, 31, 16, 0, 0, 0, time.UTC), p.Start())
	end, ok := p.End().Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(2014, 11, 11, 0, 0, 0, 0, time.UTC), end)
	occurrences, err := recurring.NewCalculator().Occurrences(p)
	require.NoError(t, err)
	assert.Len(t, occurrences, 4)

	a, ok = f.Find("review")
	require.True(t, ok)
	p, err = a.Pattern(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, recurring.Last, p.Instance())
	assert.Equal(t, recurring.Weekend, p.Days())

	a, ok = f.Find("budget")
	require.True(t, ok)
	p, err = a.Pattern(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, recurring.YearlyNth, p.Variant())
	assert.Equal(t, 3, p.Instance())
	assert.Equal(t, 2, p.MonthOfYear())
	assert.Equal(t, time.Date(2014, 1, 31, 0, 0, 0, 0, time.UTC), p.Start())

	_, ok = f.Find("missing")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = config.Load("")
	assert.Error(t, err)
}

func TestParseDefaults(t *testing.T) {
	f, err := config.Parse([]byte("appointments: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "sunday", f.FirstDayOfWeek)
	day, err := f.FirstDay()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)

	f, err = config.Parse([]byte(""))
	require.NoError(t, err)
	assert.NotNil(t, f.Appointments)
	assert.Empty(t, f.Appointments)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"badFirstDay", "first_day_of_week: someday\n"},
		{"noName", "appointments:\n  - variant: daily\n"},
		{"duplicate", "appointments:\n  - name: a\n  - name: a\n"},
		{"badYaml", "appointments: [\n"},
		{"startNotScalar", "appointments:\n  - name: a\n    start: [1]\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestPatternErrors(t *testing.T) {
	valid := config.Appointment{
		Name:     "a",
		Variant:  "daily",
		Interval: 1,
		Days:     []string{"all"},
		Start:    "2014-01-31",
		Count:    1,
	}
	_, err := valid.Pattern(time.UTC)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		mutate func(a *config.Appointment)
	}{
		{"variant", func(a *config.Appointment) { a.Variant = "hourly" }},
		{"day", func(a *config.Appointment) { a.Days = []string{"funday"} }},
		{"noStart", func(a *config.Appointment) { a.Start = "" }},
		{"start", func(a *config.Appointment) { a.Start = "31/01/2014" }},
		{"end", func(a *config.Appointment) { a.End = "soon" }},
		{"instance", func(a *config.Appointment) { a.Instance = "fifth" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := valid
			tc.mutate(&a)
			_, err := a.Pattern(time.UTC)
			require.Error(t, err)
			assert.Contains(t, err.Error(), `appointment "a"`)
		})
	}

	a := valid
	a.Variant = "hourly"
	_, err = a.Pattern(time.UTC)
	assert.ErrorIs(t, err, recurring.ErrUnsupportedVariant)
}

func TestPatternUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	a := config.Appointment{
		Name: "a", Variant: "Daily", Interval: 1, Start: "2014-01-31 07:30", Count: 1}
	p, err := a.Pattern(loc)
	require.NoError(t, err)
	assert.Equal(t, "2014-01-31T07:30:00+09:00", p.Start().Format(time.RFC3339))
}

func TestParseDays(t *testing.T) {
	days, err := config.ParseDays([]string{"Monday", "wed", " FRI "})
	require.NoError(t, err)
	assert.Equal(t, recurring.Monday|recurring.Wednesday|recurring.Friday, days)

	days, err = config.ParseDays([]string{"weekend", "tuesday"})
	require.NoError(t, err)
	assert.Equal(t, recurring.Weekend|recurring.Tuesday, days)

	days, err = config.ParseDays([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, recurring.AllDays, days)

	days, err = config.ParseDays(nil)
	require.NoError(t, err)
	assert.True(t, days.IsEmpty())

	_, err = config.ParseDays([]string{"mo"})
	assert.Error(t, err)
}

func TestParseInstance(t *testing.T) {
	for s, expected := range map[string]int{
		"": 0, "first": 1, "Second": 2, "third": 3, "fourth": 4, "last": 5, "3": 3,
	} {
		actual, err := config.ParseInstance(s)
		require.NoError(t, err, s)
		assert.Equal(t, expected, actual, s)
	}
	_, err := config.ParseInstance("fifth")
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	expected := time.Date(2014, 1, 31, 16, 0, 0, 0, time.UTC)
	for _, s := range []string{
		"2014-01-31T16:00:00", "2014-01-31T16:00", "2014-01-31 16:00:00", "2014-01-31 16:00",
	} {
		actual, err := config.ParseTime(s, time.UTC)
		require.NoError(t, err, s)
		assert.Equal(t, expected, actual, s)
	}
	actual, err := config.ParseTime("2014-01-31", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2014, 1, 31, 0, 0, 0, 0, time.UTC), actual)
}
