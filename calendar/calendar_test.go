// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

package calendar_test

import (
	"bytes"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keep94/recurrence/calendar"
)

var kStamp = time.Date(2014, 1, 1, 12, 0, 0, 0, time.UTC)

func newExporter() *calendar.Exporter {
	uids := []string{"uid-1", "uid-2"}
	return &calendar.Exporter{
		ProductID: "-//test//EN",
		NewUID: func() string {
			result := uids[0]
			uids = uids[1:]
			return result
		},
		Now: func() time.Time { return kStamp },
	}
}

func TestExport(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	e := newExporter()
	cal := e.New()
	e.Add(cal, "standup", []time.Time{
		time.Date(2014, 2, 11, 16, 0, 0, 0, loc),
		time.Date(2014, 2, 13, 16, 0, 0, 0, loc),
		time.Date(2014, 2, 25, 16, 0, 0, 0, loc),
	})
	e.Add(cal, "nothing", nil)
	e.Add(cal, "once", []time.Time{time.Date(2014, 3, 1, 9, 30, 0, 0, time.UTC)})

	var buf bytes.Buffer
	require.NoError(t, calendar.Write(&buf, cal))
	text := buf.String()
	assert.Contains(t, text, "PRODID:-//test//EN")
	assert.Contains(t, text, "SUMMARY:standup")
	assert.NotContains(t, text, "nothing")

	parsed, err := ics.ParseCalendar(&buf)
	require.NoError(t, err)
	events := parsed.Events()
	require.Len(t, events, 2)

	standup := events[0]
	assert.Equal(t, "uid-1", standup.Id())
	assert.Equal(
		t, "20140101T120000Z", standup.GetProperty(ics.ComponentPropertyDtstamp).Value)
	assert.Equal(
		t, "standup", standup.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(
		t, "20140211T160000", standup.GetProperty(ics.ComponentPropertyDtStart).Value)
	var rdates []string
	for _, p := range standup.GetProperties(ics.ComponentPropertyRdate) {
		rdates = append(rdates, p.Value)
	}
	assert.Equal(t, []string{"20140213T160000", "20140225T160000"}, rdates)

	once := events[1]
	assert.Equal(t, "uid-2", once.Id())
	assert.Equal(
		t, "20140301T093000", once.GetProperty(ics.ComponentPropertyDtStart).Value)
	assert.Empty(t, once.GetProperties(ics.ComponentPropertyRdate))
}

func TestExportDefaults(t *testing.T) {
	var e calendar.Exporter
	cal := e.New()
	before := time.Now().UTC().Truncate(time.Second)
	e.Add(cal, "a", []time.Time{time.Date(2014, 3, 1, 9, 30, 0, 0, time.UTC)})
	assert.Contains(t, cal.Serialize(), "PRODID:"+calendar.DefaultProductID)

	events := cal.Events()
	require.Len(t, events, 1)
	_, err := uuid.Parse(events[0].Id())
	assert.NoError(t, err)
	stamp, err := time.Parse(
		"20060102T150405Z",
		events[0].GetProperty(ics.ComponentPropertyDtstamp).Value)
	require.NoError(t, err)
	assert.False(t, stamp.Before(before))
}
