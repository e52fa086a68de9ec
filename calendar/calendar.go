// Copyright 2013 Travis Keep. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file or
// at http://opensource.org/licenses/BSD-3-Clause.

// Package calendar exports occurrences as iCalendar (RFC 5545) data.
package calendar

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const (
	// DefaultProductID is the PRODID used when Exporter.ProductID is empty.
	DefaultProductID = "-//keep94//recurrence//EN"

	kFloatingLayout = "20060102T150405"
)

// Exporter builds VCALENDAR objects. The zero value is ready to use.
type Exporter struct {
	ProductID string

	// NewUID returns the UID for each event. Default is uuid.NewString.
	NewUID func() string

	// Now returns the DTSTAMP for each event. Default is time.Now.
	Now func() time.Time
}

// New returns an empty calendar.
func (e *Exporter) New() *ics.Calendar {
	cal := ics.NewCalendar()
	productID := e.ProductID
	if productID == "" {
		productID = DefaultProductID
	}
	cal.SetProductId(productID)
	return cal
}

// Add adds one event called name to cal. The event starts at the first
// occurrence and has an RDATE for each later one. Times are written as
// floating local times: the wall clock of each occurrence is kept and no
// zone is attached. Add does nothing if occurrences is empty.
func (e *Exporter) Add(cal *ics.Calendar, name string, occurrences []time.Time) {
	if len(occurrences) == 0 {
		return
	}
	event := cal.AddEvent(e.newUID())
	event.SetDtStampTime(e.now())
	event.SetSummary(name)
	event.SetProperty(
		ics.ComponentPropertyDtStart,
		occurrences[0].Format(kFloatingLayout),
		ics.WithValue(string(ics.ValueDataTypeDateTime)))
	for _, o := range occurrences[1:] {
		event.AddRdate(
			o.Format(kFloatingLayout),
			ics.WithValue(string(ics.ValueDataTypeDateTime)))
	}
}

// Write serializes cal to w.
func Write(w io.Writer, cal *ics.Calendar) error {
	return cal.SerializeTo(w)
}

func (e *Exporter) newUID() string {
	if e.NewUID != nil {
		return e.NewUID()
	}
	return uuid.NewString()
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
