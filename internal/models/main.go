// Package models defines the core data structures for users and reminders.
package models

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when a reminder does not exist in the store.
var ErrNotFound = errors.New("reminder not found")

// ErrSubmitInFlight is returned when a form submit is attempted while a
// previous submit has not finished yet.
var ErrSubmitInFlight = errors.New("submit already in flight")

// TimeOption labels when the user wants to be reminded of a story.
// It is descriptive metadata only; no scheduler acts on it.
type TimeOption string

const (
	// InMoment marks a story to recall right away.
	InMoment TimeOption = "in-moment"
	// In5Min marks a story to recall in five minutes.
	In5Min TimeOption = "in-5-min"
	// In10Min marks a story to recall in ten minutes.
	In10Min TimeOption = "in-10-min"
	// In30Min marks a story to recall in thirty minutes.
	In30Min TimeOption = "in-30-min"
	// In60Min marks a story to recall in sixty minutes.
	In60Min TimeOption = "in-60-min"
)

// TimeOptions lists every valid option in display order.
var TimeOptions = []TimeOption{InMoment, In5Min, In10Min, In30Min, In60Min}

// timeOptionLabels holds the Spanish display labels shown to the user.
var timeOptionLabels = map[TimeOption]string{
	InMoment: "Al momento",
	In5Min:   "En 5 minutos",
	In10Min:  "En 10 minutos",
	In30Min:  "En 30 minutos",
	In60Min:  "En 60 minutos",
}

// Valid reports whether t is one of the known time options.
func (t TimeOption) Valid() bool {
	_, ok := timeOptionLabels[t]
	return ok
}

// Label returns the Spanish display label for t, or the raw value if unknown.
func (t TimeOption) Label() string {
	if l, ok := timeOptionLabels[t]; ok {
		return l
	}
	return string(t)
}

// Reminder is a single memorized-story record owned by one user.
type Reminder struct {
	// ID is the store-assigned identifier; immutable after creation.
	ID string `json:"id"`
	// Slug is derived from Title and Text and must be unique per owner.
	Slug string `json:"slug"`
	// Title names the story.
	Title string `json:"title"`
	// Text is the scriptural reference, e.g. "Marcos 4:32-45".
	Text string `json:"text"`
	// VerseCount is the number of verses covered; always >= 1.
	VerseCount int `json:"verseCount"`
	// TimeOption is the reminder-timing label.
	TimeOption TimeOption `json:"timeOption"`
	// Module references a catalog module value; empty for personal entries.
	Module string `json:"module,omitempty"`
	// IsPersonal is true for freeform entries, false for catalog copies.
	IsPersonal bool `json:"isPersonal"`
	// DNI is the owner key; set at creation, never mutated.
	DNI string `json:"dni"`
	// CreatedAt is the server-assigned creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// User is an identity record keyed by the resolved dni.
type User struct {
	// DNI is the combined or free-text identifier.
	DNI string `json:"dni"`
	// CreatedAt is when the record was first inserted.
	CreatedAt time.Time `json:"createdAt"`
}

// ValidationErrors maps field names to user-facing messages. It blocks
// submission and never reaches the store, unlike store errors.
type ValidationErrors map[string]string

// Error joins the field messages in field order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, f := range fields {
		sb.WriteString(" ")
		sb.WriteString(f)
		sb.WriteString(": ")
		sb.WriteString(v[f])
	}
	return sb.String()
}

// AsValidation unwraps err into ValidationErrors, if it carries one.
func AsValidation(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
