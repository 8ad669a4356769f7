// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value objects shared across the deadliner
// pipeline stages: annotation records, attribution, and the notification
// message wire shape.
package types

import (
	"fmt"
	"time"
)

// Deadline is the calendar date by which an annotated declaration is
// expected to be removed or revisited. Year, Month, and Day are always
// well-formed integers; occurrences that fail to parse never produce a
// Deadline.
type Deadline struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// Date returns the deadline as a time.Time at local midnight.
func (d Deadline) Date() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.Local)
}

// String formats the deadline as YYYY-MM-DD with zero-padded month and day.
func (d Deadline) String() string {
	return fmt.Sprintf("%s-%s-%s", ZeroPad(d.Year, 4), ZeroPad(d.Month, 2), ZeroPad(d.Day, 2))
}

// ZeroPad formats n left-padded with zeros to the given width.
func ZeroPad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// Attribution identifies the author of the line that introduced an
// annotation, as reported by version control.
type Attribution struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// AnnotationRecord is one parsed @Deadline occurrence. A record is created
// once per matched annotation and is immutable afterwards, except for the
// single Attribution write performed by the enrichment stage.
type AnnotationRecord struct {
	// SourcePath is the path of the document the annotation was found in.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// Line is the 1-based line number of the annotation marker.
	Line int `json:"line" yaml:"line"`

	// Deadline is the parsed year/month/day.
	Deadline Deadline `json:"deadline" yaml:"deadline"`

	// Description is the optional free-text note from the annotation.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Mention is the optional explicit mention directive from the annotation
	// (e.g. "<@U123>" or "@here"). Used verbatim when present.
	Mention string `json:"mention,omitempty" yaml:"mention,omitempty"`

	// CodeExcerpt is the extracted declaration source, possibly truncated.
	CodeExcerpt string `json:"code_excerpt" yaml:"code_excerpt"`

	// Element is the best-effort declaration identifier, or a sentinel
	// ("unknown", "anonymous extension") when classification failed.
	Element string `json:"element" yaml:"element"`

	// Attribution is set by the enrichment stage; nil when the lookup
	// failed or was skipped.
	Attribution *Attribution `json:"attribution,omitempty" yaml:"attribution,omitempty"`
}

// ParseOutcome is the result of scanning one document. Errors are
// human-readable and non-fatal: a parse failure on one annotation never
// blocks the remaining annotations in the same document.
type ParseOutcome struct {
	Records []AnnotationRecord `json:"records" yaml:"records"`
	Errors  []string           `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// HasErrors reports whether the document produced any parse or read errors.
func (o ParseOutcome) HasErrors() bool {
	return len(o.Errors) > 0
}
