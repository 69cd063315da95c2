// Package domain contains the core data structures shared by every stage
// of the analysis pipeline.
package domain

import "time"

// Defaults applied while normalizing records from a source.
const (
	UnknownRepository = "unknown/unknown"
	UnknownState      = "unknown"
	EpochTimestamp    = "1970-01-01T00:00:00Z"
)

// Recognized record states.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// Record is one authored pull request after normalization.
// Every field holds a usable value; absent source fields have already been
// replaced by their defaults.
type Record struct {
	Repository  string `json:"repository"`
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	AuthorLogin string `json:"author_login"`
	State       string `json:"state"`
	IsDraft     bool   `json:"is_draft"`
	// CreatedAt is the ISO-8601 text delivered by the source. It is kept as
	// text so histograms can bucket it even when it does not parse.
	CreatedAt string `json:"created_at"`
	// MergedAt is empty when the pull request was never merged.
	MergedAt string `json:"merged_at,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Merged reports whether the record carries a merge timestamp.
func (r Record) Merged() bool {
	return r.MergedAt != ""
}

// Year returns the year bucket of the creation timestamp.
func (r Record) Year() string { return prefix(r.CreatedAt, 4) }

// Month returns the year-month bucket of the creation timestamp.
func (r Record) Month() string { return prefix(r.CreatedAt, 7) }

// Day returns the year-month-day bucket of the creation timestamp.
func (r Record) Day() string { return prefix(r.CreatedAt, 10) }

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// Label is the classification attached to a record.
type Label struct {
	Type string `json:"type"`
	Tool string `json:"tool"`
}

// LabeledRecord is a record together with its classification.
type LabeledRecord struct {
	Record
	Label Label `json:"label"`
}

// Triple is one point of the time-ordered activity list.
type Triple struct {
	At     time.Time `json:"at"`
	State  string    `json:"state"`
	Merged bool      `json:"merged"`
}
