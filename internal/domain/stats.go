package domain

import "time"

// NoRepositories is reported as the top repository of an empty summary.
const NoRepositories = "No repositories"

// Summary holds the aggregate statistics of one analysis run.
// Consumers must treat it as read-only.
type Summary struct {
	Merged  int `json:"merged"`
	Pending int `json:"pending"`
	Closed  int `json:"closed"`
	Draft   int `json:"draft"`
	Stale   int `json:"stale"`
	// Total is merged + pending + closed; drafts and stale records overlap
	// those buckets and are not added again.
	Total          int     `json:"total"`
	AcceptanceRate float64 `json:"acceptance_rate"`
	TopRepository  string  `json:"top_repository"`

	Yearly       map[string]int `json:"yearly"`
	Monthly      map[string]int `json:"monthly"`
	Daily        map[string]int `json:"daily"`
	Repositories map[string]int `json:"repositories"`
	Types        map[string]int `json:"types"`
	Tools        map[string]int `json:"tools"`

	Details []Detail `json:"details"`
	Triples []Triple `json:"-"`
}

// Detail is the per-record line of a report.
type Detail struct {
	Repository string `json:"repository"`
	Number     int    `json:"number"`
	Title      string `json:"title"`
	State      string `json:"state"`
	Merged     bool   `json:"merged"`
	URL        string `json:"url"`
	CreatedOn  string `json:"created_on"`
	Type       string `json:"type"`
	Tool       string `json:"tool"`
}

// ScoreSeries is the productivity time series. Timestamps and Scores
// always have the same length.
type ScoreSeries struct {
	Timestamps []time.Time `json:"timestamps"`
	Scores     []float64   `json:"scores"`
}

// Len returns the number of points in the series.
func (s ScoreSeries) Len() int { return len(s.Scores) }

// Trend directions.
const (
	TrendImproving    = "improving"
	TrendDeclining    = "declining"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient"
)

// Trend summarizes a score series.
type Trend struct {
	Direction       string  `json:"direction"`
	StartAverage    float64 `json:"start_average"`
	EndAverage      float64 `json:"end_average"`
	Average         float64 `json:"average"`
	AverageGapHours float64 `json:"average_gap_hours"`
	MedianGapHours  float64 `json:"median_gap_hours"`
}

// Profile is the public account information of the analyzed user.
type Profile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	CreatedAt   time.Time `json:"created_at"`
}

// RateLimit is the remaining API budget of the authenticated token.
type RateLimit struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// Report bundles everything produced for a single user.
type Report struct {
	User        string      `json:"user"`
	Profile     *Profile    `json:"profile,omitempty"`
	Summary     Summary     `json:"summary"`
	Series      ScoreSeries `json:"productivity"`
	Trend       Trend       `json:"trend"`
	GeneratedAt time.Time   `json:"generated_at"`
}
