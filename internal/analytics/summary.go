// Package analytics reduces labeled pull request records into summary
// statistics and derives the productivity score series from them.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/naka-gawa/pr-insights/internal/domain"
)

// StaleAfterDays is the age, in whole days, an open record must exceed to be stale.
const StaleAfterDays = 180

const (
	tripleLayout = "2006-01-02T15:04:05"
	dayLayout    = "2006-01-02"
)

// Summarize builds the statistics summary of records. now is the reference
// time for staleness; callers freeze it to get reproducible output.
func Summarize(records []domain.LabeledRecord, now time.Time) domain.Summary {
	s := domain.Summary{
		Yearly:       make(map[string]int),
		Monthly:      make(map[string]int),
		Daily:        make(map[string]int),
		Repositories: make(map[string]int),
		Types:        make(map[string]int),
		Tools:        make(map[string]int),
		Details:      make([]domain.Detail, 0, len(records)),
		Triples:      make([]domain.Triple, 0, len(records)),
	}

	var repoOrder []string
	for _, r := range records {
		if _, ok := s.Repositories[r.Repository]; !ok {
			repoOrder = append(repoOrder, r.Repository)
		}
		s.Repositories[r.Repository]++
		s.Yearly[r.Year()]++
		s.Monthly[r.Month()]++
		s.Daily[r.Day()]++
		s.Types[r.Label.Type]++
		s.Tools[r.Label.Tool]++

		if r.IsDraft {
			s.Draft++
		}

		switch r.State {
		case domain.StateOpen:
			s.Pending++
			if isStale(r.Record, now) {
				s.Stale++
			}
		case domain.StateClosed:
			if r.Merged() {
				s.Merged++
			} else {
				s.Closed++
			}
		}

		if at, err := time.Parse(tripleLayout, prefix(r.CreatedAt, len(tripleLayout))); err == nil {
			s.Triples = append(s.Triples, domain.Triple{At: at, State: r.State, Merged: r.Merged()})
		}

		s.Details = append(s.Details, domain.Detail{
			Repository: r.Repository,
			Number:     r.Number,
			Title:      r.Title,
			State:      r.State,
			Merged:     r.Merged(),
			URL:        r.URL,
			CreatedOn:  r.Day(),
			Type:       r.Label.Type,
			Tool:       r.Label.Tool,
		})
	}

	s.Total = s.Merged + s.Pending + s.Closed
	s.AcceptanceRate = AcceptanceRate(s.Merged, s.Pending, s.Closed)
	s.TopRepository = topKey(repoOrder, s.Repositories, domain.NoRepositories)

	sort.SliceStable(s.Triples, func(i, j int) bool {
		return s.Triples[i].At.Before(s.Triples[j].At)
	})
	return s
}

// AcceptanceRate returns the merged share of all resolved and pending
// records as a percentage rounded to two decimals, or 0 without any.
func AcceptanceRate(merged, pending, closed int) float64 {
	total := merged + pending + closed
	if total == 0 {
		return 0
	}
	return math.Round(float64(merged)*100/float64(total)*100) / 100
}

func isStale(r domain.Record, now time.Time) bool {
	created, err := time.Parse(dayLayout, r.Day())
	if err != nil {
		return false
	}
	days := int(now.Sub(created).Hours() / 24)
	return days > StaleAfterDays
}

// topKey returns the key with the highest count. order lists keys in the
// order they were first seen; the earliest wins a tie.
func topKey(order []string, counts map[string]int, empty string) string {
	best, bestCount := empty, 0
	for _, k := range order {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
