// Package render presents analysis reports as terminal text, markdown or JSON.
// Renderers only read the reports they are given.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/naka-gawa/pr-insights/internal/domain"
)

const (
	barWidth        = 30
	sparklineWidth  = 60
	defaultTopRepos = 10
)

// Options control the text renderer.
type Options struct {
	Color           bool
	TopRepositories int
}

// countEntry is one bucket of a histogram.
type countEntry struct {
	Key   string
	Count int
}

// JSON writes reports as indented JSON.
func JSON(w io.Writer, reports []*domain.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// byCount orders histogram buckets by descending count, then by key.
func byCount(m map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, countEntry{Key: k, Count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// byKey orders histogram buckets by key.
func byKey(m map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, countEntry{Key: k, Count: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func share(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

func sum(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// bar draws a fixed width bar for value relative to maxValue.
func bar(value, maxValue int) string {
	filled := 0
	if maxValue > 0 {
		filled = value * barWidth / maxValue
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func topN(entries []countEntry, n int) []countEntry {
	if n <= 0 {
		n = defaultTopRepos
	}
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
