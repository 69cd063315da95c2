package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/naka-gawa/pr-insights/internal/domain"
)

const (
	breakdownPerType = 5
	repoColumnWidth  = 15
	titleColumnWidth = 35
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// heatmapLines renders monthly counts as a year by month grid. Each cell is
// shaded against the busiest month. Keys that are not YYYY-MM are skipped.
func heatmapLines(monthly map[string]int) []string {
	years := make(map[string][12]int)
	maxCount := 0
	for key, count := range monthly {
		year, month, ok := splitMonth(key)
		if !ok {
			continue
		}
		row := years[year]
		row[month] += count
		years[year] = row
		maxCount = max(maxCount, row[month])
	}
	if len(years) == 0 {
		return nil
	}

	yearKeys := make([]string, 0, len(years))
	for y := range years {
		yearKeys = append(yearKeys, y)
	}
	sort.Strings(yearKeys)

	lines := []string{
		"     │ " + strings.Join(monthNames, " ") + " │ Total",
		"─────┼─" + strings.Repeat("─", 4*len(monthNames)-1) + "─┼──────",
	}
	for _, y := range yearKeys {
		row := years[y]
		cells := make([]string, len(row))
		total := 0
		for i, count := range row {
			cells[i] = " " + string(heatLevel(count, maxCount)) + " "
			total += count
		}
		lines = append(lines, fmt.Sprintf("%s │ %s │ %5d", y, strings.Join(cells, " "), total))
	}
	return append(lines, "Legend: · = 0  ░ = Low  ▒ = Medium  ▓ = High  █ = Peak")
}

func splitMonth(key string) (string, int, bool) {
	if len(key) != 7 || key[4] != '-' {
		return "", 0, false
	}
	for i, m := range []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"} {
		if key[5:] == m {
			return key[:4], i, true
		}
	}
	return "", 0, false
}

func heatLevel(count, maxCount int) rune {
	ratio := 0.0
	if maxCount > 0 {
		ratio = float64(count) / float64(maxCount)
	}
	switch {
	case count == 0:
		return '·'
	case ratio < 0.25:
		return '░'
	case ratio < 0.5:
		return '▒'
	case ratio < 0.75:
		return '▓'
	default:
		return '█'
	}
}

// breakdownLines lists the first records of every type, largest type first.
func breakdownLines(details []domain.Detail) []string {
	groups := make(map[string][]domain.Detail)
	counts := make(map[string]int)
	for _, d := range details {
		groups[d.Type] = append(groups[d.Type], d)
		counts[d.Type]++
	}

	var lines []string
	for _, e := range byCount(counts) {
		lines = append(lines, fmt.Sprintf("┌── %s (%d PRs)", e.Key, e.Count))
		group := groups[e.Key]
		for _, d := range group[:min(len(group), breakdownPerType)] {
			lines = append(lines, fmt.Sprintf("│  %s #%-5d [%-*s] %s",
				stateMark(d), d.Number, repoColumnWidth, truncate(repoName(d.Repository), repoColumnWidth),
				truncate(d.Title, titleColumnWidth)))
		}
		if extra := len(group) - breakdownPerType; extra > 0 {
			lines = append(lines, fmt.Sprintf("│  ... and %d more PRs of this type", extra))
		}
		lines = append(lines, "└──")
	}
	return lines
}

func stateMark(d domain.Detail) string {
	switch {
	case d.State == domain.StateOpen:
		return "○"
	case d.Merged:
		return "✔"
	default:
		return "✘"
	}
}

func repoName(repository string) string {
	if i := strings.LastIndex(repository, "/"); i >= 0 {
		return repository[i+1:]
	}
	return repository
}

// truncate shortens s to width runes, ending with "..." when cut.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
