package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/naka-gawa/pr-insights/internal/domain"
)

// Markdown writes one markdown document section per report.
func Markdown(w io.Writer, reports []*domain.Report) error {
	var buf bytes.Buffer
	for _, report := range reports {
		markdownReport(&buf, report)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

func markdownReport(buf *bytes.Buffer, report *domain.Report) {
	s := report.Summary

	fmt.Fprintf(buf, "# GitHub PR Report for @%s\n\n", report.User)
	fmt.Fprintf(buf, "**Generated on:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	if p := report.Profile; p != nil {
		fmt.Fprintf(buf, "**Profile:** %s (%s), %d public repos, %d followers, joined %s\n\n",
			orDash(p.Name), orDash(p.Location), p.PublicRepos, p.Followers, p.CreatedAt.Format("2006-01-02"))
	}
	buf.WriteString("---\n\n")

	buf.WriteString("## Summary\n\n")
	buf.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(buf, "| Total PRs | %d |\n", s.Total)
	fmt.Fprintf(buf, "| Merged | %d |\n", s.Merged)
	fmt.Fprintf(buf, "| Pending | %d |\n", s.Pending)
	fmt.Fprintf(buf, "| Closed | %d |\n", s.Closed)
	fmt.Fprintf(buf, "| Draft | %d |\n", s.Draft)
	fmt.Fprintf(buf, "| Stale (>180d open) | %d |\n", s.Stale)
	fmt.Fprintf(buf, "| Acceptance Rate | %.2f%% |\n", s.AcceptanceRate)
	fmt.Fprintf(buf, "| Top Repo | %s |\n\n", escapeCell(s.TopRepository))

	markdownDistribution(buf, "PR Types Distribution", "Type", s.Types)
	markdownDistribution(buf, "Tools Used to Create PRs", "Tool", s.Tools)

	if len(s.Yearly) > 0 {
		buf.WriteString("## Yearly Contributions\n\n```\n")
		maxCount := byCount(s.Yearly)[0].Count
		for _, e := range byKey(s.Yearly) {
			fmt.Fprintf(buf, "%s │ %s │ %d PRs\n", e.Key, bar(e.Count, maxCount), e.Count)
		}
		buf.WriteString("```\n\n")
	}

	if heatmap := heatmapLines(s.Monthly); len(heatmap) > 0 {
		buf.WriteString("## Monthly Activity\n\n```\n")
		buf.WriteString(strings.Join(heatmap, "\n"))
		buf.WriteString("\n```\n\n")
	}

	if len(s.Repositories) > 0 {
		buf.WriteString("## Top Contributed Repositories\n\n")
		buf.WriteString("| # | Repository | PRs |\n|---|------------|-----|\n")
		for i, e := range topN(byCount(s.Repositories), defaultTopRepos) {
			fmt.Fprintf(buf, "| %d | %s | %d |\n", i+1, escapeCell(e.Key), e.Count)
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Productivity\n\n")
	if report.Series.Len() < 2 {
		buf.WriteString("Insufficient data: at least 2 pull requests with valid dates are needed.\n\n")
	} else {
		fmt.Fprintf(buf, "`%s`\n\n", Sparkline(report.Series.Scores, sparklineWidth))
		fmt.Fprintf(buf, "- Trend: %s\n", trendText(report.Trend.Direction))
		fmt.Fprintf(buf, "- Average score: %.1f\n", report.Trend.Average)
		fmt.Fprintf(buf, "- Average gap: %.1fh, median gap: %.1fh\n\n", report.Trend.AverageGapHours, report.Trend.MedianGapHours)
	}

	buf.WriteString("---\n\n")
}

func markdownDistribution(buf *bytes.Buffer, title, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(buf, "## %s\n\n", title)
	fmt.Fprintf(buf, "| %s | Count | Percentage |\n|------|-------|------------|\n", label)
	total := sum(counts)
	for _, e := range byCount(counts) {
		fmt.Fprintf(buf, "| %s | %d | %s |\n", escapeCell(e.Key), e.Count, share(e.Count, total))
	}
	buf.WriteString("\n")
}

// escapeCell keeps pipes inside names from splitting a table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
