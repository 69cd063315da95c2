package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/naka-gawa/pr-insights/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Text writes a terminal report for each of reports.
func Text(w io.Writer, reports []*domain.Report, opts Options) error {
	for i, report := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := textReport(w, report, opts); err != nil {
			return err
		}
	}
	return nil
}

func textReport(w io.Writer, report *domain.Report, opts Options) error {
	s := report.Summary
	bold := newColor(opts, color.Bold)

	fmt.Fprintf(w, "%s\n", bold.Sprintf("Pull request report for @%s", report.User))
	if p := report.Profile; p != nil {
		fmt.Fprintf(w, "%s (%s) · %d public repos · %d followers · joined %s\n",
			orDash(p.Name), orDash(p.Location), p.PublicRepos, p.Followers, p.CreatedAt.Format("2006-01-02"))
	}
	fmt.Fprintln(w)

	summaryRows := [][]string{
		{"Total PRs", strconv.Itoa(s.Total)},
		{"Merged", strconv.Itoa(s.Merged)},
		{"Pending", strconv.Itoa(s.Pending)},
		{"Closed", strconv.Itoa(s.Closed)},
		{"Draft", strconv.Itoa(s.Draft)},
		{"Stale (>180d open)", strconv.Itoa(s.Stale)},
		{"Acceptance Rate", fmt.Sprintf("%.2f%%", s.AcceptanceRate)},
		{"Top Repository", s.TopRepository},
	}
	if err := writeTable(w, []string{"Metric", "Value"}, summaryRows, tw.AlignLeft); err != nil {
		return err
	}

	if err := distributionTable(w, "Type", s.Types); err != nil {
		return err
	}
	if err := distributionTable(w, "Tool", s.Tools); err != nil {
		return err
	}

	if len(s.Yearly) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold.Sprint("Yearly contributions"))
		yearly := byKey(s.Yearly)
		maxCount := byCount(s.Yearly)[0].Count
		for _, e := range yearly {
			fmt.Fprintf(w, "%s │ %s │ %d PRs\n", e.Key, bar(e.Count, maxCount), e.Count)
		}
	}

	if heatmap := heatmapLines(s.Monthly); len(heatmap) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold.Sprint("Monthly activity"))
		fmt.Fprintln(w, strings.Join(heatmap, "\n"))
	}

	if len(s.Repositories) > 0 {
		fmt.Fprintln(w)
		var rows [][]string
		for i, e := range topN(byCount(s.Repositories), opts.TopRepositories) {
			rows = append(rows, []string{strconv.Itoa(i + 1), e.Key, strconv.Itoa(e.Count)})
		}
		if err := writeTable(w, []string{"#", "Repository", "PRs"}, rows, tw.AlignLeft); err != nil {
			return err
		}
	}

	if breakdown := breakdownLines(s.Details); len(breakdown) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold.Sprint("Pull requests by type"))
		fmt.Fprintln(w, strings.Join(breakdown, "\n"))
	}

	fmt.Fprintf(w, "\n%s\n", bold.Sprint("Productivity index"))
	if report.Series.Len() < 2 {
		_, err := fmt.Fprintln(w, "Insufficient data: at least 2 pull requests with valid dates are needed.")
		return err
	}
	fmt.Fprintf(w, "%s\n", Sparkline(report.Series.Scores, sparklineWidth))
	fmt.Fprintf(w, "Trend: %s\n", trendColor(opts, report.Trend.Direction).Sprint(trendText(report.Trend.Direction)))
	fmt.Fprintf(w, "Average score: %.1f (first third %.1f, last third %.1f)\n",
		report.Trend.Average, report.Trend.StartAverage, report.Trend.EndAverage)
	_, err := fmt.Fprintf(w, "Gap between PRs: %.1fh average, %.1fh median\n",
		report.Trend.AverageGapHours, report.Trend.MedianGapHours)
	return err
}

func distributionTable(w io.Writer, label string, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	total := sum(counts)
	var rows [][]string
	for _, e := range byCount(counts) {
		rows = append(rows, []string{e.Key, strconv.Itoa(e.Count), share(e.Count, total)})
	}
	return writeTable(w, []string{label, "Count", "Share"}, rows, tw.AlignRight)
}

func writeTable(w io.Writer, headers []string, rows [][]string, align tw.Align) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = align
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// Sparkline draws scores as a single line of block characters scaled
// between their minimum and maximum. Longer series are sampled down to width.
func Sparkline(scores []float64, width int) string {
	if len(scores) == 0 {
		return ""
	}
	sampled := scores
	if width > 0 && len(scores) > width {
		// Spread the samples over the whole series so the tail is always drawn.
		sampled = make([]float64, width)
		for i := range sampled {
			sampled[i] = scores[i*len(scores)/width]
		}
	}

	lo, hi := sampled[0], sampled[0]
	for _, s := range sampled {
		lo, hi = min(lo, s), max(hi, s)
	}
	out := make([]rune, 0, len(sampled))
	for _, s := range sampled {
		level := len(sparkLevels) / 2
		if hi > lo {
			level = int((s - lo) / (hi - lo) * float64(len(sparkLevels)-1))
		}
		out = append(out, sparkLevels[level])
	}
	return string(out)
}

func trendText(direction string) string {
	switch direction {
	case domain.TrendImproving:
		return "IMPROVING - productivity is on an upward trend"
	case domain.TrendDeclining:
		return "DECLINING - consider more frequent contributions"
	case domain.TrendStable:
		return "STABLE - maintaining consistent productivity"
	default:
		return "INSUFFICIENT DATA"
	}
}

func trendColor(opts Options, direction string) *color.Color {
	switch direction {
	case domain.TrendImproving:
		return newColor(opts, color.FgGreen)
	case domain.TrendDeclining:
		return newColor(opts, color.FgRed)
	default:
		return newColor(opts, color.FgYellow)
	}
}

func newColor(opts Options, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
