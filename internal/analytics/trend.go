package analytics

import (
	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/pr-insights/internal/domain"
)

// trendMargin is how far, in score points, the closing third must move away
// from the opening third before the series counts as improving or declining.
const trendMargin = 5.0

// Analyze summarizes a productivity series: overall mean, the means of the
// first and last thirds, the resulting direction and the cadence of the
// triples it was built from.
func Analyze(series domain.ScoreSeries, triples []domain.Triple) domain.Trend {
	t := domain.Trend{Direction: domain.TrendInsufficient}

	if gaps := gapHours(triples); len(gaps) > 0 {
		t.AverageGapHours, _ = stats.Mean(gaps)
		t.MedianGapHours, _ = stats.Median(gaps)
	}

	n := series.Len()
	if n < 2 {
		return t
	}

	third := max(n/3, 1)
	t.Average, _ = stats.Mean(series.Scores)
	t.StartAverage, _ = stats.Mean(series.Scores[:third])
	t.EndAverage, _ = stats.Mean(series.Scores[n-third:])

	switch {
	case t.EndAverage > t.StartAverage+trendMargin:
		t.Direction = domain.TrendImproving
	case t.EndAverage < t.StartAverage-trendMargin:
		t.Direction = domain.TrendDeclining
	default:
		t.Direction = domain.TrendStable
	}
	return t
}
