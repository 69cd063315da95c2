package analytics

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/pr-insights/internal/domain"
)

// Productivity score tuning.
const (
	seedScore = 50.0
	minScore  = 5.0
	maxScore  = 95.0

	fastGain    = 15.0 // per unit of speed factor
	fastGainCap = 10.0
	slowLoss    = 10.0
	slowLossCap = 15.0

	mergedBonus     = 5.0
	closedPenalty   = 3.0
	steadyBonus     = 2.0
	steadyTolerance = 0.3 // share of the average gap

	defaultAcceptanceMultiplier = 0.5
)

// ProductivityScores turns time-ordered triples into a bounded momentum
// series: faster than average cadence and merges raise the score, stalls and
// rejected pull requests lower it. The finished series is scaled once by the
// acceptance rate. Fewer than two triples yield an empty series.
func ProductivityScores(triples []domain.Triple, acceptanceRate float64) domain.ScoreSeries {
	series := momentumScores(triples)
	if series.Len() == 0 {
		return series
	}
	factor := rescaleFactor(acceptanceRate)
	for i := range series.Scores {
		series.Scores[i] *= factor
	}
	return series
}

// momentumScores runs the recurrence without the final acceptance rescale.
// Every score lies in [minScore, maxScore].
func momentumScores(triples []domain.Triple) domain.ScoreSeries {
	gaps := gapHours(triples)
	if len(gaps) == 0 {
		return domain.ScoreSeries{Timestamps: []time.Time{}, Scores: []float64{}}
	}
	avgGap, _ := stats.Mean(gaps) // gaps is never empty here
	norm := math.Max(avgGap, 1)

	series := domain.ScoreSeries{
		Timestamps: make([]time.Time, 0, len(triples)),
		Scores:     make([]float64, 0, len(triples)),
	}
	current := seedScore
	series.Timestamps = append(series.Timestamps, triples[0].At)
	series.Scores = append(series.Scores, current)

	for i := 1; i < len(triples); i++ {
		gap := gaps[i-1]
		delta := 0.0

		if gap < avgGap {
			delta += math.Min((avgGap-gap)/norm*fastGain, fastGainCap)
		} else {
			delta -= math.Min((gap-avgGap)/norm*slowLoss, slowLossCap)
		}

		if triples[i].Merged {
			delta += mergedBonus
		} else if triples[i].State == domain.StateClosed {
			delta -= closedPenalty
		}

		if i >= 2 && math.Abs(gap-gaps[i-2]) < avgGap*steadyTolerance {
			delta += steadyBonus
		}

		current = clamp(current+delta, minScore, maxScore)
		series.Timestamps = append(series.Timestamps, triples[i].At)
		series.Scores = append(series.Scores, current)
	}
	return series
}

// rescaleFactor maps an acceptance rate in percent to the global score multiplier.
func rescaleFactor(acceptanceRate float64) float64 {
	m := defaultAcceptanceMultiplier
	if acceptanceRate > 0 {
		m = acceptanceRate / 100
	}
	return 0.5 + 0.5*m
}

// gapHours returns the hours between each triple and its predecessor.
func gapHours(triples []domain.Triple) []float64 {
	if len(triples) < 2 {
		return nil
	}
	gaps := make([]float64, 0, len(triples)-1)
	for i := 1; i < len(triples); i++ {
		gaps = append(gaps, triples[i].At.Sub(triples[i-1].At).Hours())
	}
	return gaps
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
