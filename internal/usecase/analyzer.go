// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"time"

	"github.com/naka-gawa/pr-insights/internal/analytics"
	"github.com/naka-gawa/pr-insights/internal/classifier"
	"github.com/naka-gawa/pr-insights/internal/domain"
	"github.com/naka-gawa/pr-insights/internal/gateway"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentUsers bounds how many users are analyzed at the same time.
const maxConcurrentUsers = 4

// Analyzer is the use case for analyzing a user's pull requests.
// It orchestrates fetching, classification, aggregation and scoring.
type Analyzer struct {
	fetcher    gateway.Fetcher
	classifier *classifier.Classifier
	logger     *logrus.Logger
	now        func() time.Time
}

// NewAnalyzer creates a new Analyzer instance. fetcher may be nil when only
// AnalyzeRecords is used. now supplies the reference time for staleness and
// report timestamps.
func NewAnalyzer(fetcher gateway.Fetcher, logger *logrus.Logger, now func() time.Time) *Analyzer {
	return &Analyzer{
		fetcher:    fetcher,
		classifier: classifier.Default(),
		logger:     logger,
		now:        now,
	}
}

// Analyze fetches the profile and authored pull requests of user
// concurrently and builds the report.
func (a *Analyzer) Analyze(ctx context.Context, user, dateRange string) (*domain.Report, error) {
	a.logger.WithField("user", user).Info("Usecase: Starting pull request analysis...")

	var profile domain.Profile
	var records []domain.Record

	// Use an errgroup to fetch all data concurrently.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		profile, err = a.fetcher.FetchProfile(egCtx, user)
		return err
	})

	eg.Go(func() error {
		var err error
		records, err = a.fetcher.FetchPullRequests(egCtx, user, dateRange)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	a.logger.WithFields(logrus.Fields{"user": user, "records": len(records)}).Info("Usecase: All data fetched successfully.")

	report := a.AnalyzeRecords(user, records)
	report.Profile = &profile
	return report, nil
}

// AnalyzeUsers runs Analyze for every user in parallel. Reports are returned
// in the order of users; the first failure cancels the rest.
func (a *Analyzer) AnalyzeUsers(ctx context.Context, users []string, dateRange string) ([]*domain.Report, error) {
	reports := make([]*domain.Report, len(users))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentUsers)
	for i, user := range users {
		i, user := i, user
		eg.Go(func() error {
			report, err := a.Analyze(egCtx, user, dateRange)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// AnalyzeRecords runs the classification, aggregation and scoring pipeline
// over already fetched records.
func (a *Analyzer) AnalyzeRecords(user string, records []domain.Record) *domain.Report {
	now := a.now()

	labeled := a.classifier.ClassifyAll(records)
	summary := analytics.Summarize(labeled, now)
	series := analytics.ProductivityScores(summary.Triples, summary.AcceptanceRate)
	trend := analytics.Analyze(series, summary.Triples)

	a.logger.WithFields(logrus.Fields{
		"user":       user,
		"records":    len(records),
		"types":      len(summary.Types),
		"tools":      len(summary.Tools),
		"acceptance": summary.AcceptanceRate,
		"trend":      trend.Direction,
	}).Info("Usecase: Analysis complete.")

	return &domain.Report{
		User:        user,
		Summary:     summary,
		Series:      series,
		Trend:       trend,
		GeneratedAt: now,
	}
}
