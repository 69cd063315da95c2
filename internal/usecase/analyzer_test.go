package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/naka-gawa/pr-insights/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchProfile(ctx context.Context, user string) (domain.Profile, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *mockFetcher) FetchPullRequests(ctx context.Context, user, dateRange string) ([]domain.Record, error) {
	args := m.Called(ctx, user, dateRange)
	// We need to handle the case where the returned slice is nil (e.g., when an error occurs).
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *mockFetcher) FetchRateLimit(ctx context.Context) (domain.RateLimit, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateLimit), args.Error(1)
}

var fixedNow = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

func newTestAnalyzer(fetcher *mockFetcher) *Analyzer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewAnalyzer(fetcher, logger, func() time.Time { return fixedNow })
}

func sampleRecords() []domain.Record {
	return []domain.Record{
		{
			Repository: "org/app", Number: 1, Title: "Fix crash on save", AuthorLogin: "any-user",
			State: "closed", CreatedAt: "2024-01-01T00:00:00Z", MergedAt: "2024-01-01T05:00:00Z",
		},
		{
			Repository: "org/app", Number: 2, Title: "Add dark mode", AuthorLogin: "any-user",
			Body: "Dark theme for the settings page with new colors.",
			State: "closed", CreatedAt: "2024-01-02T00:00:00Z", MergedAt: "2024-01-02T08:00:00Z",
		},
		{
			Repository: "org/lib", Number: 3, Title: "Bump lodash", AuthorLogin: "dependabot[bot]",
			State: "open", CreatedAt: "2024-01-10T00:00:00Z",
		},
	}
}

// TestAnalyzer_Analyze uses a table-driven approach to test the analyzer.
func TestAnalyzer_Analyze(t *testing.T) {
	testCases := []struct {
		name        string
		profile     domain.Profile
		profileErr  error
		records     []domain.Record
		recordsErr  error
		expectError bool
	}{
		{
			name:    "happy path - fetches and analyzes",
			profile: domain.Profile{Login: "any-user", Name: "Any"},
			records: sampleRecords(),
		},
		{
			name:        "error case - pull request search fails",
			profile:     domain.Profile{Login: "any-user"},
			recordsErr:  errors.New("github api error"),
			expectError: true,
		},
		{
			name:        "error case - profile lookup fails",
			profileErr:  errors.New("user not found"),
			records:     sampleRecords(),
			expectError: true,
		},
		{
			name:    "empty case - no pull requests",
			profile: domain.Profile{Login: "any-user"},
			records: []domain.Record{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			fetcher := new(mockFetcher)
			fetcher.On("FetchProfile", mock.Anything, "any-user").Return(tc.profile, tc.profileErr)
			fetcher.On("FetchPullRequests", mock.Anything, "any-user", "any-range").Return(tc.records, tc.recordsErr)
			analyzer := newTestAnalyzer(fetcher)

			// --- Act ---
			report, err := analyzer.Analyze(context.Background(), "any-user", "any-range")

			// --- Assert ---
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, report)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, report)
			assert.Equal(t, "any-user", report.User)
			assert.Equal(t, &tc.profile, report.Profile)
			assert.Equal(t, fixedNow, report.GeneratedAt)
			assert.Equal(t, len(tc.records), len(report.Summary.Details))
			fetcher.AssertExpectations(t)
		})
	}
}

func TestAnalyzer_AnalyzeRecords(t *testing.T) {
	report := newTestAnalyzer(nil).AnalyzeRecords("any-user", sampleRecords())

	s := report.Summary
	assert.Equal(t, 2, s.Merged)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 0, s.Closed)
	assert.Equal(t, 66.67, s.AcceptanceRate)
	assert.Equal(t, "org/app", s.TopRepository)
	assert.Equal(t, 1, s.Types["Bug Fix"])
	assert.Equal(t, 1, s.Types["Dependency"])
	assert.Equal(t, 1, s.Tools["Dependabot"])
	assert.Equal(t, 1, s.Tools["Web"])
	assert.Equal(t, 1, s.Tools["CLI/API"])
	assert.Equal(t, 3, report.Series.Len())
	assert.Equal(t, s.Triples[0].At, report.Series.Timestamps[0])
	assert.NotEqual(t, domain.TrendInsufficient, report.Trend.Direction)
}

func TestAnalyzer_AnalyzeRecords_Empty(t *testing.T) {
	report := newTestAnalyzer(nil).AnalyzeRecords("nobody", nil)

	assert.Equal(t, domain.NoRepositories, report.Summary.TopRepository)
	assert.Equal(t, 0.0, report.Summary.AcceptanceRate)
	assert.Zero(t, report.Series.Len())
	assert.Equal(t, domain.TrendInsufficient, report.Trend.Direction)
}

func TestAnalyzer_AnalyzeUsers(t *testing.T) {
	fetcher := new(mockFetcher)
	users := []string{"alice", "bob", "carol"}
	for _, u := range users {
		fetcher.On("FetchProfile", mock.Anything, u).Return(domain.Profile{Login: u}, nil)
		fetcher.On("FetchPullRequests", mock.Anything, u, "").Return(sampleRecords(), nil)
	}

	reports, err := newTestAnalyzer(fetcher).AnalyzeUsers(context.Background(), users, "")

	require.NoError(t, err)
	require.Len(t, reports, 3)
	for i, u := range users {
		assert.Equal(t, u, reports[i].User)
		assert.Equal(t, u, reports[i].Profile.Login)
	}
	fetcher.AssertExpectations(t)
}

func TestAnalyzer_AnalyzeUsers_Failure(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchProfile", mock.Anything, mock.Anything).Return(domain.Profile{}, nil)
	fetcher.On("FetchPullRequests", mock.Anything, "alice", "").Return(sampleRecords(), nil)
	fetcher.On("FetchPullRequests", mock.Anything, "ghost", "").Return(nil, errors.New("boom"))

	reports, err := newTestAnalyzer(fetcher).AnalyzeUsers(context.Background(), []string{"alice", "ghost"}, "")

	assert.EqualError(t, err, "boom")
	assert.Nil(t, reports)
}
