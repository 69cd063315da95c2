// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/pr-insights/internal/domain"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// searchPageSize is the largest page the search API accepts.
const searchPageSize = 100

// ErrUserNotFound is returned when the requested login does not exist.
var ErrUserNotFound = errors.New("user not found")

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, user string) (domain.Profile, error)
	FetchPullRequests(ctx context.Context, user, dateRange string) ([]domain.Record, error)
	FetchRateLimit(ctx context.Context) (domain.RateLimit, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *logrus.Logger
}

// userQuery looks up the public profile of a login.
type userQuery struct {
	User struct {
		Login        string
		Name         *string
		Location     *string
		CreatedAt    githubv4.DateTime
		Followers    struct{ TotalCount int }
		Repositories struct{ TotalCount int } `graphql:"repositories(privacy: PUBLIC, ownerAffiliations: OWNER)"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *logrus.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// FetchProfile resolves the public profile of user through GraphQL.
func (g *GitHubGateway) FetchProfile(ctx context.Context, user string) (domain.Profile, error) {
	g.logger.WithField("user", user).Debug("Fetching user profile...")
	var q userQuery
	variables := map[string]interface{}{"login": githubv4.String(user)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		if strings.Contains(err.Error(), "Could not resolve to a User") {
			return domain.Profile{}, fmt.Errorf("%s: %w", user, ErrUserNotFound)
		}
		return domain.Profile{}, fmt.Errorf("failed to execute GraphQL query for user profile: %w", err)
	}
	if q.User.Login == "" {
		return domain.Profile{}, fmt.Errorf("%s: %w", user, ErrUserNotFound)
	}
	return domain.Profile{
		Login:       q.User.Login,
		Name:        deref(q.User.Name, ""),
		Location:    deref(q.User.Location, ""),
		PublicRepos: q.User.Repositories.TotalCount,
		Followers:   q.User.Followers.TotalCount,
		CreatedAt:   q.User.CreatedAt.Time,
	}, nil
}

// FetchPullRequests returns every pull request authored by user, following
// search pages until the API reports no more. dateRange is appended to the
// search query verbatim (e.g. " created:2024-01-01..*").
func (g *GitHubGateway) FetchPullRequests(ctx context.Context, user, dateRange string) ([]domain.Record, error) {
	query := fmt.Sprintf("is:pr author:%s%s", user, dateRange)
	log := g.logger.WithField("user", user)
	log.WithField("query", query).Debug("Fetching authored pull requests...")

	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: searchPageSize}}
	seen := make(map[string]bool)
	var records []domain.Record
	for {
		result, resp, err := g.restClient.Search.Issues(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to search pull requests with REST API: %w", err)
		}
		for _, issue := range result.Issues {
			record := normalize(issueToRaw(issue))
			key := record.URL
			if key == "" {
				key = record.Repository + "#" + strconv.Itoa(record.Number)
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			records = append(records, record)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		log.WithField("page", opts.Page).Debug("  Fetching next page of pull requests...")
	}
	log.WithField("records", len(records)).Debug("Completed fetching pull requests.")
	return records, nil
}

// FetchRateLimit reports the core REST budget of the current token.
func (g *GitHubGateway) FetchRateLimit(ctx context.Context) (domain.RateLimit, error) {
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return domain.RateLimit{}, fmt.Errorf("failed to fetch rate limit: %w", err)
	}
	core := limits.GetCore()
	if core == nil {
		return domain.RateLimit{}, errors.New("failed to fetch rate limit: no core budget in response")
	}
	return domain.RateLimit{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time,
	}, nil
}

// issueToRaw adapts a go-github search item to the shape normalize expects.
func issueToRaw(issue *github.Issue) rawIssue {
	raw := rawIssue{
		RepositoryURL: issue.RepositoryURL,
		Number:        issue.Number,
		Title:         issue.Title,
		Body:          issue.Body,
		State:         issue.State,
		Draft:         issue.Draft,
		HTMLURL:       issue.HTMLURL,
	}
	if issue.User != nil {
		raw.User = &rawUser{Login: issue.User.Login}
	}
	if issue.CreatedAt != nil {
		created := issue.CreatedAt.UTC().Format(time.RFC3339)
		raw.CreatedAt = &created
	}
	if links := issue.PullRequestLinks; links != nil {
		raw.PullRequest = &rawPullRequest{}
		if links.MergedAt != nil {
			mergedAt := links.MergedAt.UTC().Format(time.RFC3339)
			raw.PullRequest.MergedAt = &mergedAt
		}
	}
	return raw
}
