package gateway

import (
	"encoding/json"
	"strings"

	"github.com/naka-gawa/pr-insights/internal/domain"
	"github.com/spf13/cast"
)

// rawIssue mirrors the fields of a search/issues item that the analysis uses.
// Every field is optional; normalize supplies the defaults.
type rawIssue struct {
	RepositoryURL *string         `json:"repository_url"`
	Number        *int            `json:"number"`
	Title         *string         `json:"title"`
	Body          *string         `json:"body"`
	User          *rawUser        `json:"user"`
	State         *string         `json:"state"`
	Draft         *bool           `json:"draft"`
	CreatedAt     *string         `json:"created_at"`
	HTMLURL       *string         `json:"html_url"`
	PullRequest   *rawPullRequest `json:"pull_request"`
}

type rawUser struct {
	Login *string `json:"login"`
}

type rawPullRequest struct {
	MergedAt *string `json:"merged_at"`
}

// UnmarshalJSON decodes an exported item leniently: a scalar of the wrong
// JSON type is converted when possible and otherwise treated as absent, so
// one odd value does not reject the whole file.
func (r *rawIssue) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = rawIssue{
		RepositoryURL: field(fields, "repository_url", cast.ToStringE),
		Number:        field(fields, "number", cast.ToIntE),
		Title:         field(fields, "title", cast.ToStringE),
		Body:          field(fields, "body", cast.ToStringE),
		State:         field(fields, "state", cast.ToStringE),
		Draft:         field(fields, "draft", cast.ToBoolE),
		CreatedAt:     field(fields, "created_at", cast.ToStringE),
		HTMLURL:       field(fields, "html_url", cast.ToStringE),
	}
	if user, ok := fields["user"].(map[string]any); ok {
		r.User = &rawUser{Login: field(user, "login", cast.ToStringE)}
	}
	if pr, ok := fields["pull_request"].(map[string]any); ok {
		r.PullRequest = &rawPullRequest{MergedAt: field(pr, "merged_at", cast.ToStringE)}
	}
	return nil
}

// field converts fields[key] with conv. Missing, null and unconvertible
// values yield nil.
func field[T any](fields map[string]any, key string, conv func(any) (T, error)) *T {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil
	}
	out, err := conv(v)
	if err != nil {
		return nil
	}
	return &out
}

// normalize converts a raw item into a Record with every default applied.
func normalize(raw rawIssue) domain.Record {
	r := domain.Record{
		Repository: repositoryFromURL(deref(raw.RepositoryURL, "")),
		Number:     deref(raw.Number, 0),
		Title:      deref(raw.Title, ""),
		Body:       deref(raw.Body, ""),
		State:      deref(raw.State, domain.UnknownState),
		IsDraft:    deref(raw.Draft, false),
		CreatedAt:  deref(raw.CreatedAt, domain.EpochTimestamp),
		URL:        deref(raw.HTMLURL, ""),
	}
	if raw.User != nil {
		r.AuthorLogin = strings.ToLower(deref(raw.User.Login, ""))
	}
	if raw.PullRequest != nil {
		r.MergedAt = deref(raw.PullRequest.MergedAt, "")
	}
	if r.Merged() {
		r.State = domain.StateClosed
	}
	return r
}

// repositoryFromURL extracts "owner/name" from an API repository URL.
func repositoryFromURL(u string) string {
	if u == "" {
		return domain.UnknownRepository
	}
	parts := strings.Split(u, "/")
	if len(parts) < 2 {
		return domain.UnknownRepository
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
