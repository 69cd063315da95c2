// Package classifier assigns a type label and an authoring-tool label to
// pull request records using weighted substring matching.
package classifier

import (
	"strings"
	"unicode/utf8"

	"github.com/naka-gawa/pr-insights/internal/domain"
)

// shortBodyLimit is the trimmed body length, in characters, under which an
// unrecognized record is attributed to the CLI/API fallback.
const shortBodyLimit = 20

// Classifier labels records against fixed, ordered keyword tables.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	categories []Category
	tools      []ToolSignature
	webTool    string
	shortTool  string
}

// New creates a Classifier from the given tables. The tables are copied with
// keywords, patterns and hints lower-cased, so matching is case-insensitive
// and later changes by the caller do not affect classification.
func New(categories []Category, tools []ToolSignature) *Classifier {
	c := &Classifier{
		categories: make([]Category, 0, len(categories)),
		tools:      make([]ToolSignature, 0, len(tools)),
		webTool:    ToolWeb,
		shortTool:  ToolCLIAPI,
	}
	for _, cat := range categories {
		cat.Keywords = lowerAll(cat.Keywords)
		c.categories = append(c.categories, cat)
	}
	for _, t := range tools {
		t.Patterns = lowerAll(t.Patterns)
		t.Hints = lowerAll(t.Hints)
		c.tools = append(c.tools, t)
	}
	for _, t := range c.tools {
		if t.Default {
			c.webTool = t.Name
		}
		if t.ShortBody {
			c.shortTool = t.Name
		}
	}
	return c
}

// Default returns a Classifier using the built-in tables.
func Default() *Classifier {
	return New(DefaultCategories, DefaultTools)
}

// DetectType returns the highest scoring category. Ties go to the category
// declared first; a record matching nothing is "General".
func (c *Classifier) DetectType(r domain.Record) string {
	title := strings.ToLower(r.Title)
	body := strings.ToLower(r.Body)

	best, bestScore := TypeGeneral, 0
	for _, cat := range c.categories {
		score := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(title, kw) {
				score += cat.TitleWeight
			}
			if strings.Contains(body, kw) {
				score += cat.BodyWeight
			}
		}
		// Strictly greater keeps the earlier category on ties.
		if score > bestScore {
			best, bestScore = cat.Name, score
		}
	}
	return best
}

// DetectTool returns the first signature matching the author login, the body
// patterns or the body hints, in that order. Without a match, bodies shorter
// than 20 characters are attributed to the CLI/API fallback and everything
// else to the web fallback.
func (c *Classifier) DetectTool(r domain.Record) string {
	login := strings.ToLower(r.AuthorLogin)
	body := strings.ToLower(r.Body)

	for _, sig := range c.tools {
		if sig.Default {
			continue
		}
		if containsAny(login, sig.Patterns) || containsAny(body, sig.Patterns) || containsAny(body, sig.Hints) {
			return sig.Name
		}
	}
	if utf8.RuneCountInString(strings.TrimSpace(body)) < shortBodyLimit {
		return c.shortTool
	}
	return c.webTool
}

// Classify returns both labels for r.
func (c *Classifier) Classify(r domain.Record) domain.Label {
	return domain.Label{Type: c.DetectType(r), Tool: c.DetectTool(r)}
}

// ClassifyAll labels every record, preserving input order.
func (c *Classifier) ClassifyAll(records []domain.Record) []domain.LabeledRecord {
	labeled := make([]domain.LabeledRecord, 0, len(records))
	for _, r := range records {
		labeled = append(labeled, domain.LabeledRecord{Record: r, Label: c.Classify(r)})
	}
	return labeled
}

// TypeNames lists every type label the classifier can produce.
func (c *Classifier) TypeNames() []string {
	names := make([]string, 0, len(c.categories)+1)
	for _, cat := range c.categories {
		names = append(names, cat.Name)
	}
	return append(names, TypeGeneral)
}

// ToolNames lists every tool label the classifier can produce.
func (c *Classifier) ToolNames() []string {
	names := make([]string, 0, len(c.tools)+2)
	seen := make(map[string]bool, len(c.tools)+2)
	for _, t := range c.tools {
		if !seen[t.Name] {
			seen[t.Name] = true
			names = append(names, t.Name)
		}
	}
	for _, fallback := range []string{c.webTool, c.shortTool} {
		if !seen[fallback] {
			seen[fallback] = true
			names = append(names, fallback)
		}
	}
	return names
}

func lowerAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
