package classifier

import (
	"strings"
	"testing"

	"github.com/naka-gawa/pr-insights/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifier_DetectType(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		body     string
		expected string
	}{
		{
			name:     "title keywords pick bug fix",
			title:    "Fix crash on startup",
			expected: "Bug Fix",
		},
		{
			name:     "multi word keyword adds its own weight",
			title:    "Update README",
			expected: "Documentation",
		},
		{
			name:     "dependency bump",
			title:    "Bump lodash from 1.0 to 2.0",
			expected: "Dependency",
		},
		{
			name:     "matching is case insensitive",
			title:    "REFACTOR the parser",
			expected: "Refactor",
		},
		{
			name:     "body keywords count with lower weight",
			title:    "Parser changes",
			body:     "this fixes a bug",
			expected: "Bug Fix",
		},
		{
			name:     "empty record falls back to general",
			expected: TypeGeneral,
		},
		{
			name:     "nothing matching falls back to general",
			title:    "Hello",
			body:     "zzz",
			expected: TypeGeneral,
		},
	}

	c := Default()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.DetectType(domain.Record{Title: tc.title, Body: tc.body})
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestClassifier_DetectType_SubstringInsideWord(t *testing.T) {
	// "spec" is a Test keyword and matches inside "special".
	c := New([]Category{
		{Name: "Test", Keywords: []string{"spec"}, TitleWeight: 2, BodyWeight: 1},
	}, nil)
	assert.Equal(t, "Test", c.DetectType(domain.Record{Title: "A special case"}))
}

func TestClassifier_DetectType_TieGoesToFirstDeclared(t *testing.T) {
	alpha := Category{Name: "Alpha", Keywords: []string{"shared"}, TitleWeight: 2, BodyWeight: 1}
	beta := Category{Name: "Beta", Keywords: []string{"shared"}, TitleWeight: 2, BodyWeight: 1}
	record := domain.Record{Title: "shared change", Body: "shared"}

	for i := 0; i < 50; i++ {
		assert.Equal(t, "Alpha", New([]Category{alpha, beta}, nil).DetectType(record))
		assert.Equal(t, "Beta", New([]Category{beta, alpha}, nil).DetectType(record))
	}
}

func TestClassifier_DetectType_HigherScoreBeatsOrder(t *testing.T) {
	c := New([]Category{
		{Name: "First", Keywords: []string{"one"}, TitleWeight: 2, BodyWeight: 1},
		{Name: "Second", Keywords: []string{"one", "two"}, TitleWeight: 2, BodyWeight: 1},
	}, nil)
	assert.Equal(t, "Second", c.DetectType(domain.Record{Title: "one two"}))
}

func TestClassifier_DetectType_ClosedLabelSet(t *testing.T) {
	c := Default()
	allowed := c.TypeNames()
	titles := []string{
		"", "fix", "add feature", "docs", "refactor", "bump deps", "tests", "speed up",
		"lint", "i18n", "docker config", "xss", "remove legacy", "random words",
	}
	for _, title := range titles {
		for _, body := range []string{"", "some body", "fix the bug and add tests"} {
			assert.Contains(t, allowed, c.DetectType(domain.Record{Title: title, Body: body}))
		}
	}
}

func TestClassifier_DetectTool(t *testing.T) {
	testCases := []struct {
		name     string
		login    string
		body     string
		expected string
	}{
		{
			name:     "bot login",
			login:    "dependabot[bot]",
			body:     "Bumps lodash from 1.0 to 2.0.",
			expected: "Dependabot",
		},
		{
			name:     "body pattern",
			login:    "alice",
			body:     "This pull request was created via gh cli by me.",
			expected: "GitHub CLI",
		},
		{
			name:     "body hint",
			login:    "alice",
			body:     "Opened with the GitKraken client today",
			expected: "GitKraken",
		},
		{
			name:     "login match wins over a later signature's hint",
			login:    "renovate[bot]",
			body:     "opened with gitkraken",
			expected: "Renovate",
		},
		{
			name:     "empty body",
			login:    "alice",
			body:     "",
			expected: ToolCLIAPI,
		},
		{
			name:     "whitespace only body",
			login:    "alice",
			body:     "   \n\t  ",
			expected: ToolCLIAPI,
		},
		{
			name:     "nineteen characters",
			login:    "alice",
			body:     "abcdefghijklmnopqrs",
			expected: ToolCLIAPI,
		},
		{
			name:     "twenty characters",
			login:    "alice",
			body:     "abcdefghijklmnopqrst",
			expected: ToolWeb,
		},
		{
			name:     "long unrecognized body",
			login:    "alice",
			body:     "This change reworks the parser in depth.",
			expected: ToolWeb,
		},
		{
			name:     "web hints are never matched directly",
			login:    "alice",
			body:     "## Description",
			expected: ToolCLIAPI,
		},
	}

	c := Default()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.DetectTool(domain.Record{AuthorLogin: tc.login, Body: tc.body})
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestClassifier_DetectTool_LoginPrecedesBody(t *testing.T) {
	c := New(nil, []ToolSignature{
		{Name: "Web", Default: true},
		{Name: "LoginTool", Patterns: []string{"robot"}},
		{Name: "HintTool", Hints: []string{"generated"}},
	})
	record := domain.Record{AuthorLogin: "Robot-User", Body: "generated by a script, long enough"}
	assert.Equal(t, "LoginTool", c.DetectTool(record))
}

func TestClassifier_DetectTool_DeclarationOrderDecides(t *testing.T) {
	c := New(nil, []ToolSignature{
		{Name: "HintTool", Hints: []string{"generated"}},
		{Name: "LoginTool", Patterns: []string{"robot"}},
	})
	record := domain.Record{AuthorLogin: "robot", Body: "generated by a script, long enough"}
	assert.Equal(t, "HintTool", c.DetectTool(record))
}

func TestClassifier_DetectTool_CustomFallbackNames(t *testing.T) {
	c := New(nil, []ToolSignature{
		{Name: "Browser", Default: true},
		{Name: "Terminal", ShortBody: true},
	})
	assert.Equal(t, "Terminal", c.DetectTool(domain.Record{Body: "x"}))
	assert.Equal(t, "Browser", c.DetectTool(domain.Record{Body: strings.Repeat("x", 30)}))
	assert.ElementsMatch(t, []string{"Browser", "Terminal"}, c.ToolNames())
}

func TestClassifier_ClassifyAll(t *testing.T) {
	records := []domain.Record{
		{Number: 1, Title: "Fix crash", AuthorLogin: "alice"},
		{Number: 2, Title: "Bump lodash", AuthorLogin: "dependabot[bot]", Body: "Bumps lodash"},
	}

	labeled := Default().ClassifyAll(records)

	assert.Len(t, labeled, 2)
	assert.Equal(t, 1, labeled[0].Number)
	assert.Equal(t, domain.Label{Type: "Bug Fix", Tool: ToolCLIAPI}, labeled[0].Label)
	assert.Equal(t, 2, labeled[1].Number)
	assert.Equal(t, domain.Label{Type: "Dependency", Tool: "Dependabot"}, labeled[1].Label)
}

func TestClassifier_TableIsCopied(t *testing.T) {
	cats := []Category{{Name: "Only", Keywords: []string{"word"}, TitleWeight: 1, BodyWeight: 1}}
	c := New(cats, nil)
	cats[0].Name = "Changed"
	assert.Equal(t, "Only", c.DetectType(domain.Record{Title: "word"}))
}

func TestClassifier_CustomTablesMatchCaseInsensitively(t *testing.T) {
	c := New(
		[]Category{{Name: "Bug", Keywords: []string{"Fix"}, TitleWeight: 2, BodyWeight: 1}},
		[]ToolSignature{
			{Name: "Web", Default: true},
			{Name: "Bot", Patterns: []string{"MyBot"}},
			{Name: "Generator", Hints: []string{"Generated By"}},
		},
	)

	assert.Equal(t, domain.Label{Type: "Bug", Tool: "Bot"}, c.Classify(domain.Record{Title: "Fix crash", AuthorLogin: "mybot"}))
	assert.Equal(t, "Generator", c.DetectTool(domain.Record{Body: "generated by the release script"}))
}

func TestClassifier_KeywordsAreCopied(t *testing.T) {
	cats := []Category{{Name: "Only", Keywords: []string{"word"}, TitleWeight: 1, BodyWeight: 1}}
	c := New(cats, nil)
	cats[0].Keywords[0] = "other"
	assert.Equal(t, "Only", c.DetectType(domain.Record{Title: "word"}))
}
