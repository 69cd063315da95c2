package classifier

// Fallback labels.
const (
	TypeGeneral = "General"
	ToolWeb     = "Web"
	ToolCLIAPI  = "CLI/API"
)

// Category is one pull request type with its keyword weights.
type Category struct {
	Name        string
	Keywords    []string
	TitleWeight int
	BodyWeight  int
}

// ToolSignature describes how to recognize the client that authored a pull request.
type ToolSignature struct {
	Name     string
	Patterns []string // matched against the login, then the body
	Hints    []string // matched against the body
	// Default marks the generic fallback; it is never matched directly.
	Default bool
	// ShortBody marks the fallback used for near-empty bodies.
	ShortBody bool
}

// DefaultCategories is the built-in type table. Order decides ties.
var DefaultCategories = []Category{
	{
		Name: "Bug Fix",
		Keywords: []string{"fix", "bug", "issue", "error", "crash", "broken", "patch", "hotfix",
			"resolve", "solving", "repair", "correct", "debug", "fault", "defect"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Feature",
		Keywords: []string{"feature", "add", "new", "implement", "create", "introduce", "support",
			"enable", "allow", "capability", "functionality", "enhancement"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Documentation",
		Keywords: []string{"doc", "readme", "documentation", "comment", "guide", "tutorial",
			"wiki", "changelog", "license", "contributing", "api doc", "jsdoc",
			"docstring", "typo in doc", "update readme"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Refactor",
		Keywords: []string{"refactor", "restructure", "reorganize", "cleanup", "clean up",
			"improve code", "code quality", "simplify", "optimize code",
			"better structure", "rewrite", "modernize"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Dependency",
		Keywords: []string{"dependency", "dependencies", "package", "npm", "pip", "yarn",
			"update package", "upgrade", "bump", "version bump", "security update",
			"dependabot", "renovate", "greenkeeper", "snyk"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Test",
		Keywords: []string{"test", "testing", "spec", "unit test", "integration test", "e2e",
			"coverage", "jest", "pytest", "mocha", "cypress", "selenium",
			"test case", "test suite", "tdd", "bdd"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Performance",
		Keywords: []string{"performance", "optimize", "speed", "faster", "efficient", "memory",
			"cache", "lazy load", "async", "parallel", "benchmark", "profiling",
			"reduce load", "improve speed"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Style/Lint",
		Keywords: []string{"style", "lint", "format", "prettier", "eslint", "formatting",
			"code style", "indentation", "whitespace", "semicolon", "trailing",
			"black", "flake8", "pylint", "rubocop"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Translation",
		Keywords: []string{"translation", "translate", "i18n", "l10n", "locale", "language",
			"internationalization", "localization", "multilingual", "lang"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Config",
		Keywords: []string{"config", "configuration", "settings", "env", "environment",
			"ci/cd", "workflow", "github action", "travis", "jenkins", "docker",
			"kubernetes", "yaml", "json config"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Security",
		Keywords: []string{"security", "vulnerability", "cve", "xss", "csrf", "injection",
			"auth", "authentication", "authorization", "encrypt", "ssl", "https",
			"sanitize", "escape", "secure"},
		TitleWeight: 2, BodyWeight: 1,
	},
	{
		Name: "Deprecation",
		Keywords: []string{"deprecate", "remove", "delete", "drop support", "end of life",
			"obsolete", "legacy", "cleanup old", "remove unused"},
		TitleWeight: 2, BodyWeight: 1,
	},
}

// DefaultTools is the built-in tool table. Order decides precedence.
var DefaultTools = []ToolSignature{
	{Name: ToolWeb, Hints: []string{"<!-- -->", "## description", "## changes", "### checklist"}, Default: true},
	{Name: "GitHub CLI", Patterns: []string{"created via gh cli", "gh pr create", "via github cli", "github.com/cli/cli"}},
	{Name: ToolCLIAPI, ShortBody: true},
	{
		Name:     "Dependabot",
		Patterns: []string{"dependabot", "dependabot[bot]", "dependabot-preview"},
		Hints:    []string{"bumps", "from ", " to ", "release notes", "changelog", "commits"},
	},
	{
		Name:     "Renovate",
		Patterns: []string{"renovate", "renovate[bot]", "renovatebot"},
		Hints:    []string{"this pr contains", "renovate", "datasource", "package update"},
	},
	{
		Name:     "Snyk",
		Patterns: []string{"snyk", "snyk-bot", "snyk[bot]"},
		Hints:    []string{"snyk", "vulnerability", "security upgrade"},
	},
	{
		Name:     "Greenkeeper",
		Patterns: []string{"greenkeeper", "greenkeeper[bot]"},
		Hints:    []string{"greenkeeper", "update", "version"},
	},
	{
		Name:     "ImgBot",
		Patterns: []string{"imgbot", "imgbot[bot]"},
		Hints:    []string{"image", "optimize", "compression", "imgbot"},
	},
	{
		Name:     "All Contributors",
		Patterns: []string{"allcontributors", "all-contributors"},
		Hints:    []string{"add", "contributor", "all-contributors"},
	},
	{
		Name:     "Release Bot",
		Patterns: []string{"release-bot", "semantic-release", "release-please"},
		Hints:    []string{"release", "version", "changelog"},
	},
	{
		Name:     "GitHub Actions",
		Patterns: []string{"github-actions", "github-actions[bot]"},
		Hints:    []string{"automated", "workflow", "action"},
	},
	{Name: "GitHub Desktop", Patterns: []string{"github desktop"}},
	{Name: "VS Code", Patterns: []string{"vscode", "vs code"}, Hints: []string{"vscode", "visual studio code"}},
	{
		Name:     "JetBrains IDE",
		Patterns: []string{"intellij", "pycharm", "webstorm", "phpstorm", "idea"},
		Hints:    []string{"jetbrains", "intellij"},
	},
	{Name: "GitKraken", Patterns: []string{"gitkraken"}, Hints: []string{"gitkraken"}},
	{Name: "Sourcetree", Patterns: []string{"sourcetree"}, Hints: []string{"sourcetree"}},
	{Name: "GitHub Codespaces", Patterns: []string{"codespaces", "codespace"}, Hints: []string{"codespace", "github.dev"}},
	{Name: "Gitpod", Patterns: []string{"gitpod"}, Hints: []string{"gitpod"}},
}
