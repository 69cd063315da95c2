package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/naka-gawa/pr-insights/internal/config"
	"github.com/naka-gawa/pr-insights/internal/domain"
	"github.com/naka-gawa/pr-insights/internal/gateway"
	"github.com/naka-gawa/pr-insights/internal/render"
	"github.com/naka-gawa/pr-insights/internal/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classifies and scores a user's pull requests",
	Long: `Fetches every pull request authored by the given users (or reads them from
--input), labels each one with a type and an authoring tool, and prints the
summary, distributions and productivity trend as text, markdown or JSON.`,
	Example: `  pr-insights analyze --user octocat
  pr-insights analyze --user octocat --user hubot --from 2024/01/01 --output json
  pr-insights analyze --input prs.json --output markdown --out report.md`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringSliceP("user", "u", nil, "Target GitHub user name (repeatable)")
	analyzeCmd.Flags().String("from", "", "Start date for pull requests (YYYY/MM/DD)")
	analyzeCmd.Flags().String("to", "", "End date for pull requests (YYYY/MM/DD)")
	analyzeCmd.Flags().StringP("input", "i", "", "Read pull requests from a JSON file instead of the GitHub API")
	analyzeCmd.Flags().StringP("output", "o", config.OutputText, "Output format: text, json or markdown")
	analyzeCmd.Flags().String("out", "", "Write the report to a file instead of stdout")
	analyzeCmd.Flags().String("now", "", "Reference time for staleness (RFC 3339, default is the current time)")
	analyzeCmd.Flags().Bool("no-color", false, "Disable colored text output")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	v, err := loadViper(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(v, time.Now)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)
	now := func() time.Time { return cfg.Now }

	var reports []*domain.Report
	if cfg.InputFile != "" {
		reports, err = analyzeFile(cfg, logger, now)
	} else {
		reports, err = analyzeOnline(cmd, cfg, logger, now)
	}
	if err != nil {
		return err
	}

	if cfg.OutFile == "" {
		return writeReports(cmd.OutOrStdout(), cfg, reports)
	}
	if err := writeFile(cfg.OutFile, func(w io.Writer) error {
		return writeReports(w, cfg, reports)
	}); err != nil {
		return err
	}
	logger.WithField("file", cfg.OutFile).Info("Report written.")
	return nil
}

// writeFile creates path and runs write against it. A failed close is
// reported like a failed write.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()
	return write(f)
}

func analyzeOnline(cmd *cobra.Command, cfg *config.Config, logger *logrus.Logger, now func() time.Time) ([]*domain.Report, error) {
	githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	analyzer := usecase.NewAnalyzer(githubGateway, logger, now)

	reports, err := analyzer.AnalyzeUsers(cmd.Context(), cfg.Users, cfg.DateRange())
	if err != nil {
		return nil, fmt.Errorf("failed to analyze pull requests: %w", err)
	}
	return reports, nil
}

// analyzeFile builds one report per configured user from the input file.
// Records are filtered by author unless no user was given.
func analyzeFile(cfg *config.Config, logger *logrus.Logger, now func() time.Time) ([]*domain.Report, error) {
	f, err := os.Open(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := gateway.LoadRecords(f)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"file": cfg.InputFile, "records": len(records)}).Info("Loaded records from file.")

	analyzer := usecase.NewAnalyzer(nil, logger, now)
	reports := make([]*domain.Report, 0, len(cfg.Users))
	for _, user := range cfg.Users {
		reports = append(reports, analyzer.AnalyzeRecords(user, recordsOf(records, user)))
	}
	return reports, nil
}

func recordsOf(records []domain.Record, user string) []domain.Record {
	if user == config.OfflineUser {
		return records
	}
	login := strings.ToLower(user)
	var out []domain.Record
	for _, r := range records {
		if r.AuthorLogin == login {
			out = append(out, r)
		}
	}
	return out
}

func writeReports(w io.Writer, cfg *config.Config, reports []*domain.Report) error {
	switch cfg.Output {
	case config.OutputJSON:
		return render.JSON(w, reports)
	case config.OutputMarkdown:
		return render.Markdown(w, reports)
	default:
		return render.Text(w, reports, render.Options{
			Color: !cfg.NoColor && cfg.OutFile == "" && !color.NoColor,
		})
	}
}
