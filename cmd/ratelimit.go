package cmd

import (
	"fmt"
	"time"

	"github.com/naka-gawa/pr-insights/internal/config"
	"github.com/naka-gawa/pr-insights/internal/gateway"
	"github.com/spf13/cobra"
)

var rateLimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Shows the remaining GitHub API budget for the token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		v, err := loadViper(cmd)
		if err != nil {
			return err
		}
		token, err := config.Token(v)
		if err != nil {
			return err
		}
		logger := newLogger(v.GetBool("verbose"))

		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		limit, err := githubGateway.FetchRateLimit(cmd.Context())
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "API rate limit: %d/%d remaining, resets at %s\n",
			limit.Remaining, limit.Limit, limit.Reset.Local().Format(time.DateTime))
		return err
	},
}

func init() {
	rootCmd.AddCommand(rateLimitCmd)
}
