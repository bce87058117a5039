package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scriptbox/internal/status"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the account badge and usage",
		Long: "Status fetches the account status from status.url and prints the badge.\n" +
			"When the service cannot be reached the last cached usage is shown.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Status.URL == "" {
				return userError(status.ErrNoURL)
			}
			s, err := a.openStorage()
			if err != nil {
				return err
			}
			defer s.Close()

			logger := a.logger.With("component", "status")
			client := status.NewClient(a.cfg.Status.URL,
				status.WithTimeout(a.cfg.Status.Timeout),
				status.WithAttempts(a.cfg.Status.Attempts),
				status.WithLogger(logger),
			)
			session := status.NewSession(s, logger)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			select {
			case <-status.FetchAsync(ctx, client, session.Apply):
			case <-ctx.Done():
			}
			return printStatus(cmd.OutOrStdout(), session.Snapshot(), a.flags.jsonMode)
		},
	}
}
