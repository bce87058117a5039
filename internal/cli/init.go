package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scriptbox/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and data directory",
		Long: "Init writes a default config.yaml to the configuration directory if none\n" +
			"exists, then opens the configured backend once so its data directory is created.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := a.configDir()
			if err != nil {
				return sysError(err)
			}

			cfg := a.cfg
			if a.flags.dataDir != "" {
				dir, err := a.dataDir()
				if err != nil {
					return sysError(err)
				}
				cfg.DataDir = dir
			}
			path, created, err := config.WriteDefault(configDir, cfg)
			if err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}

			s, err := a.openStorage()
			if err != nil {
				return err
			}
			if err := s.Close(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			out := cmd.OutOrStdout()
			if created {
				fmt.Fprintf(out, "Wrote %s\n", path)
			} else {
				fmt.Fprintf(out, "Using existing %s\n", path)
			}
			if !a.cfg.StorageConfig("").Persistent() {
				fmt.Fprintln(out, "Note: the memory backend keeps nothing between runs")
			}
			fmt.Fprintln(out, "Scriptbox initialized successfully")
			return nil
		},
	}
}
