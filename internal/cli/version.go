package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scriptbox/pkg/scriptbox"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the scriptbox version",
		// Runs without config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "scriptbox v%s\nmodule: %s\n", scriptbox.Version, scriptbox.ModulePath)
			return nil
		},
	}
}
