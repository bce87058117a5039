package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scriptbox/internal/library"
)

func newFoldersCmd(a *app) *cobra.Command {
	var options bool
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List folders",
		Long:  "Folders lists Favorites, the declared folders, and any folder still used by\nan item. With --options it lists the folders an item can be moved to.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *library.Store) error {
				names := s.EffectiveFolders()
				if options {
					names = s.FolderOptions()
				}
				return printNames(cmd.OutOrStdout(), names, a.flags.jsonMode)
			})
		},
	}
	cmd.Flags().BoolVar(&options, "options", false, "list move targets instead")
	return cmd
}

func newFolderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Create or delete folders",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <name>",
			Short: "Declare a folder",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(func(s *library.Store) error {
					if err := s.CreateFolder(args[0]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Created folder %s\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Remove a folder, moving its items to Uncategorized",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(func(s *library.Store) error {
					if err := s.DeleteFolder(args[0]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted folder %s\n", args[0])
					return nil
				})
			},
		},
	)
	return cmd
}
