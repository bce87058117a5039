package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scriptbox/internal/library"
	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

var errItemNotFound = errors.New("no item with that timestamp")

func newAddCmd(a *app) *cobra.Command {
	var folder, title string
	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Save text to the library",
		Long:  "Add saves its arguments, joined by spaces, as a new item. With no\narguments the text is read from stdin.",
		Example: `  scriptbox add "Thanks for reaching out!"
  pbpaste | scriptbox add --folder Drafts --title "Open house"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				var err error
				if text, err = stdinText(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			return a.withStore(func(s *library.Store) error {
				item, err := s.AppendItem(text, folder)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("title") {
					if err := s.SetTitle(item.Timestamp, title); err != nil {
						return err
					}
					item, _ = s.Find(item.Timestamp)
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), item)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", item.Timestamp, item.EffectiveFolder())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "folder to file the item under (default Uncategorized)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "title for the item")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [folder]",
		Short: "List the items in a folder",
		Long:  "List shows the items filed under folder, oldest first. \"Favorites\" lists\nfavorited items from every folder. The default folder is Uncategorized.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := ""
			if len(args) == 1 {
				selector = args[0]
			}
			return a.withStore(func(s *library.Store) error {
				return printItems(cmd.OutOrStdout(), s.SelectView(selector), a.flags.jsonMode)
			})
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <timestamp>",
		Short: "Print one item",
		Long:  "Show prints an item with its title and folder. With --raw only the text is\nprinted, ready to pipe to a clipboard tool.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *library.Store) error {
				it, ok := s.Find(args[0])
				if !ok {
					return fmt.Errorf("%w: %s", errItemNotFound, args[0])
				}
				return printItem(cmd.OutOrStdout(), it, a.flags.jsonMode, raw)
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print only the item text")
	return cmd
}

func newTitleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "title <timestamp> [title...]",
		Short: "Set an item's title",
		Long:  "Title renames an item. A blank title resets it to \"" + types.DefaultTitle + "\".",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *library.Store) error {
				if err := s.SetTitle(args[0], strings.Join(args[1:], " ")); err != nil {
					return err
				}
				it, ok := s.Find(args[0])
				if !ok {
					return fmt.Errorf("%w: %s", errItemNotFound, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Titled %s %q\n", it.Timestamp, it.DisplayTitle())
				return nil
			})
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <timestamp> <folder>",
		Short: "Move an item to another folder",
		Long:  "Move files an item under folder and lists that folder.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *library.Store) error {
				if _, ok := s.Find(args[0]); !ok {
					return fmt.Errorf("%w: %s", errItemNotFound, args[0])
				}
				view, err := s.MoveToFolder(args[0], args[1])
				if err != nil {
					return err
				}
				return printItems(cmd.OutOrStdout(), view, a.flags.jsonMode)
			})
		},
	}
}

func newFavCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fav <timestamp>",
		Short: "Toggle an item's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *library.Store) error {
				if err := s.ToggleFavorite(args[0]); err != nil {
					return err
				}
				it, ok := s.Find(args[0])
				if !ok {
					return fmt.Errorf("%w: %s", errItemNotFound, args[0])
				}
				if it.Favorite {
					fmt.Fprintf(cmd.OutOrStdout(), "%s Favorited %s\n", starOn(), it.Timestamp)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s Unfavorited %s\n", starOff, it.Timestamp)
				}
				return nil
			})
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <timestamp>",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *library.Store) error {
				if err := s.DeleteItem(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every item",
		Long:  "Clear erases all saved items after confirmation. Folders are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirm library.Confirmer = promptConfirmer{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
			if yes {
				confirm = library.ConfirmFunc(func(string) bool { return true })
			}
			return a.withStore(func(s *library.Store) error {
				cleared, err := s.ClearAll()
				if err != nil {
					return err
				}
				if cleared {
					fmt.Fprintln(cmd.OutOrStdout(), "Library cleared")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing cleared")
				}
				return nil
			}, library.WithConfirmer(confirm))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// promptConfirmer asks on out and reads a y/N answer from in.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
