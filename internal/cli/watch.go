package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scriptbox/internal/library"
	"github.com/mesh-intelligence/scriptbox/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow library changes made by other processes",
		Long: "Watch prints a line, or the refreshed folder with --folder, each time\n" +
			"another scriptbox process changes the library. Only the file backend\n" +
			"supports watching. Stop with Ctrl-C.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStorage()
			if err != nil {
				return err
			}
			defer s.Close()

			store := library.New(s, library.WithLogger(a.logger.With("component", "library")))
			w, err := watch.New(s, store.Bus(), watch.WithLogger(a.logger.With("component", "watch")))
			if err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			unsubscribe := store.Bus().Subscribe(func(e library.Event) {
				if cmd.Flags().Changed("folder") {
					fmt.Fprintf(out, "-- %s --\n", library.ResolveSelector(folder))
					_ = printItems(out, store.SelectView(folder), a.flags.jsonMode)
					return
				}
				fmt.Fprintf(out, "%s %s (%d items)\n", e.At.Format("15:04:05"), e.Name, len(store.LoadItems()))
			})
			defer unsubscribe()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes, Ctrl-C to stop")
			return classify(w.Run(ctx))
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "print this folder after each change")
	return cmd
}
