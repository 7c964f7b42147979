package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Verify every catalog entry against its registries",
		Long: `Walk the whole catalog and verify each (app, package manager) pairing.
Individual failures are recorded and counted but never abort the sweep.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := app.svc.VerifyAll(ctx)
			if summary != nil {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "checked:      %d\n", summary.Total)
				fmt.Fprintf(out, "verified:     %d\n", summary.Verified)
				fmt.Fprintf(out, "failed:       %d\n", summary.Failed)
				fmt.Fprintf(out, "errors:       %d\n", summary.Errors)
				fmt.Fprintf(out, "unverifiable: %d\n", summary.Unverifiable)
			}
			return err
		},
	}

	return cmd
}
