package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prime399/packmate/internal/store"
)

func newFlaggedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flagged",
		Short: "Manage results flagged for manual review",
	}

	cmd.AddCommand(newFlaggedListCmd(), newFlaggedClearCmd())

	return cmd
}

func newFlaggedListCmd() *cobra.Command {
	var manager string
	var sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List flagged results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			flagged, err := app.svc.Flagged(cmd.Context(), store.FlaggedQuery{
				PackageManagerID: manager,
				SortBy:           sortBy,
			})
			if err != nil {
				return err
			}
			if len(flagged) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no flagged results")
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(flagged)
		},
	}

	cmd.Flags().StringVar(&manager, "manager", "", "filter by package manager")
	cmd.Flags().StringVar(&sortBy, "sort", store.SortByTimestamp, "sort key: timestamp or appId")

	return cmd
}

func newFlaggedClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <app-id> <package-manager>",
		Short: "Clear the review flag on the latest flagged result for a pairing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.svc.ClearReviewFlag(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return nil
		},
	}

	return cmd
}
