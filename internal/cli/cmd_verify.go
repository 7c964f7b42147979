package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prime399/packmate/internal/service"
)

func newVerifyCmd() *cobra.Command {
	var packageName string
	var noStore bool

	cmd := &cobra.Command{
		Use:   "verify <app-id> <package-manager>",
		Short: "Verify a single catalog entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			appID, manager := args[0], args[1]

			name := packageName
			if name == "" {
				entry, ok := app.catalog.App(appID)
				if !ok {
					return fmt.Errorf("unknown app %q", appID)
				}
				name, ok = entry.Packages[manager]
				if !ok || name == "" {
					return fmt.Errorf("app %q has no package for %q", appID, manager)
				}
			}

			var opts []service.VerifyOption
			if noStore {
				opts = append(opts, service.SkipStorage())
			}

			result, err := app.svc.VerifyPackage(cmd.Context(), appID, manager, name, opts...)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&packageName, "package", "", "package name to check (defaults to the catalog entry)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not persist the result")

	return cmd
}
