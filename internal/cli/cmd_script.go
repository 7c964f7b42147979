package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prime399/packmate/internal/script"
)

func newScriptCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "script <package-manager> <app-id>...",
		Short: "Generate an install script for catalog apps",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			manager := args[0]
			var packages []string
			for _, appID := range args[1:] {
				entry, ok := app.catalog.App(appID)
				if !ok {
					return fmt.Errorf("unknown app %q", appID)
				}
				name, ok := entry.Packages[manager]
				if !ok || name == "" {
					return fmt.Errorf("app %q has no package for %q", appID, manager)
				}
				packages = append(packages, name)
			}

			out, err := script.Generate(manager, packages)
			if err != nil {
				return err
			}

			if output != "" {
				return os.WriteFile(output, []byte(out), 0o755)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the script to a file instead of stdout")

	return cmd
}
