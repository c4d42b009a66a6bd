package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGalaxyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "galaxy",
		Short: "Galaxy management commands",
	}

	cmd.AddCommand(newGalaxyResetCmd())

	return cmd
}

func newGalaxyResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset every non-admin player to starting values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("galaxy reset wipes player progress; re-run with --yes to confirm")
			}

			var result ResetResult
			if err := client.Post("/api/admin/reset-galaxy", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")

	return cmd
}
