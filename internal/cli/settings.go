package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Game settings commands",
	}

	cmd.AddCommand(newSettingsGetCmd())
	cmd.AddCommand(newSettingsSetCmd())

	return cmd
}

func newSettingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the game settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SettingsResult

			if err := client.Get("/api/admin/settings", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	var (
		sector  int
		credits int
		turns   int
		fuel    int
		hull    int
		shields int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update game settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{}
			if cmd.Flags().Changed("sector") {
				body["startingSector"] = sector
			}
			if cmd.Flags().Changed("credits") {
				body["startingCredits"] = credits
			}
			if cmd.Flags().Changed("turns") {
				body["startingTurns"] = turns
			}
			if cmd.Flags().Changed("fuel") {
				body["startingFuel"] = fuel
			}
			if cmd.Flags().Changed("hull") {
				body["startingHull"] = hull
			}
			if cmd.Flags().Changed("shields") {
				body["startingShields"] = shields
			}

			if len(body) == 0 {
				return fmt.Errorf("no settings to update; pass at least one flag")
			}

			var result SettingsUpdateResult
			if err := client.Put("/api/admin/settings", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&sector, "sector", 0, "Starting sector for new players")
	cmd.Flags().IntVar(&credits, "credits", 0, "Starting credits for new players")
	cmd.Flags().IntVar(&turns, "turns", 0, "Starting turns for new players")
	cmd.Flags().IntVar(&fuel, "fuel", 0, "Starting fuel for new players")
	cmd.Flags().IntVar(&hull, "hull", 0, "Starting hull for new players")
	cmd.Flags().IntVar(&shields, "shields", 0, "Starting shields for new players")

	return cmd
}
