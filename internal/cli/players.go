package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersGetCmd())
	cmd.AddCommand(newPlayersSetCmd())
	cmd.AddCommand(newPlayersDeleteCmd())
	cmd.AddCommand(newPlayersKickCmd())
	cmd.AddCommand(newPlayersBanCmd())
	cmd.AddCommand(newPlayersUnbanCmd())

	return cmd
}

func newPlayersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerList

			if err := client.Get("/api/admin/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Show a player's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get("/api/admin/player/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayersSetCmd() *cobra.Command {
	var (
		credits int64
		turns   int
		sector  int
		hull    int
		fuel    int
	)

	cmd := &cobra.Command{
		Use:   "set <username>",
		Short: "Update a player's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the operator actually passed go on the wire, so
			// untouched fields keep their values
			body := map[string]any{}
			if cmd.Flags().Changed("credits") {
				body["credits"] = credits
			}
			if cmd.Flags().Changed("turns") {
				body["turns"] = turns
			}
			if cmd.Flags().Changed("sector") {
				body["currentSector"] = sector
			}
			if cmd.Flags().Changed("hull") {
				body["hull"] = hull
			}
			if cmd.Flags().Changed("fuel") {
				body["fuel"] = fuel
			}

			if len(body) == 0 {
				return fmt.Errorf("no fields to update; pass at least one flag")
			}

			var result ActionResult
			if err := client.Put("/api/admin/player/"+args[0], body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(ActionResult{Success: result.Success, Message: fmt.Sprintf("Player %s updated", args[0])})
			return nil
		},
	}

	cmd.Flags().Int64Var(&credits, "credits", 0, "Set credits")
	cmd.Flags().IntVar(&turns, "turns", 0, "Set turns")
	cmd.Flags().IntVar(&sector, "sector", 0, "Set current sector")
	cmd.Flags().IntVar(&hull, "hull", 0, "Set ship hull")
	cmd.Flags().IntVar(&fuel, "fuel", 0, "Set ship fuel")

	return cmd
}

func newPlayersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a player's account and data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ActionResult

			if err := client.Delete("/api/admin/player/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayersKickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kick <username>",
		Short: "Invalidate a player's sessions, forcing re-login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ActionResult

			if err := client.Post("/api/admin/player/"+args[0]+"/kick", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayersBanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ban <username>",
		Short: "Ban a player and revoke their sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ActionResult

			if err := client.Post("/api/admin/player/"+args[0]+"/ban", map[string]bool{"banned": true}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayersUnbanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unban <username>",
		Short: "Lift a player's ban",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ActionResult

			if err := client.Post("/api/admin/player/"+args[0]+"/ban", map[string]bool{"banned": false}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
