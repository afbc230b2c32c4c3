package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player roster commands",
	}

	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerSearchCmd())
	cmd.AddCommand(newPlayerUpdateCmd())
	cmd.AddCommand(newPlayerDeleteCmd())

	return cmd
}

// playerFlags registers the shared player field flags
func playerFlags(cmd *cobra.Command, name, position, team *string, age, jersey *int) {
	cmd.Flags().StringVar(name, "name", "", "Player name")
	cmd.Flags().StringVar(position, "position", "", "Playing position")
	cmd.Flags().StringVar(team, "team", "", "Team name")
	cmd.Flags().IntVar(age, "age", 0, "Age in years")
	cmd.Flags().IntVar(jersey, "jersey", 0, "Jersey number")
}

// playerFieldsFromFlags builds a request body from the flags that were set
func playerFieldsFromFlags(cmd *cobra.Command, name, position, team string, age, jersey int) map[string]any {
	req := map[string]any{}
	if cmd.Flags().Changed("name") {
		req["name"] = name
	}
	if cmd.Flags().Changed("position") {
		req["position"] = position
	}
	if cmd.Flags().Changed("team") {
		req["team"] = team
	}
	if cmd.Flags().Changed("age") {
		req["age"] = age
	}
	if cmd.Flags().Changed("jersey") {
		req["jersey_number"] = jersey
	}
	return req
}

func newPlayerCreateCmd() *cobra.Command {
	var name, position, team string
	var age, jersey int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new player",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := playerFieldsFromFlags(cmd, name, position, team, age, jersey)
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	playerFlags(cmd, &name, &position, &team, &age, &jersey)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get player details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlayerID(args[0])
			if err != nil {
				return err
			}

			var result Player

			if err := client.Get(fmt.Sprintf("/api/v1/players/%d", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerListCmd() *cobra.Command {
	var skip, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			path := fmt.Sprintf("/api/v1/players?skip=%d&limit=%d", skip, limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "Number of players to skip")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of players to return")

	return cmd
}

func newPlayerSearchCmd() *cobra.Command {
	var skip, limit int

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search players by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			path := fmt.Sprintf("/api/v1/search?name=%s&skip=%d&limit=%d",
				url.QueryEscape(args[0]), skip, limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "Number of players to skip")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of players to return")

	return cmd
}

func newPlayerUpdateCmd() *cobra.Command {
	var name, position, team string
	var age, jersey int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update player fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlayerID(args[0])
			if err != nil {
				return err
			}

			// Only flags given on the command line are sent
			req := playerFieldsFromFlags(cmd, name, position, team, age, jersey)
			if len(req) == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			var result Player

			if err := client.Put(fmt.Sprintf("/api/v1/players/%d", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	playerFlags(cmd, &name, &position, &team, &age, &jersey)

	return cmd
}

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlayerID(args[0])
			if err != nil {
				return err
			}

			var result MessageResult

			if err := client.Delete(fmt.Sprintf("/api/v1/players/%d", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func parsePlayerID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid player id %q", raw)
	}
	return id, nil
}
