package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mauv0809/slackelo/internal/database"
	"github.com/spf13/cobra"
)

var (
	dryRun      bool
	boardLimit  int
	gamesLimit  int
	gamesOffset int
	dbPath      string
	tursoURL    string
	tursoToken  string
	showStatus  bool
	confirmWipe bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Ask the server not to persist anything")

	leaderboardCmd.Flags().IntVar(&boardLimit, "limit", 0, "Maximum number of players (server default when 0)")
	historyCmd.Flags().IntVar(&gamesLimit, "limit", 10, "Number of games to show")
	historyCmd.Flags().IntVar(&gamesOffset, "offset", 0, "Number of recent games to skip")
	resetCmd.Flags().BoolVar(&confirmWipe, "yes", false, "Confirm that every game in the channel should be deleted")
	migrateCmd.Flags().StringVar(&dbPath, "db", "slackelo.db", "Path of the local SQLite database")
	migrateCmd.Flags().StringVar(&tursoURL, "turso-url", "", "Primary URL of a remote libSQL database")
	migrateCmd.Flags().StringVar(&tursoToken, "turso-token", "", "Auth token for the remote libSQL database")
	migrateCmd.Flags().BoolVar(&showStatus, "status", false, "Print every migration and whether it is applied")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(ratingCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(kfactorCmd)
	rootCmd.AddCommand(gameCmd)
	rootCmd.AddCommand(showGameCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(gambleCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(migrateCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <channel>",
	Short: "Show the channel leaderboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := channelPath(args[0], "leaderboard")
		if boardLimit > 0 {
			endpoint += "?limit=" + strconv.Itoa(boardLimit)
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var ratingCmd = &cobra.Command{
	Use:   "rating <channel> <user>",
	Short: "Show a player's rating in a channel",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, playerPath(args[0], args[1], "rating"), nil)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <channel> <user>",
	Short: "Show a player's games in a channel, most recent first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := fmt.Sprintf("%s?limit=%d&offset=%d", playerPath(args[0], args[1], "history"), gamesLimit, gamesOffset)
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <channel>",
	Short: "Show channel records and statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, channelPath(args[0], "stats"), nil)
	},
}

var kfactorCmd = &cobra.Command{
	Use:   "kfactor <channel> [value]",
	Short: "View or set the k-factor of a channel",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := channelPath(args[0], "kfactor")
		if len(args) == 1 {
			return performRequest(http.MethodGet, endpoint, nil)
		}
		kFactor, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("k-factor must be an integer: %w", err)
		}
		return performRequest(http.MethodPut, endpoint, map[string]int{"k_factor": kFactor})
	},
}

var gameCmd = &cobra.Command{
	Use:   "game <channel> <place>...",
	Short: "Record a game, winner first",
	Long: `Record a game. Every argument after the channel is one place, best first.
Players tied for a place are joined with "=":

  slackelo-cli game C123 U1 U2=U3 U4`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"rankings": parseRankingArgs(args[1:])}
		return performRequest(http.MethodPost, channelPath(args[0], "games"), body)
	},
}

var showGameCmd = &cobra.Command{
	Use:   "show-game <channel> <game-id>",
	Short: "Show a recorded game",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, channelPath(args[0], "games/"+url.PathEscape(args[1])), nil)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo <channel>",
	Short: "Undo the last game in a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, channelPath(args[0], "games/last"), nil)
	},
}

var gambleCmd = &cobra.Command{
	Use:   "gamble <channel> <user>",
	Short: "Toggle whether a player's next game counts double",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, playerPath(args[0], args[1], "gamble"), nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <channel>",
	Short: "Delete every game and rating in a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmWipe {
			return fmt.Errorf("refusing to reset channel %s without --yes", args[0])
		}
		return performRequest(http.MethodDelete, "/api/channels/"+url.PathEscape(args[0]), nil)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		// InitDB migrates as part of opening the database.
		db, teardown, err := database.InitDB(dbPath, tursoURL, tursoToken)
		if err != nil {
			return err
		}
		defer teardown()
		if !showStatus {
			fmt.Println("Database is up to date")
			return nil
		}

		statuses, err := database.Status(context.Background(), db, database.DialectFor(tursoURL))
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%05d  %-8s %s\n", s.Version, state, s.File)
		}
		return nil
	},
}

// parseRankingArgs turns ["U1", "U2=U3", "U4"] into [[U1] [U2 U3] [U4]].
func parseRankingArgs(places []string) [][]string {
	var rankings [][]string
	for _, place := range places {
		var group []string
		for _, userID := range strings.Split(place, "=") {
			if userID = strings.TrimSpace(userID); userID != "" {
				group = append(group, userID)
			}
		}
		if len(group) > 0 {
			rankings = append(rankings, group)
		}
	}
	return rankings
}

func channelPath(channelID, rest string) string {
	return "/api/channels/" + url.PathEscape(channelID) + "/" + rest
}

func playerPath(channelID, userID, rest string) string {
	return channelPath(channelID, "players/"+url.PathEscape(userID)+"/"+rest)
}

func performRequest(method, endpoint string, payload any) error {
	target := host + endpoint
	if dryRun {
		separator := "?"
		if strings.Contains(target, "?") {
			separator = "&"
		}
		target += separator + "dry_run=true"
	}
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+apiToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
