package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(lifetimeCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(winnerCmd)
	rootCmd.AddCommand(exportCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Dump the full tournament state tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/state")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the working tournament standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings")
	},
}

var lifetimeCmd = &cobra.Command{
	Use:   "lifetime",
	Short: "Show the lifetime standings across archived tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/lifetime")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "List the archived tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/archive")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player [name]",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/players", map[string]any{"name": args[0]})
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate [playerID] [true|false]",
	Short: "Toggle a player's participation in the evening",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid active flag %q: %w", args[1], err)
		}
		return performPostRequest("/players/"+args[0]+"/active", map[string]any{"active": active})
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/tournament/start", nil)
	},
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Finalize the tournament and archive its results",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/tournament/finalize", nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the working tournament without archiving",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/tournament/reset", nil)
	},
}

var winnerCmd = &cobra.Command{
	Use:   "winner [tableID] [playerID]",
	Short: "Record the winner of the match on a table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/tables/"+args[0]+"/winner", map[string]any{"winnerId": args[1]})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a full backup of the state tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/backup/export")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

func performPostRequest(endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := http.Post(url, "application/json", body)
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
