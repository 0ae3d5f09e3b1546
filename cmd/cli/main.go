package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host     string
	apiToken string
)

var rootCmd = &cobra.Command{
	Use:   "slackelo-cli",
	Short: "A CLI to interact with the slackelo server",
	Long: `A command-line interface for making requests to the admin API
of the slackelo application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", os.Getenv("API_TOKEN"), "API token of the server (defaults to $API_TOKEN)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
