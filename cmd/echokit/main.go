package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "echokit",
	Short: "WebSocket echo server and the utility toolbox around it",
	Long: `echokit bundles a WebSocket echo server with the small utilities
that used to live as standalone scripts: CSV merging, temperature
conversion, password and token generation, SHA-256 hashing, input
validation, and thin GitHub/weather API clients.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
