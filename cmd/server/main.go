package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the API server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "hbnb",
	Short: "HBnB rental API server",
	Long: `HBnB serves the users, places, amenities and reviews API.

	hbnb                 start the HTTP server
	hbnb migrate up      apply database migrations
	hbnb create-admin    create or promote an administrator
`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
