package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vulture",
	Short: "Vulture - Reddit ticker & options-position extractor",
	Long: `Vulture Unified CLI

Scans investing subreddits, resolves the ticker each post is about,
extracts options positions and writes one report section per subreddit.

Usage:
  go run ./cmd/vulture [command]

Examples:
  go run ./cmd/vulture scan
  go run ./cmd/vulture scan --category options --mode new --limit 50
  go run ./cmd/vulture extract --title "DD \$GME calls" --body "200 \$20c for 6/7"
  go run ./cmd/vulture vocab check GME OR
  go run ./cmd/vulture check`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "extra env file (defaults: .env, vulture_cred.env, vulture_lib.env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
