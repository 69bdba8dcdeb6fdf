package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/mentioner"
	"github.com/siherrmann/mentioner/helper"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mentioner",
	Short: "Find and resolve character and location mentions in prose",
	Long: `Mentioner extracts person and location names from paragraphs of a novel
and suggests which known character or location each name refers to.

Models and database settings are read from the environment (MENTIONER_*)
and from a .env file in the working directory.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = helper.NewLogger(os.Stderr, level)
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func loadMentioner() *mentioner.Mentioner {
	m, err := mentioner.NewMentionerFromEnv(logger)
	if err != nil {
		fatal("Failed to load configuration", err)
	}
	return m
}
