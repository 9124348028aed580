package main

import (
	"fmt"
	"os"

	"github.com/handiism/tunesort/internal/config"
	"github.com/handiism/tunesort/internal/tui"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "tunesort-tui",
	Short:         "Interactive playlist generator",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return tui.Run(settings)
	},
}

func main() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "tunesort.yaml", "Path to config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
