package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"desksweep/internal/adapters/filesystem"
	"desksweep/internal/config"
	"desksweep/internal/ports"
)

var (
	location string
	cfg      *config.Config
	source   ports.FileSource
)

var rootCmd = &cobra.Command{
	Use:   "desksweep-cli",
	Short: "CLI for sweeping cluttered folders",
	Long: `desksweep-cli inspects a cluttered folder without opening an
interactive session.

It provides commands to list a folder's files, report the duplicate,
similar-name and stale-file groups hiding in it, and print the bulk
cleanup actions a triage session would offer.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if location != "" {
			cfg.Location = location
		}
		source = filesystem.NewSource()
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&location, "location", "l", "", "folder to sweep (default from config)")
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// GetSource returns the initialized file source
func GetSource() ports.FileSource {
	return source
}
