// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antonioalberti/ng5Gdata/internal/config"
	"github.com/antonioalberti/ng5Gdata/internal/log"
)

var (
	// Global flags
	configFile string
	verbose    bool

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ng5gdata",
	Short: "ng5gdata - Offline analysis of NovaGenesis capture traffic",
	Long: `ng5gdata inspects network capture files from NovaGenesis experiments.
It extracts "ng -" command messages from TCP/UDP payloads, filters them by
time interval and command substrings, and builds the timeline, sequence and
event data consumed by the plotting renderer.

Each subcommand performs one pass: read one input, write one output.

  extract    capture file -> line-delimited JSON message records
  filter     JSON records -> matching subsequence, original order
  timeline   JSON records -> per-destination groups with P1, P2, ... aliases
  sequence   JSON records -> sequence diagram rows for the renderer
  events     JSON records -> command/MAC event rows for the renderer`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		logCfg := cfg.Log
		if verbose {
			logCfg.Level = "debug"
		}
		if err := log.Init(logCfg); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}
