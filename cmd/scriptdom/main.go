// Command scriptdom loads HTML pages into a script compartment and runs
// scripts and queries against them.
package main

import (
	"fmt"
	"os"

	"github.com/chrisuehlinger/scriptdom/bindings"
	"github.com/chrisuehlinger/scriptdom/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "scriptdom",
	Short: "Expose HTML documents to a script runtime",
	Long: `scriptdom parses an HTML page, roots its document in a fresh script
compartment, and lets you run scripts or element queries against it.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			loaded.Logging.Level = "debug"
		}
		l, err := config.NewLogger(loaded.Logging)
		if err != nil {
			return err
		}
		cfg, logger = loaded, l
		bindings.SetLogger(logger.Named("bindings"))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "scriptdom.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
