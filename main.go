// rockfall runs the asteroid-field combat simulation headless.
//
// Usage:
//
//	rockfall run        - Run a headless simulation driven by the autopilot
//	rockfall defaults   - Print the effective configuration as YAML
//
// Global flags:
//
//	--config <path>     - Config YAML overlaid on the embedded defaults
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-json          - Emit JSON logs instead of terminal output
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagLogJSON  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rockfall",
	Short: "Rockfall - asteroid field combat simulation",
	Long: `Rockfall simulates a ship in a wrap-around asteroid field. Asteroids
break into fragments when destroyed, projectiles expire after a fixed
lifetime, and the run ends when the ship is destroyed.

Examples:
  rockfall run --seed 42 --max-ticks 6000
  rockfall run --output-dir ./out --log-stats
  rockfall defaults > config.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(os.Stderr, flagLogLevel, flagLogJSON)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Emit JSON logs")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(defaultsCmd)
}
