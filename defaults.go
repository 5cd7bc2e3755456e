package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/rockfall/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration the simulation would run with: the embedded
defaults, overlaid with --config when given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		data, err := cfg.MarshalYAMLBytes()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
