// Package cmd holds the signalmix CLI commands.
package cmd

import (
	"fmt"

	"SignalMix/pkg/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "signalmix",
	Short: "Signal normalization and combination service",
	Long: `Signal normalization and combination service.

Commands:
    serve                        - HTTP API server
    norm <id>                    - print one normalized signal
    combine <id,weight>...       - print a weighted combination of signals
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadWithEnv(cfgFile)
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
		cfg = c
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file path")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(normCmd)
	rootCmd.AddCommand(combineCmd)
}
