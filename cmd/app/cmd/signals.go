package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"SignalMix/internal/di"
	"SignalMix/internal/domain/models"

	"github.com/spf13/cobra"
)

var (
	outFormat string
	loadMode  string
)

var normCmd = &cobra.Command{
	Use:   "norm <id>",
	Short: "Print a signal normalized to [0, 100]",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := di.InitializePipeline(cfg)
		if err != nil {
			return err
		}
		t, err := p.Normalizer.Normalize(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeTable(cmd.OutOrStdout(), t, outFormat)
	},
}

var combineCmd = &cobra.Command{
	Use:   "combine <id,weight>...",
	Short: "Print the weighted sum of several signals",
	Example: `  signalmix combine 1,0.5 2,0.5
  signalmix combine 3,1 4,-1 --mode named`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := models.LoadMode(loadMode)
		if mode != "" && !mode.IsValid() {
			return fmt.Errorf("mode must be one of: %s, %s", models.LoadSequential, models.LoadNamed)
		}
		p, err := di.InitializePipeline(cfg)
		if err != nil {
			return err
		}
		t, err := p.Combiner.Combine(cmd.Context(), args, mode)
		if err != nil {
			return err
		}
		return writeTable(cmd.OutOrStdout(), t, outFormat)
	},
}

func init() {
	for _, c := range []*cobra.Command{normCmd, combineCmd} {
		c.Flags().StringVar(&outFormat, "format", models.FormatIndex, "output shape: index or records")
	}
	combineCmd.Flags().StringVar(&loadMode, "mode", "", "signals to load: sequential or named (default from config)")
}

func writeTable(w io.Writer, t *models.Table, format string) error {
	var v interface{}
	switch format {
	case models.FormatIndex:
		v = t
	case models.FormatRecords:
		v = t.Records()
	default:
		return fmt.Errorf("format must be one of: %s, %s", models.FormatIndex, models.FormatRecords)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
