package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antonioalberti/ng5Gdata/internal/core"
	"github.com/antonioalberti/ng5Gdata/internal/filter"
	"github.com/antonioalberti/ng5Gdata/internal/log"
	"github.com/antonioalberti/ng5Gdata/internal/timeline"
)

var (
	sequenceOutput      string
	sequenceFormat      string
	sequenceStart       float64
	sequenceEnd         float64
	sequenceFigWidth    int
	sequenceFigHeight   int
	sequenceLabelOffset float64
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence <records file>",
	Short: "Build sequence diagram rows between source and destination processes",
	Long: `
Sequence reads message records and derives the rows of a sequence diagram:
one arrow per message between the source and destination lifelines, with
direction and payload annotation. Figure options are cosmetic and passed
through to the renderer unchanged.

Examples:
  ng5gdata sequence relevant.jsonl -o sequence.json
  ng5gdata sequence relevant.jsonl --start-time 10 --end-time 20 --fig-width 16
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := filter.Interval{}
		if cmd.Flags().Changed("start-time") {
			interval.Begin = filter.Bound(sequenceStart)
		}
		if cmd.Flags().Changed("end-time") {
			interval.End = filter.Bound(sequenceEnd)
		}
		fig := timeline.FigureOptions{
			Width:       sequenceFigWidth,
			Height:      sequenceFigHeight,
			LabelOffset: sequenceLabelOffset,
		}
		return runSequence(args[0], sequenceOutput, sequenceFormat, interval, fig)
	},
}

func runSequence(input, output, format string, interval filter.Interval, fig timeline.FigureOptions) error {
	messages, err := readWindow(input, interval)
	if err != nil {
		return err
	}

	doc := timeline.BuildSequence(messages, fig)
	if len(doc.Rows) == 0 {
		return fmt.Errorf("%w: no messages to plot in %s", core.ErrEmptyDataset, input)
	}

	if err := writeDoc(output, format, doc); err != nil {
		return err
	}
	log.GetLogger().WithFields(map[string]interface{}{
		"rows":   len(doc.Rows),
		"output": output,
	}).Info("sequence built")
	return nil
}

func init() {
	sequenceCmd.Flags().StringVarP(&sequenceOutput, "output", "o", "sequence.json",
		"output document file")
	sequenceCmd.Flags().StringVarP(&sequenceFormat, "format", "f", "json",
		"output format: json or yaml")
	sequenceCmd.Flags().Float64Var(&sequenceStart, "start-time", 0,
		"start of time window in seconds, inclusive")
	sequenceCmd.Flags().Float64Var(&sequenceEnd, "end-time", 0,
		"end of time window in seconds, inclusive")
	sequenceCmd.Flags().IntVar(&sequenceFigWidth, "fig-width", 16,
		"figure width hint for the renderer")
	sequenceCmd.Flags().IntVar(&sequenceFigHeight, "fig-height", 12,
		"figure height hint for the renderer")
	sequenceCmd.Flags().Float64Var(&sequenceLabelOffset, "label-offset", 0.5,
		"label offset hint for the renderer")
	rootCmd.AddCommand(sequenceCmd)
}
