package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antonioalberti/ng5Gdata/internal/core"
	"github.com/antonioalberti/ng5Gdata/internal/filter"
	"github.com/antonioalberti/ng5Gdata/internal/jsonl"
	"github.com/antonioalberti/ng5Gdata/internal/log"
	"github.com/antonioalberti/ng5Gdata/internal/timeline"
)

var (
	timelineOutput string
	timelineFormat string
	timelineStart  float64
	timelineEnd    float64
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <records file>",
	Short: "Group messages per destination process with P1, P2, ... aliases",
	Long: `
Timeline reads message records, optionally narrows them to an inclusive
time window, and groups them by destination process id. Each destination
gets a short alias (P1, P2, ...) in first-seen order within the window;
narrowing the window renumbers aliases, which is expected.

Examples:
  ng5gdata timeline relevant.jsonl -o timeline.json
  ng5gdata timeline relevant.jsonl --start-time 0.6 --end-time 1.0
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := filter.Interval{}
		if cmd.Flags().Changed("start-time") {
			interval.Begin = filter.Bound(timelineStart)
		}
		if cmd.Flags().Changed("end-time") {
			interval.End = filter.Bound(timelineEnd)
		}
		return runTimeline(args[0], timelineOutput, timelineFormat, interval)
	},
}

func runTimeline(input, output, format string, interval filter.Interval) error {
	messages, err := readWindow(input, interval)
	if err != nil {
		return err
	}

	result := timeline.Build(messages)
	if len(result.Groups) == 0 {
		return fmt.Errorf("%w: no messages with a destination pid in %s", core.ErrEmptyDataset, input)
	}

	if err := writeDoc(output, format, result); err != nil {
		return err
	}
	log.GetLogger().WithFields(map[string]interface{}{
		"groups": len(result.Groups),
		"output": output,
	}).Info("timeline built")
	return nil
}

// readWindow loads records and applies the inclusive time window shared by
// the visualization subcommands.
func readWindow(input string, interval filter.Interval) ([]core.Message, error) {
	messages, skipped, err := jsonl.ReadFile(input)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.GetLogger().WithField("lines", skipped).Warn("skipped malformed record lines")
	}
	return filter.Apply(messages, interval, nil), nil
}

func init() {
	timelineCmd.Flags().StringVarP(&timelineOutput, "output", "o", "timeline.json",
		"output document file")
	timelineCmd.Flags().StringVarP(&timelineFormat, "format", "f", "json",
		"output format: json or yaml")
	timelineCmd.Flags().Float64Var(&timelineStart, "start-time", 0,
		"start of time window in seconds, inclusive")
	timelineCmd.Flags().Float64Var(&timelineEnd, "end-time", 0,
		"end of time window in seconds, inclusive")
	rootCmd.AddCommand(timelineCmd)
}
