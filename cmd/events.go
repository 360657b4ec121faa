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
	eventsOutput string
	eventsFormat string
)

var eventsCmd = &cobra.Command{
	Use:   "events <records file>",
	Short: "Flatten messages into command/MAC event rows",
	Long: `
Events reads message records and emits one row per message, categorized by
command and source MAC address, for the events-over-time plot.

Examples:
  ng5gdata events relevant.jsonl -o events.json
  ng5gdata events relevant.jsonl -f yaml -o events.yaml
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvents(args[0], eventsOutput, eventsFormat)
	},
}

// eventsDoc wraps the rows so the document stays extensible.
type eventsDoc struct {
	Rows []timeline.EventRow `json:"rows" yaml:"rows"`
}

func runEvents(input, output, format string) error {
	messages, err := readWindow(input, filter.Interval{})
	if err != nil {
		return err
	}

	rows := timeline.BuildEvents(messages)
	if len(rows) == 0 {
		return fmt.Errorf("%w: no events in %s", core.ErrEmptyDataset, input)
	}

	if err := writeDoc(output, format, eventsDoc{Rows: rows}); err != nil {
		return err
	}
	log.GetLogger().WithFields(map[string]interface{}{
		"rows":   len(rows),
		"output": output,
	}).Info("events built")
	return nil
}

func init() {
	eventsCmd.Flags().StringVarP(&eventsOutput, "output", "o", "events.json",
		"output document file")
	eventsCmd.Flags().StringVarP(&eventsFormat, "format", "f", "json",
		"output format: json or yaml")
	rootCmd.AddCommand(eventsCmd)
}
