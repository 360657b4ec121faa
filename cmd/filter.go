package cmd

import (
	"github.com/spf13/cobra"

	"github.com/antonioalberti/ng5Gdata/internal/filter"
	"github.com/antonioalberti/ng5Gdata/internal/jsonl"
	"github.com/antonioalberti/ng5Gdata/internal/log"
)

var (
	filterOutput string
	filterBegin  float64
	filterEnd    float64
	filterMatch  []string
)

var filterCmd = &cobra.Command{
	Use:   "filter <records file>",
	Short: "Filter message records by time interval and command substrings",
	Long: `
Filter reads line-delimited JSON message records and writes the subsequence
matching every supplied predicate, preserving the input order. Both
interval bounds are inclusive; an absent bound imposes no constraint.
Match substrings combine with OR; the default set comes from config.

Examples:
  ng5gdata filter extracted.jsonl -o relevant.jsonl
  ng5gdata filter extracted.jsonl --begin-interval 10 --end-interval 60.5
  ng5gdata filter extracted.jsonl --match "ng -notify" --match "ng -p"
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := filter.Interval{}
		if cmd.Flags().Changed("begin-interval") {
			interval.Begin = filter.Bound(filterBegin)
		}
		if cmd.Flags().Changed("end-interval") {
			interval.End = filter.Bound(filterEnd)
		}
		match := filterMatch
		if !cmd.Flags().Changed("match") {
			match = cfg.Match
		}
		return runFilter(args[0], filterOutput, interval, match)
	},
}

func runFilter(input, output string, interval filter.Interval, match []string) error {
	logger := log.GetLogger()

	messages, skipped, err := jsonl.ReadFile(input)
	if err != nil {
		return err
	}
	if skipped > 0 {
		logger.WithField("lines", skipped).Warn("skipped malformed record lines")
	}

	kept := filter.Apply(messages, interval, match)

	if err := jsonl.WriteFile(output, kept); err != nil {
		return err
	}
	logger.WithFields(map[string]interface{}{
		"input":  len(messages),
		"kept":   len(kept),
		"output": output,
	}).Info("filtering finished")
	return nil
}

func init() {
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "relevant.jsonl",
		"output records file")
	filterCmd.Flags().Float64Var(&filterBegin, "begin-interval", 0,
		"start of time interval in seconds, inclusive")
	filterCmd.Flags().Float64Var(&filterEnd, "end-interval", 0,
		"end of time interval in seconds, inclusive")
	filterCmd.Flags().StringArrayVar(&filterMatch, "match", nil,
		"command substring to match, repeatable (default from config)")
	rootCmd.AddCommand(filterCmd)
}
