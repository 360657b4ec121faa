package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/antonioalberti/ng5Gdata/internal/capture"
	"github.com/antonioalberti/ng5Gdata/internal/core"
	"github.com/antonioalberti/ng5Gdata/internal/extract"
	"github.com/antonioalberti/ng5Gdata/internal/jsonl"
	"github.com/antonioalberti/ng5Gdata/internal/log"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract <capture file>",
	Short: "Extract NovaGenesis messages from a capture file",
	Long: `
Extract reads a pcap or pcapng capture, decodes TCP/UDP payloads and writes
one JSON message record per line. Timestamps are normalized so the first
packet in the capture is second 0.

Examples:
  ng5gdata extract session.pcapng                  # Write extracted.jsonl
  ng5gdata extract session.pcapng -o messages.jsonl
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output := extractOutput
		if output == "" {
			output = cfg.Extract.Output
		}
		return runExtract(args[0], output)
	},
}

func runExtract(capturePath, output string) error {
	logger := log.GetLogger().WithField("capture", capturePath)

	source, err := capture.NewFileSource(capturePath)
	if err != nil {
		return err
	}
	if err := source.Open(); err != nil {
		return err
	}
	defer source.Close()

	decoder := capture.NewDecoder(source.LinkType())
	extractor := extract.New(logger)

	var (
		packets  int
		messages []core.Message
	)
	for {
		data, ci, err := source.ReadPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed packet records are recoverable; skip and go on.
			extractor.Warn(err)
			continue
		}
		packets++

		// Anchor before decoding so frames without a decodable network
		// layer still fix the zero reference.
		extractor.Anchor(ci.Timestamp)

		decoded, err := decoder.Decode(data, ci)
		if err != nil {
			if err != core.ErrNoNetworkLayer {
				extractor.Warn(err)
			}
			continue
		}
		if msg, ok := extractor.ExtractOne(decoded); ok {
			messages = append(messages, msg)
		}
	}

	if packets == 0 {
		return fmt.Errorf("%w: no packets in %s", core.ErrEmptyDataset, capturePath)
	}

	if err := jsonl.WriteFile(output, messages); err != nil {
		return err
	}
	logger.WithFields(map[string]interface{}{
		"packets":  packets,
		"messages": len(messages),
		"output":   output,
	}).Info("extraction finished")
	return nil
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "",
		"output records file (default from config, extracted.jsonl)")
	rootCmd.AddCommand(extractCmd)
}
