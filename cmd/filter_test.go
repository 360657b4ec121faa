package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonioalberti/ng5Gdata/internal/core"
	"github.com/antonioalberti/ng5Gdata/internal/filter"
	"github.com/antonioalberti/ng5Gdata/internal/jsonl"
	"github.com/antonioalberti/ng5Gdata/internal/timeline"
)

func writeRecords(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "records.jsonl")
	messages := []core.Message{
		{Timestamp: 0.0, Protocol: core.ProtocolUDP, RawText: "ng -m ...", Command: core.CommandM, SourcePID: "1", DestPID: "2"},
		{Timestamp: 0.5, Protocol: core.ProtocolUDP, RawText: "ng -info ...", Command: core.CommandInfo, DestPID: "2", Annotation: "Payload: a.txt"},
		{Timestamp: 1.0, Protocol: core.ProtocolUDP, RawText: "ng -p ...", Command: core.CommandP, DestPID: "3"},
	}
	require.NoError(t, jsonl.WriteFile(path, messages))
	return path
}

func TestRunFilterWindow(t *testing.T) {
	dir := t.TempDir()
	input := writeRecords(t, dir)
	output := filepath.Join(dir, "relevant.jsonl")

	interval := filter.Interval{Begin: filter.Bound(0.5), End: filter.Bound(1.0)}
	require.NoError(t, runFilter(input, output, interval, []string{"ng -"}))

	kept, skipped, err := jsonl.ReadFile(output)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, kept, 2)
	assert.Equal(t, core.CommandInfo, kept[0].Command)
	assert.Equal(t, core.CommandP, kept[1].Command)
}

func TestRunFilterMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := runFilter(filepath.Join(dir, "missing.jsonl"), filepath.Join(dir, "out.jsonl"), filter.Interval{}, nil)
	assert.Error(t, err)
}

func TestRunTimelineDocument(t *testing.T) {
	dir := t.TempDir()
	input := writeRecords(t, dir)
	output := filepath.Join(dir, "timeline.json")

	require.NoError(t, runTimeline(input, output, "json", filter.Interval{}))

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var result timeline.Result
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, map[string]string{"2": "P1", "3": "P2"}, result.Aliases)
	assert.Len(t, result.Groups["2"], 2)
}

func TestRunTimelineEmptyWindow(t *testing.T) {
	dir := t.TempDir()
	input := writeRecords(t, dir)
	output := filepath.Join(dir, "timeline.json")

	interval := filter.Interval{Begin: filter.Bound(100), End: filter.Bound(200)}
	err := runTimeline(input, output, "json", interval)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no partial output file is valid")
}

func TestRunSequenceDirections(t *testing.T) {
	dir := t.TempDir()
	input := writeRecords(t, dir)
	output := filepath.Join(dir, "sequence.json")

	fig := timeline.FigureOptions{Width: 16, Height: 12, LabelOffset: 0.5}
	require.NoError(t, runSequence(input, output, "json", filter.Interval{}, fig))

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var doc timeline.SequenceDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Rows, 3)
	assert.Equal(t, "1", doc.SourcePID)
	assert.Equal(t, "2", doc.DestPID)
	assert.Equal(t, timeline.DirectionForward, doc.Rows[0].Direction)
	assert.Equal(t, 16, doc.Figure.Width)
}
