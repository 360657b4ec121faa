package timeline

import "github.com/antonioalberti/ng5Gdata/internal/core"

// Direction classifies message flow between the source and destination
// lifelines of a sequence diagram.
const (
	DirectionForward = "forward" // source → destination
	DirectionReverse = "reverse" // destination → source
)

// FigureOptions are cosmetic rendering options echoed through to the
// renderer untouched.
type FigureOptions struct {
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	LabelOffset float64 `json:"label_offset" yaml:"label_offset"`
}

// SequenceRow is one arrow of the sequence diagram.
type SequenceRow struct {
	Timestamp  float64      `json:"timestamp" yaml:"timestamp"`
	Command    core.Command `json:"command" yaml:"command"`
	Direction  string       `json:"direction" yaml:"direction"`
	SourcePID  string       `json:"source_pid,omitempty" yaml:"source_pid,omitempty"`
	DestPID    string       `json:"dest_pid,omitempty" yaml:"dest_pid,omitempty"`
	Annotation string       `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// SequenceDoc is the renderer contract for sequence diagrams. The
// lifelines come from the first plottable message.
type SequenceDoc struct {
	SourcePID string        `json:"source_pid,omitempty" yaml:"source_pid,omitempty"`
	DestPID   string        `json:"dest_pid,omitempty" yaml:"dest_pid,omitempty"`
	MinTime   float64       `json:"min_time" yaml:"min_time"`
	MaxTime   float64       `json:"max_time" yaml:"max_time"`
	Figure    FigureOptions `json:"figure" yaml:"figure"`
	Rows      []SequenceRow `json:"rows" yaml:"rows"`
}

// direction returns the arrow direction for a command. Requests flow from
// source to destination; sequence confirmations flow back.
func direction(cmd core.Command) string {
	if cmd == core.CommandSCN {
		return DirectionReverse
	}
	return DirectionForward
}

// BuildSequence derives the sequence-diagram view from an already-filtered
// message sequence. Messages without a destination pid are excluded, the
// same rule Build applies.
func BuildSequence(messages []core.Message, fig FigureOptions) SequenceDoc {
	doc := SequenceDoc{Figure: fig, Rows: make([]SequenceRow, 0, len(messages))}

	for _, msg := range messages {
		if msg.DestPID == "" {
			continue
		}
		if doc.SourcePID == "" && doc.DestPID == "" {
			doc.SourcePID = msg.SourcePID
			doc.DestPID = msg.DestPID
			doc.MinTime = msg.Timestamp
		}
		doc.MaxTime = msg.Timestamp
		doc.Rows = append(doc.Rows, SequenceRow{
			Timestamp:  msg.Timestamp,
			Command:    msg.Command,
			Direction:  direction(msg.Command),
			SourcePID:  msg.SourcePID,
			DestPID:    msg.DestPID,
			Annotation: msg.Annotation,
		})
	}

	return doc
}

// EventRow is one point of the events-over-time view, categorized by
// command and source MAC address.
type EventRow struct {
	Timestamp float64      `json:"timestamp" yaml:"timestamp"`
	Command   core.Command `json:"command" yaml:"command"`
	SourceMAC string       `json:"source_mac,omitempty" yaml:"source_mac,omitempty"`
	Category  string       `json:"category" yaml:"category"`
}

// BuildEvents flattens messages into event-plot rows. Unlike the grouped
// views it keeps messages without a destination pid; the event plot only
// needs the command and the emitting device.
func BuildEvents(messages []core.Message) []EventRow {
	rows := make([]EventRow, 0, len(messages))
	for _, msg := range messages {
		rows = append(rows, EventRow{
			Timestamp: msg.Timestamp,
			Command:   msg.Command,
			SourceMAC: msg.SourceMAC,
			Category:  "ng -" + string(msg.Command) + " | " + msg.SourceMAC,
		})
	}
	return rows
}
