// Package core defines the data structures shared by the extraction
// pipeline, with zero external dependencies.
package core

import "time"

// Protocol is the transport protocol a message was carried over.
type Protocol string

const (
	ProtocolTCP Protocol = "TCP"
	ProtocolUDP Protocol = "UDP"
)

// Command is the recognized operation token inside a decoded payload.
// The vocabulary is closed; anything else maps to CommandOther and the
// message is dropped before it reaches the filter or builder stage.
type Command string

const (
	CommandM      Command = "m"
	CommandInfo   Command = "info"
	CommandNotify Command = "notify"
	CommandP      Command = "p"
	CommandSCN    Command = "scn"
	CommandOther  Command = "other"
)

// Known reports whether c belongs to the recognized vocabulary.
func (c Command) Known() bool {
	switch c {
	case CommandM, CommandInfo, CommandNotify, CommandP, CommandSCN:
		return true
	}
	return false
}

// PayloadMeta describes a transferable file referenced by a payload.
// Only .txt and .jpg references are tracked; anything else is ignored
// for display purposes.
type PayloadMeta struct {
	Filename  string `json:"filename" yaml:"filename"`
	Extension string `json:"extension" yaml:"extension"`
}

// Message is one extracted application-level event. A Message is created
// from exactly one packet and is immutable once extracted; filtering and
// alias assignment build derived views, they never mutate it.
type Message struct {
	// Timestamp is capture-relative seconds: the absolute first packet in
	// the capture is the zero reference, regardless of protocol filtering.
	Timestamp float64 `json:"timestamp" yaml:"timestamp"`

	Protocol  Protocol `json:"protocol" yaml:"protocol"`
	SourceMAC string   `json:"source_mac,omitempty" yaml:"source_mac,omitempty"`
	DestMAC   string   `json:"dest_mac,omitempty" yaml:"dest_mac,omitempty"`

	// RawText is the decoded payload text the command was parsed from,
	// trimmed to start at the first "ng -" token.
	RawText string `json:"raw_text" yaml:"raw_text"`

	Command   Command `json:"command" yaml:"command"`
	SourcePID string  `json:"source_pid,omitempty" yaml:"source_pid,omitempty"`
	// DestPID is mandatory for timeline/sequence grouping; messages
	// lacking it still appear in raw extraction output.
	DestPID  string `json:"dest_pid,omitempty" yaml:"dest_pid,omitempty"`
	DeviceID string `json:"device_id,omitempty" yaml:"device_id,omitempty"`

	PayloadMeta *PayloadMeta `json:"payload_meta,omitempty" yaml:"payload_meta,omitempty"`

	// Annotation is a human-readable summary of the command payload,
	// carried through to the renderer contract.
	Annotation string `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// DecodedPacket is the per-packet result of link/network/transport
// decoding, the input contract of the message extractor.
type DecodedPacket struct {
	Timestamp  time.Time
	SrcMAC     string
	DstMAC     string
	IPProtocol uint8 // ICMP=1, TCP=6, UDP=17
	Payload    []byte
}

// IP protocol numbers for DecodedPacket.IPProtocol.
const (
	IPProtoICMP uint8 = 1
	IPProtoTCP  uint8 = 6
	IPProtoUDP  uint8 = 17
)
