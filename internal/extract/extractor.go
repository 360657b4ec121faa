// Package extract turns decoded packets into ordered Message records.
package extract

import (
	"strings"
	"time"
	"unicode"

	"github.com/antonioalberti/ng5Gdata/internal/core"
	"github.com/antonioalberti/ng5Gdata/internal/log"
	"github.com/antonioalberti/ng5Gdata/internal/ngparse"
)

// Extractor builds Message records from decoded packets. The zero
// reference for timestamp normalization is the first packet handed to the
// extractor, regardless of whether that packet survives filtering.
type Extractor struct {
	logger  log.Logger
	anchor  time.Time
	started bool
}

func New(logger log.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract processes a whole packet sequence in capture order.
func (e *Extractor) Extract(packets []core.DecodedPacket) []core.Message {
	messages := make([]core.Message, 0)
	for _, pkt := range packets {
		if msg, ok := e.ExtractOne(pkt); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

// Anchor sets the zero reference for timestamp normalization. Only the
// first call takes effect. Callers reading frames the decoder rejects must
// still anchor them, so the zero reference stays the absolute first packet
// in the capture.
func (e *Extractor) Anchor(ts time.Time) {
	if !e.started {
		e.anchor = ts
		e.started = true
	}
}

// ExtractOne processes one packet. The boolean is false when the packet
// carries no usable message; that is the expected case for most traffic,
// not an error.
func (e *Extractor) ExtractOne(pkt core.DecodedPacket) (core.Message, bool) {
	e.Anchor(pkt.Timestamp)

	var protocol core.Protocol
	switch pkt.IPProtocol {
	case core.IPProtoTCP:
		protocol = core.ProtocolTCP
	case core.IPProtoUDP:
		protocol = core.ProtocolUDP
	default:
		// ICMP and everything else is excluded up front.
		return core.Message{}, false
	}

	text, ok := decodePayload(pkt.Payload)
	if !ok {
		return core.Message{}, false
	}

	fields, ok := ngparse.Parse(text)
	if !ok {
		return core.Message{}, false
	}

	return core.Message{
		Timestamp:   pkt.Timestamp.Sub(e.anchor).Seconds(),
		Protocol:    protocol,
		SourceMAC:   pkt.SrcMAC,
		DestMAC:     pkt.DstMAC,
		RawText:     text,
		Command:     fields.Command,
		SourcePID:   fields.SourcePID,
		DestPID:     fields.DestPID,
		DeviceID:    fields.DeviceID,
		PayloadMeta: fields.PayloadMeta,
		Annotation:  fields.Annotation,
	}, true
}

// Warn records a recoverable per-packet problem and keeps the run going.
func (e *Extractor) Warn(err error) {
	e.logger.WithError(err).Warn("skipping malformed packet record")
}

// decodePayload turns payload bytes into printable text trimmed to start
// at the first "ng -" command token. The boolean is false when no command
// token is present.
func decodePayload(payload []byte) (string, bool) {
	if len(payload) == 0 {
		return "", false
	}

	text := strings.Map(func(r rune) rune {
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, string(payload))

	idx := strings.Index(text, "ng -")
	if idx < 0 {
		return "", false
	}
	return text[idx:], true
}
