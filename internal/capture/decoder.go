package capture

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/antonioalberti/ng5Gdata/internal/core"
)

// Decoder turns raw frames into core.DecodedPacket records.
type Decoder struct {
	linkType layers.LinkType
}

func NewDecoder(linkType layers.LinkType) *Decoder {
	return &Decoder{linkType: linkType}
}

// Decode decodes link, network and transport layers of one frame.
// The application payload is whatever follows the transport header; it may
// be empty. Frames without a decodable network layer are rejected so the
// caller can skip them with a warning.
func (d *Decoder) Decode(data []byte, ci gopacket.CaptureInfo) (core.DecodedPacket, error) {
	if len(data) == 0 {
		return core.DecodedPacket{}, core.ErrPacketTooShort
	}

	pkt := gopacket.NewPacket(data, d.linkType, gopacket.Lazy)

	decoded := core.DecodedPacket{Timestamp: ci.Timestamp}

	if eth, ok := pkt.LinkLayer().(*layers.Ethernet); ok {
		decoded.SrcMAC = eth.SrcMAC.String()
		decoded.DstMAC = eth.DstMAC.String()
	}

	switch net := pkt.NetworkLayer().(type) {
	case *layers.IPv4:
		decoded.IPProtocol = uint8(net.Protocol)
	case *layers.IPv6:
		decoded.IPProtocol = uint8(net.NextHeader)
	default:
		return decoded, core.ErrNoNetworkLayer
	}

	if app := pkt.ApplicationLayer(); app != nil {
		decoded.Payload = app.Payload()
	}

	return decoded, nil
}
