package capture

import (
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonioalberti/ng5Gdata/internal/core"
)

// makeUDPPacket builds an Ethernet/IPv4/UDP frame carrying payload.
func makeUDPPacket(t *testing.T, payload []byte) []byte {
	t.Helper()

	eth := &layers.Ethernet{
		SrcMAC:       []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		DstMAC:       []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    []byte{192, 168, 1, 1},
		DstIP:    []byte{192, 168, 1, 2},
	}
	udp := &layers.UDP{SrcPort: 5000, DstPort: 9999}
	require.NoError(t, udp.SetNetworkLayerForChecksum(ip))

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(payload)))
	return buf.Bytes()
}

func makeICMPPacket(t *testing.T) []byte {
	t.Helper()

	eth := &layers.Ethernet{
		SrcMAC:       []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		DstMAC:       []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolICMPv4,
		SrcIP:    []byte{192, 168, 1, 1},
		DstIP:    []byte{192, 168, 1, 2},
	}
	icmp := &layers.ICMPv4{TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0)}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, eth, ip, icmp))
	return buf.Bytes()
}

func TestDecoderUDP(t *testing.T) {
	decoder := NewDecoder(layers.LinkTypeEthernet)
	payload := []byte("ng -p test")
	ci := gopacket.CaptureInfo{Timestamp: time.Unix(100, 0)}

	decoded, err := decoder.Decode(makeUDPPacket(t, payload), ci)
	require.NoError(t, err)

	assert.Equal(t, time.Unix(100, 0), decoded.Timestamp)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", decoded.SrcMAC)
	assert.Equal(t, "00:11:22:33:44:55", decoded.DstMAC)
	assert.Equal(t, core.IPProtoUDP, decoded.IPProtocol)
	assert.Equal(t, payload, decoded.Payload)
}

func TestDecoderICMP(t *testing.T) {
	decoder := NewDecoder(layers.LinkTypeEthernet)

	decoded, err := decoder.Decode(makeICMPPacket(t), gopacket.CaptureInfo{Timestamp: time.Unix(1, 0)})
	require.NoError(t, err)
	assert.Equal(t, core.IPProtoICMP, decoded.IPProtocol)
}

func TestDecoderEmptyFrame(t *testing.T) {
	decoder := NewDecoder(layers.LinkTypeEthernet)

	_, err := decoder.Decode(nil, gopacket.CaptureInfo{})
	assert.ErrorIs(t, err, core.ErrPacketTooShort)
}

func TestDecoderNonIPFrame(t *testing.T) {
	decoder := NewDecoder(layers.LinkTypeEthernet)

	eth := &layers.Ethernet{
		SrcMAC:       []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		DstMAC:       []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		EthernetType: layers.EthernetTypeARP,
	}
	arp := &layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		SourceProtAddress: []byte{192, 168, 1, 1},
		DstHwAddress:      []byte{0, 0, 0, 0, 0, 0},
		DstProtAddress:    []byte{192, 168, 1, 2},
	}
	buf := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(buf, gopacket.SerializeOptions{FixLengths: true}, eth, arp))

	_, err := decoder.Decode(buf.Bytes(), gopacket.CaptureInfo{})
	assert.ErrorIs(t, err, core.ErrNoNetworkLayer)
}
