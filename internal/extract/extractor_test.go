package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonioalberti/ng5Gdata/internal/core"
	"github.com/antonioalberti/ng5Gdata/internal/log"
)

func packetAt(ts time.Time, proto uint8, payload string) core.DecodedPacket {
	return core.DecodedPacket{
		Timestamp:  ts,
		SrcMAC:     "aa:bb:cc:dd:ee:ff",
		DstMAC:     "11:22:33:44:55:66",
		IPProtocol: proto,
		Payload:    []byte(payload),
	}
}

const mPayload = "ng -m --cl 0.1 [ < 1 s 0F0F0F0F > " +
	"< 4 s AAAAAAAA BBBBBBBB CCCCCCCC DDDDDDDD > " +
	"< 4 s 11111111 22222222 33333333 44444444 > ]"

func TestExtractAnchorsToFirstPacket(t *testing.T) {
	base := time.Unix(1000, 0)
	packets := []core.DecodedPacket{
		// The first packet is ICMP; it is skipped but still sets the
		// zero reference for normalization.
		packetAt(base, core.IPProtoICMP, ""),
		packetAt(base.Add(500*time.Millisecond), core.IPProtoUDP, mPayload),
		packetAt(base.Add(1500*time.Millisecond), core.IPProtoTCP, mPayload),
	}

	messages := New(log.GetLogger()).Extract(packets)
	require.Len(t, messages, 2)

	assert.Equal(t, 0.5, messages[0].Timestamp)
	assert.Equal(t, 1.5, messages[1].Timestamp)
	assert.Equal(t, core.ProtocolUDP, messages[0].Protocol)
	assert.Equal(t, core.ProtocolTCP, messages[1].Protocol)
}

func TestExtractAnchorsOnUndecodableFirstFrame(t *testing.T) {
	// A capture opening with a frame the decoder rejects (ARP, truncated
	// record) still defines second 0. The frame never reaches ExtractOne,
	// so the reader anchors it explicitly.
	base := time.Unix(2000, 0)
	extractor := New(log.GetLogger())
	extractor.Anchor(base)

	msg, ok := extractor.ExtractOne(packetAt(base.Add(5*time.Second), core.IPProtoUDP, mPayload))
	require.True(t, ok)
	assert.Equal(t, 5.0, msg.Timestamp)
}

func TestExtractAnchorFirstCallWins(t *testing.T) {
	base := time.Unix(3000, 0)
	extractor := New(log.GetLogger())
	extractor.Anchor(base)
	extractor.Anchor(base.Add(time.Hour))

	msg, ok := extractor.ExtractOne(packetAt(base.Add(2*time.Second), core.IPProtoUDP, mPayload))
	require.True(t, ok)
	assert.Equal(t, 2.0, msg.Timestamp)
}

func TestExtractTimestampsNonDecreasing(t *testing.T) {
	base := time.Unix(0, 0)
	packets := make([]core.DecodedPacket, 0, 10)
	for i := 0; i < 10; i++ {
		packets = append(packets, packetAt(base.Add(time.Duration(i)*time.Second), core.IPProtoUDP, mPayload))
	}

	messages := New(log.GetLogger()).Extract(packets)
	require.Len(t, messages, 10)
	for i := range messages {
		assert.GreaterOrEqual(t, messages[i].Timestamp, 0.0)
		if i > 0 {
			assert.GreaterOrEqual(t, messages[i].Timestamp, messages[i-1].Timestamp)
		}
	}
}

func TestExtractDropsNoise(t *testing.T) {
	base := time.Unix(0, 0)
	packets := []core.DecodedPacket{
		packetAt(base, core.IPProtoUDP, "hello world"),
		packetAt(base.Add(time.Second), core.IPProtoUDP, ""),
		packetAt(base.Add(2*time.Second), core.IPProtoICMP, mPayload),
		packetAt(base.Add(3*time.Second), core.IPProtoUDP, "ng -d [ unrecognized ]"),
	}

	messages := New(log.GetLogger()).Extract(packets)
	assert.Empty(t, messages)
}

func TestExtractStripsLeadingGarbage(t *testing.T) {
	payload := "\x01\x02junk " + mPayload
	packets := []core.DecodedPacket{packetAt(time.Unix(0, 0), core.IPProtoUDP, payload)}

	messages := New(log.GetLogger()).Extract(packets)
	require.Len(t, messages, 1)
	assert.True(t, len(messages[0].RawText) > 0)
	assert.Equal(t, "ng -", messages[0].RawText[:4])
	assert.Equal(t, "33333333", messages[0].DestPID)
	assert.Equal(t, "0F0F0F0F", messages[0].DeviceID)
}

func TestExtractFieldsPopulated(t *testing.T) {
	packets := []core.DecodedPacket{packetAt(time.Unix(0, 0), core.IPProtoUDP, "ng -info [ < 1 s a.txt > ]")}

	messages := New(log.GetLogger()).Extract(packets)
	require.Len(t, messages, 1)

	msg := messages[0]
	assert.Equal(t, core.CommandInfo, msg.Command)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", msg.SourceMAC)
	assert.Equal(t, "11:22:33:44:55:66", msg.DestMAC)
	require.NotNil(t, msg.PayloadMeta)
	assert.Equal(t, "a.txt", msg.PayloadMeta.Filename)
}
