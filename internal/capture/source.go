// Package capture reads offline capture files and decodes frames into the
// pipeline's packet contract.
package capture

import (
	"fmt"
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// FileSource reads packets from a pcap or pcapng file.
type FileSource struct {
	path   string
	handle *pcap.Handle
}

func NewFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, fmt.Errorf("capture file path is required")
	}
	return &FileSource{path: path}, nil
}

// Open opens the capture file. pcap handles both classic pcap and pcapng.
func (fs *FileSource) Open() error {
	handle, err := pcap.OpenOffline(fs.path)
	if err != nil {
		return fmt.Errorf("failed to open capture file %s: %w", fs.path, err)
	}
	fs.handle = handle
	return nil
}

// ReadPacket returns the next raw frame. io.EOF signals end of capture.
func (fs *FileSource) ReadPacket() ([]byte, gopacket.CaptureInfo, error) {
	if fs.handle == nil {
		return nil, gopacket.CaptureInfo{}, fmt.Errorf("file source not opened")
	}
	data, ci, err := fs.handle.ReadPacketData()
	if err != nil {
		if err == io.EOF {
			return nil, gopacket.CaptureInfo{}, io.EOF
		}
		return nil, gopacket.CaptureInfo{}, fmt.Errorf("failed to read packet: %w", err)
	}
	return data, ci, nil
}

func (fs *FileSource) LinkType() layers.LinkType {
	if fs.handle == nil {
		return layers.LinkTypeEthernet // default
	}
	return fs.handle.LinkType()
}

func (fs *FileSource) Close() error {
	if fs.handle != nil {
		fs.handle.Close()
		fs.handle = nil
	}
	return nil
}
