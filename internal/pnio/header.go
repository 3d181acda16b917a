package pnio

// PNIO header codec.
//
// The PROFINET header is just the 2-byte frame ID; everything after it
// is the payload of whatever format the ID selects. Carried directly
// over Ethernet (EtherType 0x8892) or encapsulated in UDP (port 0x8892).

import (
	"encoding/binary"
	"fmt"
)

// EtherTypePNIO is the Ethernet type for PROFINET frames.
const EtherTypePNIO = 0x8892

// UDPPortPNIO is the UDP port for RT-over-UDP encapsulation.
const UDPPortPNIO = 0x8892

// HeaderSize is the fixed PNIO header size.
const HeaderSize = 2

// Header is the PROFINET frame header.
type Header struct {
	FrameID FrameID
}

// EncodeHeader encodes the header into 2 bytes.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(buf, uint16(h.FrameID))
	return buf
}

// DecodeHeader decodes the header and returns the remaining payload.
func DecodeHeader(data []byte) (Header, []byte, error) {
	if len(data) < HeaderSize {
		return Header{}, nil, fmt.Errorf("PNIO header too short: %d bytes (minimum %d)", len(data), HeaderSize)
	}
	h := Header{FrameID: FrameID(binary.BigEndian.Uint16(data[:HeaderSize]))}
	return h, data[HeaderSize:], nil
}
