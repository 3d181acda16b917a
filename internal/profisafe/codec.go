package profisafe

// PROFIsafe sub-frame encoding and decoding.
//
// The codec transports the CRC field verbatim; it never computes or
// verifies it. An encoder collaborator that needs a correct CRC must
// supply one.

import (
	"encoding/binary"
	"fmt"
)

// Frame is one safety control or status sub-frame.
type Frame struct {
	Direction Direction
	Mode      SeedMode
	Data      []byte // F-data, fixed length per descriptor
	Flags     uint8  // control or status byte, per Direction
	CRC       uint32 // 3 bytes on the wire for NoSeed, 4 for Seed
}

// Length returns the frame's wire size.
func (f Frame) Length() int {
	return FrameLength(f.Mode, len(f.Data))
}

// FlagNames returns the set flag bit names for the frame's direction.
func (f Frame) FlagNames() []string {
	return FlagNames(f.Direction, f.Flags)
}

// Encode serializes the frame: data, flag byte, CRC.
func Encode(f Frame) ([]byte, error) {
	if err := ValidateDataLength(f.Mode, len(f.Data)); err != nil {
		return nil, fmt.Errorf("%w: %d bytes in %s mode (maximum %d)",
			ErrDataTooLong, len(f.Data), f.Mode, MaxDataLength(f.Mode))
	}
	if f.Mode == NoSeed && f.CRC > 0xFFFFFF {
		return nil, fmt.Errorf("CRC 0x%08X does not fit the 3-byte field", f.CRC)
	}
	buf := make([]byte, 0, f.Length())
	buf = append(buf, f.Data...)
	buf = append(buf, f.Flags)
	if f.Mode == Seed {
		buf = binary.BigEndian.AppendUint32(buf, f.CRC)
	} else {
		buf = append(buf, byte(f.CRC>>16), byte(f.CRC>>8), byte(f.CRC))
	}
	return buf, nil
}

// Decode parses one safety sub-frame from the start of data. The data
// length comes from the descriptor, never from the wire. Returns the
// frame and the number of bytes consumed.
func Decode(dir Direction, mode SeedMode, dataLen int, data []byte) (Frame, int, error) {
	if err := ValidateDataLength(mode, dataLen); err != nil {
		return Frame{}, 0, fmt.Errorf("%w: %d bytes in %s mode (maximum %d)",
			ErrDataTooLong, dataLen, mode, MaxDataLength(mode))
	}
	need := FrameLength(mode, dataLen)
	if len(data) < need {
		return Frame{}, 0, fmt.Errorf("safety sub-frame too short: %d bytes (need %d)", len(data), need)
	}
	f := Frame{
		Direction: dir,
		Mode:      mode,
		Data:      append([]byte(nil), data[:dataLen]...),
		Flags:     data[dataLen],
	}
	crc := data[dataLen+1 : need]
	if mode == Seed {
		f.CRC = binary.BigEndian.Uint32(crc)
	} else {
		f.CRC = uint32(crc[0])<<16 | uint32(crc[1])<<8 | uint32(crc[2])
	}
	return f, need, nil
}
