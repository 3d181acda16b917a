package rtc

// RTC PDU encoding and decoding.

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tturner/pniodip/internal/layout"
	"github.com/tturner/pniodip/internal/profisafe"
)

// ErrTruncatedFrame reports a declared or required length that exceeds
// the remaining bytes.
var ErrTruncatedFrame = errors.New("rtc: truncated frame")

// ErrMalformedFrame reports a padding or trailer constraint violation.
var ErrMalformedFrame = errors.New("rtc: malformed frame")

// Decode parses one RTC PDU. The usable input is clamped to
// MaxPDULength; bytes beyond the clamp are not consumed and come back
// as rest for the caller to examine. The sub-frame layout is resolved
// from the registry by flow key; with no entry configured, the whole
// data area is decoded as a single raw sub-frame.
func Decode(buf []byte, flow Flow, reg *layout.Registry) (Frame, []byte, error) {
	usable := len(buf)
	var rest []byte
	if usable > MaxPDULength {
		usable = MaxPDULength
		rest = buf[MaxPDULength:]
	}
	if usable < TrailerLength {
		return Frame{}, nil, fmt.Errorf("%w: %d bytes (minimum %d)", ErrTruncatedFrame, usable, TrailerLength)
	}
	dataEnd := usable - TrailerLength

	var queue layout.Entry
	if reg != nil {
		if e, ok := reg.Lookup(layout.Key{Src: flow.Src, Dst: flow.Dst, FrameID: flow.FrameID}); ok {
			queue = e
		}
	}
	if queue == nil {
		queue = layout.Entry{layout.Raw(dataEnd)}
	}

	f := Frame{SubFrames: make([]SubFrame, 0, len(queue))}
	off := 0
	for i := 0; len(queue) > 0; i++ {
		d := queue[0]
		queue = queue[1:]
		sf, n, err := decodeSubFrame(d, buf[off:dataEnd])
		if err != nil {
			return Frame{}, nil, fmt.Errorf("subframe %d (%s): %w", i, d.Kind, err)
		}
		f.SubFrames = append(f.SubFrames, sf)
		off += n
	}

	f.Padding = dataEnd - off
	if err := validatePadding(f.Padding, flow.Transport); err != nil {
		return Frame{}, nil, err
	}

	f.CycleCounter = binary.BigEndian.Uint16(buf[dataEnd : dataEnd+2])
	f.DataStatus = DataStatus(buf[dataEnd+2])
	f.TransferStatus = buf[dataEnd+3]
	return f, rest, nil
}

// Encode serializes a frame. target is the total PDU length to
// produce; zero means minimal, keeping the frame's own Padding. The
// gap between the sub-frames and the trailer becomes zero-filled
// padding and must satisfy the transport's limits.
func Encode(f Frame, transport Transport, target int) ([]byte, error) {
	data := make([]byte, 0, f.DataLength())
	for i, sf := range f.SubFrames {
		var err error
		data, err = appendSubFrame(data, sf)
		if err != nil {
			return nil, fmt.Errorf("subframe %d: %w", i, err)
		}
	}

	if target == 0 {
		target = len(data) + f.Padding + TrailerLength
	}
	if target > MaxPDULength {
		return nil, fmt.Errorf("%w: %d bytes exceeds PDU ceiling %d", ErrMalformedFrame, target, MaxPDULength)
	}
	pad := target - len(data) - TrailerLength
	if pad < 0 {
		return nil, fmt.Errorf("%w: %d data bytes do not fit in %d", ErrMalformedFrame, len(data), target)
	}
	if err := validatePadding(pad, transport); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, target)
	buf = append(buf, data...)
	buf = append(buf, make([]byte, pad)...)
	buf = binary.BigEndian.AppendUint16(buf, f.CycleCounter)
	buf = append(buf, byte(f.DataStatus), f.TransferStatus)
	return buf, nil
}

func validatePadding(pad int, transport Transport) error {
	if pad < 0 || pad > MaxPadding {
		return fmt.Errorf("%w: padding %d outside 0..%d", ErrMalformedFrame, pad, MaxPadding)
	}
	if transport == TransportUDP && pad > MaxPaddingUDP {
		return fmt.Errorf("%w: padding %d outside 0..%d over UDP", ErrMalformedFrame, pad, MaxPaddingUDP)
	}
	return nil
}

// decodeSubFrame parses one sub-frame per its descriptor from the
// start of data (the PDU's data area, padding excluded). Returns the
// sub-frame and bytes consumed.
func decodeSubFrame(d layout.Descriptor, data []byte) (SubFrame, int, error) {
	switch d.Kind {
	case layout.KindRaw:
		if d.Length > len(data) {
			return nil, 0, fmt.Errorf("%w: raw length %d, %d bytes remain", ErrTruncatedFrame, d.Length, len(data))
		}
		return RawData{Data: append([]byte(nil), data[:d.Length]...)}, d.Length, nil

	case layout.KindIOxS:
		var chain IOxSChain
		for i := 0; ; i++ {
			if i >= len(data) {
				return nil, 0, fmt.Errorf("%w: IOxS chain runs past data area", ErrTruncatedFrame)
			}
			x := ioxsFromByte(data[i])
			chain = append(chain, x)
			if !x.Extension {
				return chain, len(chain), nil
			}
		}

	case layout.KindSafety:
		sf, n, err := profisafe.Decode(d.Direction, d.Seed, d.Length, data)
		if err != nil {
			if errors.Is(err, profisafe.ErrDataTooLong) {
				return nil, 0, fmt.Errorf("%w: %v", layout.ErrInvalidDescriptor, err)
			}
			return nil, 0, fmt.Errorf("%w: %v", ErrTruncatedFrame, err)
		}
		return SafetySubFrame{Frame: sf}, n, nil

	default:
		return nil, 0, fmt.Errorf("%w: unknown kind %d", layout.ErrInvalidDescriptor, int(d.Kind))
	}
}

func appendSubFrame(dst []byte, sf SubFrame) ([]byte, error) {
	switch v := sf.(type) {
	case RawData:
		return append(dst, v.Data...), nil

	case IOxSChain:
		for i, x := range v {
			// Extension flags follow from position: set on every
			// entry but the last.
			x.Extension = i < len(v)-1
			dst = append(dst, x.Byte())
		}
		return dst, nil

	case SafetySubFrame:
		buf, err := profisafe.Encode(v.Frame)
		if err != nil {
			if errors.Is(err, profisafe.ErrDataTooLong) {
				return nil, fmt.Errorf("%w: %v", layout.ErrInvalidDescriptor, err)
			}
			return nil, err
		}
		return append(dst, buf...), nil

	default:
		return nil, fmt.Errorf("unsupported sub-frame type %T", sf)
	}
}
