package rtc

// PROFINET Real-Time Cyclic PDU types.
//
// An RTC PDU is a flat concatenation of sub-frames (process data,
// IOxS status chains, PROFIsafe sub-frames), padding, and a trailing
// APDU status block: 2-byte cycle counter, 1-byte data status, 1-byte
// transfer status (IEC 61158-6-10, Tables 163/164). Sub-frames carry
// no per-item framing, so decoding needs an out-of-band layout.

import (
	"github.com/tturner/pniodip/internal/pnio"
	"github.com/tturner/pniodip/internal/profisafe"
)

// MaxPDULength is the hard RTC PDU ceiling (IEC 61158-6-10, line 690).
const MaxPDULength = 1440

// TrailerLength is the APDU status size: cycle counter + data status +
// transfer status.
const TrailerLength = 4

// Padding limits (IEC 61158-6-10, Table 163).
const (
	MaxPadding    = 40
	MaxPaddingUDP = 12
)

// Transport is how the PDU reached us; it selects the padding limit.
type Transport int

const (
	TransportEthernet Transport = iota
	TransportUDP
)

// String returns the transport label.
func (tr Transport) String() string {
	if tr == TransportUDP {
		return "udp"
	}
	return "ethernet"
}

// Flow is the per-PDU context the codec needs: where the frame came
// from and how. The codec never reaches into the enclosing packet;
// callers extract this at the envelope boundary.
type Flow struct {
	Src       pnio.Addr
	Dst       pnio.Addr
	FrameID   pnio.FrameID
	Transport Transport
}

// DataStatus is the 8-bit APDU data status flag set.
type DataStatus uint8

const (
	DataStatusPrimary    DataStatus = 1 << 0
	DataStatusRedundancy DataStatus = 1 << 1
	DataStatusValidData  DataStatus = 1 << 2
	DataStatusRun        DataStatus = 1 << 4
	DataStatusNoProblem  DataStatus = 1 << 5
	DataStatusIgnore     DataStatus = 1 << 7

	// DataStatusDefault is the normal operating value: primary,
	// valid data, run, no problem.
	DataStatusDefault = DataStatusPrimary | DataStatusValidData | DataStatusRun | DataStatusNoProblem
)

var dataStatusNames = [8]string{
	"primary", "redundancy", "validData", "reserved_1",
	"run", "no_problem", "reserved_2", "ignore",
}

// Names returns the names of the set bits, in bit order.
func (s DataStatus) Names() []string {
	var names []string
	for bit := 0; bit < 8; bit++ {
		if s&(1<<bit) != 0 {
			names = append(names, dataStatusNames[bit])
		}
	}
	return names
}

// DataState is the IOxS good/bad indication.
type DataState int

const (
	StateBad DataState = iota
	StateGood
)

// String returns the data state label.
func (s DataState) String() string {
	if s == StateGood {
		return "good"
	}
	return "bad"
}

// Instance locates what an IOxS entry reports on.
type Instance int

const (
	InstanceSubslot Instance = iota
	InstanceSlot
	InstanceDevice
	InstanceController
)

// String returns the instance label.
func (i Instance) String() string {
	switch i {
	case InstanceSlot:
		return "slot"
	case InstanceDevice:
		return "device"
	case InstanceController:
		return "controller"
	default:
		return "subslot"
	}
}

// IOxS is one IO consumer/producer status byte (IEC 61158-6-10,
// Tables 179-181): data state in bit 7, instance in bits 6-5,
// reserved in bits 4-1, extension flag in bit 0. A set extension flag
// means another IOxS byte follows immediately.
type IOxS struct {
	DataState DataState
	Instance  Instance
	Reserved  uint8
	Extension bool
}

// Byte packs the entry into its wire byte.
func (x IOxS) Byte() byte {
	b := byte(x.DataState)<<7 | byte(x.Instance)<<5 | (x.Reserved&0x0F)<<1
	if x.Extension {
		b |= 0x01
	}
	return b
}

// ioxsFromByte unpacks one wire byte.
func ioxsFromByte(b byte) IOxS {
	return IOxS{
		DataState: DataState(b >> 7),
		Instance:  Instance(b >> 5 & 0x03),
		Reserved:  b >> 1 & 0x0F,
		Extension: b&0x01 != 0,
	}
}

// SubFrame is one data item inside an RTC PDU. Every variant knows
// its exact wire length.
type SubFrame interface {
	Length() int
	subFrame()
}

// RawData is an opaque fixed-length data block.
type RawData struct {
	Data []byte
}

func (r RawData) Length() int { return len(r.Data) }
func (RawData) subFrame()     {}

// IOxSChain is a run of chained IOxS entries. All entries except the
// last have the extension flag set on the wire; the encoder derives
// the flags from position.
type IOxSChain []IOxS

func (c IOxSChain) Length() int { return len(c) }
func (IOxSChain) subFrame()     {}

// SafetySubFrame is a PROFIsafe control or status sub-frame.
type SafetySubFrame struct {
	profisafe.Frame
}

func (SafetySubFrame) subFrame() {}

// Frame is a decoded RTC PDU.
type Frame struct {
	SubFrames []SubFrame
	// Padding is the gap between the last sub-frame and the trailer.
	// Padding bytes carry no data and are zero-filled on encode.
	Padding        int
	CycleCounter   uint16
	DataStatus     DataStatus
	TransferStatus uint8
}

// DataLength returns the summed wire size of the sub-frames.
func (f Frame) DataLength() int {
	n := 0
	for _, sf := range f.SubFrames {
		n += sf.Length()
	}
	return n
}
