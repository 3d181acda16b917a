package pnio

// PROFINET IO frame identifier types.
//
// Every PROFINET frame starts with a 16-bit frame ID that selects the
// payload format: cyclic real-time data, alarms, DCP, PTCP and so on.
// Only a handful of IDs have fixed names; most are classified by range
// (IEC 61158-6-10, Table 142).

import "fmt"

// FrameID is the 16-bit PROFINET frame identifier.
type FrameID uint16

// TransportClass is the category a frame ID falls into.
type TransportClass int

const (
	// ClassNamed is an exact match in the fixed name table.
	ClassNamed TransportClass = iota
	// ClassRT1 is cyclic real-time class 1 (0x8000-0xBFFF).
	ClassRT1
	// ClassRT3 is cyclic real-time class 3 / IRT (0x0100-0x0FFF).
	ClassRT3
	// ClassRTUDP is cyclic real-time over UDP (0xC000-0xFBFF).
	ClassRTUDP
	// ClassFragmentation is a fragmentation frame (0xFF80-0xFF8F).
	ClassFragmentation
	// ClassRaw is an ID with no name and no matching range.
	ClassRaw
)

// String returns the class label used in display output.
func (c TransportClass) String() string {
	switch c {
	case ClassNamed:
		return "Named"
	case ClassRT1:
		return "RT_CLASS_1"
	case ClassRT3:
		return "RT_CLASS_3"
	case ClassRTUDP:
		return "RT_CLASS_UDP"
	case ClassFragmentation:
		return "FragmentationFrameID"
	default:
		return "Raw"
	}
}

// frameNames is the fixed name table for exact frame ID matches.
var frameNames = map[FrameID]string{
	0x0020: "PTCP-RTSyncPDU-followup",
	0x0080: "PTCP-RTSyncPDU",
	0xFC01: "Alarm High",
	0xFE01: "Alarm Low",
	0xFEFC: "DCP-Hello-Req",
	0xFEFD: "DCP-Get-Set",
	0xFEFE: "DCP-Identify-ReqPDU",
	0xFEFF: "DCP-Identify-ResPDU",
	0xFF00: "PTCP-AnnouncePDU",
	0xFF20: "PTCP-FollowUpPDU",
	0xFF40: "PTCP-DelayReqPDU",
	0xFF41: "PTCP-DelayResPDU-followup",
	0xFF42: "PTCP-DelayFuResPDU",
	0xFF43: "PTCP-DelayResPDU",
}

// Classification is the result of classifying a frame ID.
type Classification struct {
	ID    FrameID
	Class TransportClass
	Name  string // set only for ClassNamed
}

// String renders the classification the way capture tooling displays
// frame IDs: the fixed name, the range label with the hex ID, or the
// bare hex ID.
func (c Classification) String() string {
	switch c.Class {
	case ClassNamed:
		return c.Name
	case ClassRaw:
		return fmt.Sprintf("0x%04X", uint16(c.ID))
	default:
		return fmt.Sprintf("%s (%04x)", c.Class, uint16(c.ID))
	}
}
