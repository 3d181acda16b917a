package pnio

// Frame ID classification and name resolution.

import (
	"strconv"
	"strings"
)

// Classify maps a frame ID to its transport class. Pure and total:
// exact names win, then the range tests in table order, then Raw.
func Classify(id FrameID) Classification {
	if name, ok := frameNames[id]; ok {
		return Classification{ID: id, Class: ClassNamed, Name: name}
	}
	switch {
	case 0x0100 <= id && id < 0x1000:
		return Classification{ID: id, Class: ClassRT3}
	case 0x8000 <= id && id < 0xC000:
		return Classification{ID: id, Class: ClassRT1}
	case 0xC000 <= id && id < 0xFC00:
		return Classification{ID: id, Class: ClassRTUDP}
	case 0xFF80 <= id && id < 0xFF90:
		return Classification{ID: id, Class: ClassFragmentation}
	}
	return Classification{ID: id, Class: ClassRaw}
}

// IsRTC reports whether a frame ID carries a cyclic real-time PDU.
// Covers RT_CLASS_3, RT_CLASS_1 and RT_CLASS_UDP; everything else is
// routed to the generic payload resolver.
func IsRTC(id FrameID) bool {
	return (0x0100 <= id && id < 0x1000) || (0x8000 <= id && id < 0xFC00)
}

// Resolve turns a symbolic frame name back into a numeric ID. Range
// class labels resolve to the lowest ID of their range, a lossy but
// canonical choice. Numeric input (hex with 0x prefix, or decimal) is
// echoed back as its value. Anything else returns ok=false; callers
// that need a hard error must check the result.
func Resolve(name string) (FrameID, bool) {
	for id, n := range frameNames {
		if n == name {
			return id, true
		}
	}
	switch name {
	case "RT_CLASS_3":
		return 0x0100, true
	case "RT_CLASS_1":
		return 0x8000, true
	case "RT_CLASS_UDP":
		return 0xC000, true
	case "FragmentationFrameID":
		return 0xFF80, true
	}
	base := 10
	s := name
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	if v, err := strconv.ParseUint(s, base, 16); err == nil {
		return FrameID(v), true
	}
	return 0, false
}
