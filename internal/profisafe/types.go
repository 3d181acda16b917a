package profisafe

// PROFIsafe sub-frame types (IEC 61784-3-3 Ed. 3, v2.6).
//
// A safety sub-frame rides inside cyclic real-time data and carries a
// fixed-length block of F-data, one control or status byte, and a CRC.
// The CRC width depends on the F_CRC_Seed mode: 3 bytes without seed,
// 4 bytes with. The data length is fixed per logical I/O point at
// configuration time; the wire format has no length prefix, so a
// decoder must be told the length up front.

import "errors"

// Direction selects the control (host to device) or status (device to
// host) flag layout.
type Direction int

const (
	Control Direction = iota
	Status
)

// String returns the direction label.
func (d Direction) String() string {
	if d == Status {
		return "status"
	}
	return "control"
}

// SeedMode is the F_CRC_Seed framing variant.
type SeedMode int

const (
	// NoSeed is standard framing: 3-byte CRC, up to 12 data bytes.
	NoSeed SeedMode = iota
	// Seed is F_CRC_Seed=1 framing: 4-byte CRC, up to 13 data bytes.
	Seed
)

// String returns the seed mode label.
func (m SeedMode) String() string {
	if m == Seed {
		return "crc-seed"
	}
	return "no-seed"
}

// ErrDataTooLong reports an F-data length above the mode maximum.
var ErrDataTooLong = errors.New("profisafe: data length exceeds mode maximum")

// Control byte flag bits, bit 0 first (IEC 61784-3-3, Figure 20).
const (
	CtrlIParEN     = 1 << 0 // iPar_EN
	CtrlOAReq      = 1 << 1 // OA_Req
	CtrlRConsNr    = 1 << 2 // R_cons_nr
	CtrlUseTO2     = 1 << 3 // Use_TO2
	CtrlActivateFV = 1 << 4 // activate_FV
	CtrlToggleH    = 1 << 5 // Toggle_h
	CtrlChFAck     = 1 << 6 // ChF_Ack
	CtrlLoopcheck  = 1 << 7 // Loopcheck
)

// Status byte flag bits, bit 0 first (IEC 61784-3-3, Figure 19).
const (
	StatIParOK      = 1 << 0 // iPar_OK
	StatDeviceFault = 1 << 1 // Device_Fault/ChF_Ack_Req
	StatCECRC       = 1 << 2 // CE_CRC
	StatWDTimeout   = 1 << 3 // WD_timeout
	StatFVActivated = 1 << 4 // FV_activated
	StatToggleD     = 1 << 5 // Toggle_d
	StatConsNrR     = 1 << 6 // cons_nr_R
)

var controlFlagNames = [8]string{
	"iPar_EN", "OA_Req", "R_cons_nr", "Use_TO2",
	"activate_FV", "Toggle_h", "ChF_Ack", "Loopcheck",
}

var statusFlagNames = [8]string{
	"iPar_OK", "Device_Fault/ChF_Ack_Req", "CE_CRC", "WD_timeout",
	"FV_activated", "Toggle_d", "cons_nr_R", "reserved",
}

// FlagNames returns the names of the set bits in a control or status
// byte, in bit order.
func FlagNames(dir Direction, flags uint8) []string {
	table := &controlFlagNames
	if dir == Status {
		table = &statusFlagNames
	}
	var names []string
	for bit := 0; bit < 8; bit++ {
		if flags&(1<<bit) != 0 {
			names = append(names, table[bit])
		}
	}
	return names
}

// MaxDataLength returns the maximum F-data length for a seed mode.
func MaxDataLength(mode SeedMode) int {
	if mode == Seed {
		return 13
	}
	return 12
}

// CRCLength returns the CRC field width for a seed mode.
func CRCLength(mode SeedMode) int {
	if mode == Seed {
		return 4
	}
	return 3
}

// FrameLength returns the total wire size of a safety sub-frame with
// the given data length: data + flag byte + CRC.
func FrameLength(mode SeedMode, dataLen int) int {
	return dataLen + 1 + CRCLength(mode)
}

// ValidateDataLength checks an F-data length against the mode maximum.
func ValidateDataLength(mode SeedMode, dataLen int) error {
	if dataLen < 0 || dataLen > MaxDataLength(mode) {
		return ErrDataTooLong
	}
	return nil
}
