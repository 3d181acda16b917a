package pnio

// Link-layer addresses used as layout lookup keys.

import (
	"fmt"
	"net"
)

// Addr is a 6-byte link-layer (MAC) address. Unlike net.HardwareAddr
// it is comparable, so it can be used directly in map keys.
type Addr [6]byte

// ParseAddr parses a colon- or dash-separated MAC address string.
func ParseAddr(s string) (Addr, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return Addr{}, err
	}
	return AddrFromHardware(hw)
}

// AddrFromHardware converts a net.HardwareAddr. Only 6-byte (EUI-48)
// addresses are accepted.
func AddrFromHardware(hw net.HardwareAddr) (Addr, error) {
	if len(hw) != 6 {
		return Addr{}, fmt.Errorf("link-layer address %s: want 6 bytes, got %d", hw, len(hw))
	}
	var a Addr
	copy(a[:], hw)
	return a, nil
}

// String returns the colon-separated form.
func (a Addr) String() string {
	return net.HardwareAddr(a[:]).String()
}
