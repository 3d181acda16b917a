package pcap

// PROFINET frame extraction from capture files.
//
// PROFINET RT frames arrive directly on Ethernet with EtherType 0x8892
// (often behind an 802.1Q priority tag) or UDP-encapsulated on port
// 0x8892 for RT_CLASS_UDP. Extraction walks the envelope with
// gopacket, builds the flow context from it, and hands the payload to
// the dispatcher. The codec itself never sees the envelope.

import (
	"fmt"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"

	"github.com/tturner/pniodip/internal/layout"
	"github.com/tturner/pniodip/internal/pnio"
	"github.com/tturner/pniodip/internal/rtc"
)

// Packet is one extracted PROFINET frame.
type Packet struct {
	Timestamp time.Time
	Flow      rtc.Flow
	Class     pnio.Classification
	Payload   []byte // payload after the 2-byte PNIO header

	// Frame is set when the dispatcher decoded the payload as an RTC
	// PDU; DecodeErr holds the failure for RTC-classed frames that
	// did not parse. Non-RTC frames leave both empty.
	Frame     *rtc.Frame
	Rest      []byte
	DecodeErr error
}

// Extract reads a capture file and returns every PROFINET frame in
// it, decoding RTC PDUs against the given layout registry.
func Extract(path string, reg *layout.Registry) ([]Packet, error) {
	handle, err := pcap.OpenOffline(path)
	if err != nil {
		return nil, fmt.Errorf("open pcap file: %w", err)
	}
	defer handle.Close()

	var packets []Packet
	source := gopacket.NewPacketSource(handle, handle.LinkType())
	for packet := range source.Packets() {
		p, ok := extractFromPacket(packet, reg)
		if !ok {
			continue
		}
		packets = append(packets, p)
	}
	return packets, nil
}

// extractFromPacket pulls one PROFINET frame out of a captured packet,
// if there is one.
func extractFromPacket(packet gopacket.Packet, reg *layout.Registry) (Packet, bool) {
	ethLayer := packet.Layer(layers.LayerTypeEthernet)
	if ethLayer == nil {
		return Packet{}, false
	}
	eth, _ := ethLayer.(*layers.Ethernet)

	src, err := pnio.AddrFromHardware(eth.SrcMAC)
	if err != nil {
		return Packet{}, false
	}
	dst, err := pnio.AddrFromHardware(eth.DstMAC)
	if err != nil {
		return Packet{}, false
	}

	transport, raw, ok := pnioPayload(packet, eth)
	if !ok {
		return Packet{}, false
	}

	hdr, payload, err := pnio.DecodeHeader(raw)
	if err != nil {
		return Packet{}, false
	}

	p := Packet{
		Flow: rtc.Flow{
			Src:       src,
			Dst:       dst,
			FrameID:   hdr.FrameID,
			Transport: transport,
		},
		Class:   pnio.Classify(hdr.FrameID),
		Payload: payload,
	}
	if meta := packet.Metadata(); meta != nil {
		p.Timestamp = meta.Timestamp
	}

	frame, rest, handled, err := rtc.Dispatch(p.Flow, payload, reg)
	if handled {
		p.Frame = frame
		p.Rest = rest
		p.DecodeErr = err
	}
	return p, true
}

// pnioPayload locates the PNIO payload in a packet: EtherType 0x8892
// directly, behind one 802.1Q tag, or UDP port 0x8892.
func pnioPayload(packet gopacket.Packet, eth *layers.Ethernet) (rtc.Transport, []byte, bool) {
	if eth.EthernetType == pnio.EtherTypePNIO {
		return rtc.TransportEthernet, eth.Payload, true
	}

	if eth.EthernetType == layers.EthernetTypeDot1Q {
		if dot1qLayer := packet.Layer(layers.LayerTypeDot1Q); dot1qLayer != nil {
			dot1q, _ := dot1qLayer.(*layers.Dot1Q)
			if dot1q.Type == pnio.EtherTypePNIO {
				return rtc.TransportEthernet, dot1q.Payload, true
			}
		}
	}

	if udpLayer := packet.Layer(layers.LayerTypeUDP); udpLayer != nil {
		udp, _ := udpLayer.(*layers.UDP)
		if uint16(udp.SrcPort) == pnio.UDPPortPNIO || uint16(udp.DstPort) == pnio.UDPPortPNIO {
			if len(udp.Payload) > 0 {
				return rtc.TransportUDP, udp.Payload, true
			}
		}
	}

	return 0, nil, false
}
