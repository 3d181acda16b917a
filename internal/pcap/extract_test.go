package pcap

import (
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/tturner/pniodip/internal/layout"
	"github.com/tturner/pniodip/internal/rtc"
)

var (
	testSrcMAC = []byte{0x00, 0x0C, 0x29, 0xAA, 0xBB, 0xCC}
	testDstMAC = []byte{0x00, 0x0C, 0x29, 0xDD, 0xEE, 0xFF}
)

// buildRTFrame assembles an Ethernet frame carrying a PNIO RTC PDU:
// frame ID, 16 data bytes, zero padding, trailer.
func buildRTFrame(t *testing.T, vlan bool) gopacket.Packet {
	t.Helper()
	payload := []byte{0x80, 0x00} // frame ID 0x8000
	payload = append(payload, make([]byte, 16)...)
	payload = append(payload, 0x00, 0x2A, 0x35, 0x00) // cycle 42, status, transfer

	eth := &layers.Ethernet{
		SrcMAC: testSrcMAC,
		DstMAC: testDstMAC,
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{}
	var err error
	if vlan {
		eth.EthernetType = layers.EthernetTypeDot1Q
		dot1q := &layers.Dot1Q{Priority: 6, VLANIdentifier: 0, Type: 0x8892}
		err = gopacket.SerializeLayers(buf, opts, eth, dot1q, gopacket.Payload(payload))
	} else {
		eth.EthernetType = 0x8892
		err = gopacket.SerializeLayers(buf, opts, eth, gopacket.Payload(payload))
	}
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	return gopacket.NewPacket(buf.Bytes(), layers.LayerTypeEthernet, gopacket.Default)
}

func TestExtractFromEthernetFrame(t *testing.T) {
	packet := buildRTFrame(t, false)
	p, ok := extractFromPacket(packet, layout.NewRegistry())
	if !ok {
		t.Fatal("extractFromPacket: not a PROFINET frame")
	}
	if p.Flow.FrameID != 0x8000 {
		t.Errorf("FrameID = 0x%04X, want 0x8000", uint16(p.Flow.FrameID))
	}
	if p.Flow.Transport != rtc.TransportEthernet {
		t.Errorf("Transport = %v, want ethernet", p.Flow.Transport)
	}
	if p.Flow.Src.String() != "00:0c:29:aa:bb:cc" {
		t.Errorf("Src = %s", p.Flow.Src)
	}
	if p.Frame == nil {
		t.Fatalf("Frame = nil, DecodeErr = %v", p.DecodeErr)
	}
	if p.Frame.CycleCounter != 42 {
		t.Errorf("CycleCounter = %d, want 42", p.Frame.CycleCounter)
	}
	if len(p.Frame.SubFrames) != 1 || p.Frame.SubFrames[0].Length() != 16 {
		t.Errorf("SubFrames = %+v", p.Frame.SubFrames)
	}
}

func TestExtractFromVLANTaggedFrame(t *testing.T) {
	packet := buildRTFrame(t, true)
	p, ok := extractFromPacket(packet, layout.NewRegistry())
	if !ok {
		t.Fatal("extractFromPacket: not a PROFINET frame")
	}
	if p.Flow.Transport != rtc.TransportEthernet {
		t.Errorf("Transport = %v, want ethernet", p.Flow.Transport)
	}
	if p.Frame == nil {
		t.Fatalf("Frame = nil, DecodeErr = %v", p.DecodeErr)
	}
}

func TestExtractIgnoresOtherEtherTypes(t *testing.T) {
	buf := gopacket.NewSerializeBuffer()
	eth := &layers.Ethernet{
		SrcMAC:       testSrcMAC,
		DstMAC:       testDstMAC,
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{Version: 4, IHL: 5, Protocol: layers.IPProtocolTCP, SrcIP: []byte{10, 0, 0, 1}, DstIP: []byte{10, 0, 0, 2}}
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{FixLengths: true}, eth, ip); err != nil {
		t.Fatal(err)
	}
	packet := gopacket.NewPacket(buf.Bytes(), layers.LayerTypeEthernet, gopacket.Default)
	if _, ok := extractFromPacket(packet, layout.NewRegistry()); ok {
		t.Fatal("extracted a frame from non-PROFINET traffic")
	}
}

func TestExtractUDPEncapsulated(t *testing.T) {
	payload := []byte{0xC0, 0x01} // RT_CLASS_UDP frame ID
	payload = append(payload, make([]byte, 8)...)
	payload = append(payload, 0x00, 0x01, 0x35, 0x00)

	eth := &layers.Ethernet{
		SrcMAC:       testSrcMAC,
		DstMAC:       testDstMAC,
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{Version: 4, IHL: 5, TTL: 64, Protocol: layers.IPProtocolUDP, SrcIP: []byte{10, 0, 0, 1}, DstIP: []byte{10, 0, 0, 2}}
	udp := &layers.UDP{SrcPort: 49152, DstPort: 0x8892}
	if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
		t.Fatal(err)
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(payload)); err != nil {
		t.Fatal(err)
	}
	packet := gopacket.NewPacket(buf.Bytes(), layers.LayerTypeEthernet, gopacket.Default)

	p, ok := extractFromPacket(packet, layout.NewRegistry())
	if !ok {
		t.Fatal("extractFromPacket: not a PROFINET frame")
	}
	if p.Flow.Transport != rtc.TransportUDP {
		t.Errorf("Transport = %v, want udp", p.Flow.Transport)
	}
	if p.Flow.FrameID != 0xC001 {
		t.Errorf("FrameID = 0x%04X, want 0xC001", uint16(p.Flow.FrameID))
	}
	if p.Frame == nil {
		t.Fatalf("Frame = nil, DecodeErr = %v", p.DecodeErr)
	}
}
