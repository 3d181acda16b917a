package layout

import (
	"strings"
	"testing"

	"github.com/tturner/pniodip/internal/profisafe"
)

const sampleLayout = `
flows:
  - src: "00:0c:29:aa:bb:cc"
    dst: "00:0c:29:dd:ee:ff"
    frame_id: "0x8000"
    subframes:
      - type: raw
        length: 16
      - type: ioxs
      - type: profisafe
        direction: status
        seed: true
        data_length: 13
`

func TestLoad(t *testing.T) {
	reg, err := Load([]byte(sampleLayout))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reg.Len())
	}
	entry, ok := reg.Lookup(testKey(t, 0x8000))
	if !ok {
		t.Fatal("expected entry for flow")
	}
	if len(entry) != 3 {
		t.Fatalf("len = %d, want 3", len(entry))
	}
	if entry[0].Kind != KindRaw || entry[0].Length != 16 {
		t.Errorf("entry[0] = %+v", entry[0])
	}
	if entry[1].Kind != KindIOxS {
		t.Errorf("entry[1] = %+v", entry[1])
	}
	safety := entry[2]
	if safety.Kind != KindSafety {
		t.Fatalf("entry[2].Kind = %v, want KindSafety", safety.Kind)
	}
	if safety.Direction != profisafe.Status || safety.Seed != profisafe.Seed || safety.Length != 13 {
		t.Errorf("entry[2] = %+v", safety)
	}
}

func TestLoadSymbolicFrameID(t *testing.T) {
	doc := strings.Replace(sampleLayout, `"0x8000"`, `"RT_CLASS_1"`, 1)
	reg, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := reg.Lookup(testKey(t, 0x8000)); !ok {
		t.Error("RT_CLASS_1 should resolve to 0x8000")
	}
}

func TestLoadRejectsBadAddr(t *testing.T) {
	doc := strings.Replace(sampleLayout, "00:0c:29:aa:bb:cc", "not-a-mac", 1)
	if _, err := Load([]byte(doc)); err == nil {
		t.Fatal("expected error for bad MAC address")
	}
}

func TestLoadRejectsBadFrameID(t *testing.T) {
	doc := strings.Replace(sampleLayout, `"0x8000"`, `"bogus"`, 1)
	if _, err := Load([]byte(doc)); err == nil {
		t.Fatal("expected error for unrecognized frame ID")
	}
}

func TestLoadRejectsOversizedSafety(t *testing.T) {
	doc := strings.Replace(sampleLayout, "data_length: 13", "data_length: 14", 1)
	if _, err := Load([]byte(doc)); err == nil {
		t.Fatal("expected error for oversized safety data length")
	}
}

func TestLoadRejectsUnknownType(t *testing.T) {
	doc := strings.Replace(sampleLayout, "type: ioxs", "type: mystery", 1)
	if _, err := Load([]byte(doc)); err == nil {
		t.Fatal("expected error for unknown subframe type")
	}
}

func TestLoadRejectsEmptySubframes(t *testing.T) {
	doc := `
flows:
  - src: "00:0c:29:aa:bb:cc"
    dst: "00:0c:29:dd:ee:ff"
    frame_id: "0x8000"
    subframes: []
`
	if _, err := Load([]byte(doc)); err == nil {
		t.Fatal("expected error for empty subframe list")
	}
}
