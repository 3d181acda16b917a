package layout

// YAML layout file loading.
//
// Example:
//
//	flows:
//	  - src: "00:0c:29:aa:bb:cc"
//	    dst: "00:0c:29:dd:ee:ff"
//	    frame_id: "0x8000"
//	    subframes:
//	      - type: raw
//	        length: 16
//	      - type: ioxs
//	      - type: profisafe
//	        direction: control
//	        seed: true
//	        data_length: 12

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tturner/pniodip/internal/pnio"
	"github.com/tturner/pniodip/internal/profisafe"
)

// fileYAML is the YAML representation of a layout file.
type fileYAML struct {
	Flows []flowYAML `yaml:"flows"`
}

type flowYAML struct {
	Src       string         `yaml:"src"`
	Dst       string         `yaml:"dst"`
	FrameID   string         `yaml:"frame_id"`
	SubFrames []subFrameYAML `yaml:"subframes"`
}

type subFrameYAML struct {
	Type       string `yaml:"type"`
	Length     int    `yaml:"length,omitempty"`
	Direction  string `yaml:"direction,omitempty"`
	Seed       bool   `yaml:"seed,omitempty"`
	DataLength int    `yaml:"data_length,omitempty"`
}

// Load parses YAML layout data into a populated registry.
func Load(data []byte) (*Registry, error) {
	var file fileYAML
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse layout file: %w", err)
	}

	reg := NewRegistry()
	for i, flow := range file.Flows {
		key, err := parseFlowKey(flow)
		if err != nil {
			return nil, fmt.Errorf("flow %d: %w", i, err)
		}
		entry, err := parseEntry(flow.SubFrames)
		if err != nil {
			return nil, fmt.Errorf("flow %d (%s -> %s, %s): %w", i, flow.Src, flow.Dst, flow.FrameID, err)
		}
		if err := reg.Put(key, entry); err != nil {
			return nil, fmt.Errorf("flow %d (%s -> %s, %s): %w", i, flow.Src, flow.Dst, flow.FrameID, err)
		}
	}
	return reg, nil
}

// LoadFile reads and parses a YAML layout file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout file: %w", err)
	}
	return Load(data)
}

func parseFlowKey(flow flowYAML) (Key, error) {
	src, err := pnio.ParseAddr(flow.Src)
	if err != nil {
		return Key{}, fmt.Errorf("src: %w", err)
	}
	dst, err := pnio.ParseAddr(flow.Dst)
	if err != nil {
		return Key{}, fmt.Errorf("dst: %w", err)
	}
	id, ok := pnio.Resolve(flow.FrameID)
	if !ok {
		return Key{}, fmt.Errorf("frame_id: unrecognized value %q", flow.FrameID)
	}
	return Key{Src: src, Dst: dst, FrameID: id}, nil
}

func parseEntry(subFrames []subFrameYAML) (Entry, error) {
	if len(subFrames) == 0 {
		return nil, fmt.Errorf("no subframes")
	}
	entry := make(Entry, 0, len(subFrames))
	for i, sf := range subFrames {
		d, err := parseDescriptor(sf)
		if err != nil {
			return nil, fmt.Errorf("subframe %d: %w", i, err)
		}
		entry = append(entry, d)
	}
	return entry, nil
}

func parseDescriptor(sf subFrameYAML) (Descriptor, error) {
	switch sf.Type {
	case "raw":
		d := Raw(sf.Length)
		return d, d.Validate()
	case "ioxs":
		return IOxS(), nil
	case "profisafe":
		dir := profisafe.Control
		switch sf.Direction {
		case "control", "":
			dir = profisafe.Control
		case "status":
			dir = profisafe.Status
		default:
			return Descriptor{}, fmt.Errorf("direction: unrecognized value %q", sf.Direction)
		}
		seed := profisafe.NoSeed
		if sf.Seed {
			seed = profisafe.Seed
		}
		return Safety(dir, seed, sf.DataLength)
	default:
		return Descriptor{}, fmt.Errorf("type: unrecognized value %q", sf.Type)
	}
}
