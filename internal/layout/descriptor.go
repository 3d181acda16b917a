package layout

// Sub-frame layout descriptors.
//
// An RTC PDU carries a flat concatenation of sub-frames with no
// per-item framing, so the shape of each PDU has to be configured out
// of band. A layout entry is the ordered list of sub-frame shapes the
// codec should apply to one flow's PDUs.

import (
	"errors"
	"fmt"

	"github.com/tturner/pniodip/internal/profisafe"
)

// ErrInvalidDescriptor reports a descriptor whose parameters violate
// the format's limits. Raised at construction or registry-population
// time, never silently truncated.
var ErrInvalidDescriptor = errors.New("layout: invalid descriptor")

// Kind is the sub-frame type tag.
type Kind int

const (
	// KindRaw is an opaque fixed-length data block.
	KindRaw Kind = iota
	// KindIOxS is a chain of IO consumer/producer status bytes.
	KindIOxS
	// KindSafety is a PROFIsafe control or status sub-frame.
	KindSafety
)

// String returns the kind label used in layout files.
func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindIOxS:
		return "ioxs"
	case KindSafety:
		return "profisafe"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Descriptor describes one sub-frame's shape. A single parameterized
// value rather than a type per length: the length travels as data and
// is validated against the mode maximum when the descriptor is built.
type Descriptor struct {
	Kind Kind

	// Length is the data length in bytes. For KindRaw it is the whole
	// sub-frame; for KindSafety it is the F-data length D.
	Length int

	// Direction and Seed apply to KindSafety only.
	Direction profisafe.Direction
	Seed      profisafe.SeedMode
}

// Raw builds a fixed-length raw data descriptor.
func Raw(length int) Descriptor {
	return Descriptor{Kind: KindRaw, Length: length}
}

// IOxS builds an IOxS chain descriptor. The chain's length is
// self-delimiting on the wire (extension bits), so there is nothing
// to parameterize.
func IOxS() Descriptor {
	return Descriptor{Kind: KindIOxS}
}

// Safety builds a PROFIsafe sub-frame descriptor, rejecting data
// lengths above the seed mode's maximum.
func Safety(dir profisafe.Direction, seed profisafe.SeedMode, dataLen int) (Descriptor, error) {
	d := Descriptor{Kind: KindSafety, Length: dataLen, Direction: dir, Seed: seed}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Validate checks the descriptor's parameters against format limits.
func (d Descriptor) Validate() error {
	switch d.Kind {
	case KindRaw:
		if d.Length < 0 {
			return fmt.Errorf("%w: raw length %d", ErrInvalidDescriptor, d.Length)
		}
	case KindIOxS:
		// nothing to check
	case KindSafety:
		if err := profisafe.ValidateDataLength(d.Seed, d.Length); err != nil {
			return fmt.Errorf("%w: safety data length %d in %s mode (maximum %d)",
				ErrInvalidDescriptor, d.Length, d.Seed, profisafe.MaxDataLength(d.Seed))
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidDescriptor, int(d.Kind))
	}
	return nil
}

// Entry is the ordered list of descriptors for one flow.
type Entry []Descriptor

// Clone returns an independent copy. Descriptors are value structs,
// so copying the slice is enough; the codec consumes its copy as a
// queue without touching the registry's entry.
func (e Entry) Clone() Entry {
	if e == nil {
		return nil
	}
	out := make(Entry, len(e))
	copy(out, e)
	return out
}

// Validate checks every descriptor in the entry.
func (e Entry) Validate() error {
	for i, d := range e {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("descriptor %d: %w", i, err)
		}
	}
	return nil
}
