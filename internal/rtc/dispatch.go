package rtc

// Frame dispatch: route RTC-classed frame IDs into the PDU codec.

import (
	"github.com/tturner/pniodip/internal/layout"
	"github.com/tturner/pniodip/internal/pnio"
)

// Dispatch inspects the flow's frame ID and, for cyclic real-time
// classes, decodes the payload as an RTC PDU. For every other class
// it reports handled=false and returns the payload untouched for the
// caller's generic resolver. Pure routing, no state.
func Dispatch(flow Flow, payload []byte, reg *layout.Registry) (frame *Frame, rest []byte, handled bool, err error) {
	if !pnio.IsRTC(flow.FrameID) {
		return nil, payload, false, nil
	}
	f, rest, err := Decode(payload, flow, reg)
	if err != nil {
		return nil, payload, true, err
	}
	return &f, rest, true, nil
}
