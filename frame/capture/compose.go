// This file is part of Quadra.
//
// Quadra is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Quadra is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Quadra.  If not, see <https://www.gnu.org/licenses/>.

package capture

import (
	"sync/atomic"

	"github.com/quadrastereo/quadra/frame/interop"
	"github.com/quadrastereo/quadra/frame/pool"
	"github.com/quadrastereo/quadra/logger"
)

// Eye says which of the display's draw buffers an image belongs in.
type Eye int

// List of valid Eye values.
const (
	EyeMono Eye = iota
	EyeLeft
	EyeRight
)

func (e Eye) String() string {
	switch e {
	case EyeMono:
		return "mono"
	case EyeLeft:
		return "left"
	case EyeRight:
		return "right"
	}
	return "unknown"
}

// Compositor is how Compose draws. Implemented by the concrete display. All
// functions are called on the display thread with the GL context current.
type Compositor interface {
	// Draw the image into the draw buffer for the eye
	Draw(img *interop.Image, eye Eye)

	// Indicator overlays the stereo indicator on the buffers just drawn
	Indicator(stereo bool)

	// Swap presents the composed frame
	Swap()
}

// drawOp records one draw of a display pass so that the pass can be replayed
// when the window needs repainting.
type drawOp struct {
	slot *pool.Slot
	eye  Eye
}

// Compose runs one display pass, drawing whatever frames are pending and
// presenting the result. Called on the display thread when the handshake
// announces a frame.
//
// The handshake's completion signal is always sent, whatever happens during
// the pass. A display pass that draws nothing still unblocks the producer.
func (cap *Capture) Compose(cmp Compositor) {
	defer cap.hs.SignalDone()

	if !cap.pool.Bound() {
		return
	}

	stereo := false
	drawn := false

	// at most one frame per slot in the ring. a mono pass draws one slot
	// and a stereo pass draws both
	for i := 0; i < pool.NumSlots; i++ {
		slot := cap.pool.Slot(cap.readIndex)
		label := slot.Label()

		if label == pool.LabelNone {
			break
		}

		if err := slot.Object.Lock(); err != nil {
			// the frame in this slot is dropped, not held back. the other
			// half of a stereo pair is still composited
			atomic.AddInt64(&cap.lockFails, 1)
			logger.Logf(logger.LevelError, "capture", "lock: %v", err)
			slot.SetLabel(pool.LabelNone)
			cap.readIndex = (cap.readIndex + 1) % pool.NumSlots
			if label != pool.LabelLeft {
				break
			}
			continue
		}

		var eye Eye
		switch label {
		case pool.LabelMono:
			eye = EyeMono
		case pool.LabelLeft:
			eye = EyeLeft
		case pool.LabelRight:
			eye = EyeRight
			stereo = true
		}
		cmp.Draw(slot.Image, eye)

		if err := slot.Object.Unlock(); err != nil {
			logger.Logf(logger.LevelError, "capture", "unlock: %v", err)
		}

		if !drawn {
			drawn = true
			cap.lastPass = cap.lastPass[:0]
		}
		cap.lastPass = append(cap.lastPass, drawOp{slot: slot, eye: eye})

		// the frame has been consumed
		slot.SetLabel(pool.LabelNone)
		cap.readIndex = (cap.readIndex + 1) % pool.NumSlots
		atomic.AddInt64(&cap.framesOut, 1)

		// only a left eye has a partner frame waiting in the next slot
		if label != pool.LabelLeft {
			break
		}
	}

	if !drawn {
		return
	}

	if cap.set.StereoIndicator.Get().(bool) {
		cmp.Indicator(stereo)
	}

	cmp.Swap()
}

// Redraw replays the most recent display pass. Called on the display thread
// when the window needs repainting but no new frame has been announced. The
// producer is not held up by a repaint so the completion signal is sent here
// too.
func (cap *Capture) Redraw(cmp Compositor) {
	defer cap.hs.SignalDone()

	if !cap.pool.Bound() || len(cap.lastPass) == 0 {
		return
	}

	stereo := false

	for _, op := range cap.lastPass {
		if err := op.slot.Object.Lock(); err != nil {
			atomic.AddInt64(&cap.lockFails, 1)
			logger.Logf(logger.LevelError, "capture", "lock: %v", err)
			continue
		}
		cmp.Draw(op.slot.Image, op.eye)
		if err := op.slot.Object.Unlock(); err != nil {
			logger.Logf(logger.LevelError, "capture", "unlock: %v", err)
		}
		if op.eye == EyeRight {
			stereo = true
		}
	}

	if cap.set.StereoIndicator.Get().(bool) {
		cmp.Indicator(stereo)
	}

	cmp.Swap()
}
