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

// Package pool holds the ring of shared render targets that frames travel
// through on their way from the producer to the display. The ring is
// deliberately small. Two slots are enough for the producer to draw into one
// while the display reads the other, and a stereo pair occupies the whole
// ring at once.
//
// A slot's life has two phases. Create builds the producer side on the
// producer thread and Bind builds the display side on the display thread.
// Destruction runs in the opposite order.
package pool

import (
	"sync/atomic"

	"github.com/quadrastereo/quadra/curated"
	"github.com/quadrastereo/quadra/frame/device"
	"github.com/quadrastereo/quadra/frame/interop"
	"github.com/quadrastereo/quadra/logger"
)

// Error patterns for the pool package.
const (
	CreateError = "pool: create: %v"
	BindError   = "pool: bind: %v"
)

// NumSlots is the size of the ring. The capture protocol indexes slots modulo
// this value.
const NumSlots = 2

// Label identifies what a slot's contents are for.
type Label int

// List of valid Label values. A slot starts as LabelNone and carries
// LabelMono until a stereo signal is seen, after which slots alternate
// between LabelLeft and LabelRight.
const (
	LabelNone Label = iota
	LabelMono
	LabelLeft
	LabelRight
)

func (l Label) String() string {
	switch l {
	case LabelNone:
		return "none"
	case LabelMono:
		return "mono"
	case LabelLeft:
		return "left"
	case LabelRight:
		return "right"
	}
	return "unknown"
}

// Slot is one entry in the ring.
type Slot struct {
	// producer side
	Surface device.Surface

	// display side. nil until Bind has succeeded
	Image  *interop.Image
	Object interop.Object

	// the label is written by the producer on tagging and read by the
	// display thread when compositing
	label int32
}

// Label returns the slot's current label.
func (s *Slot) Label() Label {
	return Label(atomic.LoadInt32(&s.label))
}

// SetLabel tags the slot. Called by the producer when a frame has finished
// drawing into the slot.
func (s *Slot) SetLabel(l Label) {
	atomic.StoreInt32(&s.label, int32(l))
}

// Pool is the ring of shared render targets.
type Pool struct {
	slots   [NumSlots]Slot
	created bool
	bound   bool
}

// NewPool is the preferred method of initialisation for the Pool type.
func NewPool() *Pool {
	return &Pool{}
}

// Slot returns the ring entry for the index, modulo the ring size.
func (p *Pool) Slot(idx int) *Slot {
	return &p.slots[idx%NumSlots]
}

// Created returns true once the producer side of every slot exists.
func (p *Pool) Created() bool {
	return p.created
}

// Bound returns true once the display side of every slot exists.
func (p *Pool) Bound() bool {
	return p.bound
}

// Create builds the producer side of every slot. Called on the producer
// thread. If any surface cannot be created the ones that could are released
// and the pool is left empty. A partial ring is useless to the capture
// protocol.
func (p *Pool) Create(dev device.Device, desc device.Description) error {
	if p.created {
		return curated.Errorf(CreateError, "already created")
	}

	for i := range p.slots {
		s, err := dev.CreateRenderTarget(desc)
		if err != nil {
			for j := 0; j < i; j++ {
				p.slots[j].Surface.Release()
				p.slots[j].Surface = nil
			}
			return curated.Errorf(CreateError, err)
		}
		p.slots[i].Surface = s
		p.slots[i].SetLabel(LabelNone)
	}

	logger.Logf(logger.LevelInfo, "pool", "created %d render targets (%v)", NumSlots, desc)
	p.created = true

	return nil
}

// Bind builds the display side of every slot. Called on the display thread
// with the GL context current, after Create has succeeded. Failure unwinds
// whatever was bound.
func (p *Pool) Bind(ip interop.Interop, access interop.Access) error {
	if !p.created {
		return curated.Errorf(BindError, "no surfaces to bind")
	}
	if p.bound {
		return curated.Errorf(BindError, "already bound")
	}

	for i := range p.slots {
		img, err := ip.NewImage(p.slots[i].Surface.Description())
		if err != nil {
			p.unbind(ip, i)
			return curated.Errorf(BindError, err)
		}

		obj, err := ip.Register(p.slots[i].Surface, img, access)
		if err != nil {
			ip.ReleaseImage(img)
			p.unbind(ip, i)
			return curated.Errorf(BindError, err)
		}

		p.slots[i].Image = img
		p.slots[i].Object = obj
	}

	p.bound = true

	return nil
}

// unbind the display side of slots [0, n).
func (p *Pool) unbind(ip interop.Interop, n int) {
	for i := 0; i < n; i++ {
		p.slots[i].Object.Unregister()
		p.slots[i].Object = nil
		ip.ReleaseImage(p.slots[i].Image)
		p.slots[i].Image = nil
	}
}

// Destroy tears down the pool, display side first. Safe to call however far
// construction got, and safe to call twice.
func (p *Pool) Destroy(ip interop.Interop) {
	if p.bound {
		p.unbind(ip, NumSlots)
		p.bound = false
	}

	if p.created {
		for i := range p.slots {
			p.slots[i].Surface.Release()
			p.slots[i].Surface = nil
			p.slots[i].SetLabel(LabelNone)
		}
		p.created = false
	}
}
