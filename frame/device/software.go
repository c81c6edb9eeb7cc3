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

package device

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/quadrastereo/quadra/curated"
	"github.com/quadrastereo/quadra/userinput"
)

// Error patterns for the Software device.
const (
	SoftwareError = "software device: %v"
)

// Software is a Device that renders to CPU memory. The implicit backbuffer
// surface created on initialisation plays the part of the application's main
// display target.
type Software struct {
	reg  *Registry
	mode Description

	backBuffer *SoftwareSurface
	target     *SoftwareSurface
	viewport   Viewport

	input chan userinput.Event
	quit  atomic.Value // bool
}

// NewSoftware is the preferred method of initialisation for the Software
// type.
func NewSoftware(mode Description) *Software {
	dev := &Software{
		reg:   NewRegistry(),
		mode:  mode,
		input: make(chan userinput.Event, 64),
	}
	dev.quit.Store(false)

	// the backbuffer is just another surface except that it is the current
	// render target on startup
	dev.backBuffer = newSoftwareSurface(dev.reg, mode)
	dev.target = dev.backBuffer
	dev.viewport = Viewport{Width: mode.Width, Height: mode.Height}

	return dev
}

// Registry returns the device's surface registry. Used by sharing
// implementations to check that a surface is still live.
func (dev *Software) Registry() *Registry {
	return dev.reg
}

// BackBuffer returns the device's implicit display surface.
func (dev *Software) BackBuffer() *SoftwareSurface {
	return dev.backBuffer
}

// RenderTarget implements the Device interface.
func (dev *Software) RenderTarget() (Surface, error) {
	if dev.target == nil {
		return nil, curated.Errorf(SoftwareError, "no render target")
	}
	return dev.target, nil
}

// SetRenderTarget implements the Device interface.
func (dev *Software) SetRenderTarget(s Surface) error {
	sw, ok := s.(*SoftwareSurface)
	if !ok {
		return curated.Errorf(SoftwareError, "surface was not created by this device")
	}
	if !dev.reg.Held(sw.ID()) {
		return curated.Errorf(SoftwareError, "surface has been released")
	}

	dev.target = sw

	// mirror the host API: a new render target resets the viewport to the
	// full size of the target
	desc := sw.Description()
	dev.viewport = Viewport{Width: desc.Width, Height: desc.Height}

	return nil
}

// Viewport implements the Device interface.
func (dev *Software) Viewport() (Viewport, error) {
	return dev.viewport, nil
}

// SetViewport implements the Device interface.
func (dev *Software) SetViewport(vp Viewport) error {
	dev.viewport = vp
	return nil
}

// CreateRenderTarget implements the Device interface.
func (dev *Software) CreateRenderTarget(desc Description) (Surface, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, curated.Errorf(SoftwareError, "invalid surface dimensions")
	}
	return newSoftwareSurface(dev.reg, desc), nil
}

// DisplayMode implements the Device interface.
func (dev *Software) DisplayMode() (Description, error) {
	return dev.mode, nil
}

// ForwardInput implements the userinput.Receiver interface. Input events
// arrive on the display thread.
func (dev *Software) ForwardInput(ev userinput.Event) {
	if _, ok := ev.(userinput.EventQuit); ok {
		dev.quit.Store(true)
		return
	}

	// drop events rather than stall the display thread
	select {
	case dev.input <- ev:
	default:
	}
}

// Input returns the channel forwarded events are delivered on.
func (dev *Software) Input() <-chan userinput.Event {
	return dev.input
}

// QuitRequested returns true once a quit event has been forwarded to the
// device.
func (dev *Software) QuitRequested() bool {
	return dev.quit.Load().(bool)
}

// SoftwareSurface is the Surface implementation of the Software device.
type SoftwareSurface struct {
	reg  *Registry
	id   SurfaceID
	desc Description

	// pixel data is written by the producer thread and read by the display
	// thread when the sharing object for this surface is locked. the mutex
	// stands in for the ownership handover a real interop mechanism would
	// provide
	crit    sync.Mutex
	pixels  *image.RGBA
	version uint64
}

func newSoftwareSurface(reg *Registry, desc Description) *SoftwareSurface {
	return &SoftwareSurface{
		reg:    reg,
		id:     reg.Issue(),
		desc:   desc,
		pixels: image.NewRGBA(image.Rect(0, 0, desc.Width, desc.Height)),
	}
}

// ID implements the Surface interface.
func (s *SoftwareSurface) ID() SurfaceID {
	return s.id
}

// Description implements the Surface interface.
func (s *SoftwareSurface) Description() Description {
	return s.desc
}

// Release implements the Surface interface.
func (s *SoftwareSurface) Release() {
	s.reg.Retire(s.id)
}

// Modify the surface's pixels on the producer thread. The surface version is
// advanced so that sharing objects know to refresh the consumer-side image on
// the next lock.
func (s *SoftwareSurface) Modify(f func(img *image.RGBA)) {
	s.crit.Lock()
	defer s.crit.Unlock()

	f(s.pixels)
	s.version++
}

// Read the surface's pixels. Used by sharing objects on the display thread.
func (s *SoftwareSurface) Read(f func(img *image.RGBA)) uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()

	f(s.pixels)
	return s.version
}

// Version returns the surface's current version. The version advances on
// every call to Modify()
func (s *SoftwareSurface) Version() uint64 {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.version
}
