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

package capture_test

import (
	"testing"

	"github.com/quadrastereo/quadra/curated"
	"github.com/quadrastereo/quadra/frame/capture"
	"github.com/quadrastereo/quadra/frame/device"
	"github.com/quadrastereo/quadra/frame/interop"
	"github.com/quadrastereo/quadra/settings"
	"github.com/quadrastereo/quadra/test"
)

// mockInterop hands out distinguishable images and can be told to refuse
// locks.
type mockInterop struct {
	nextTexture uint32
	failLocks   int
}

func (m *mockInterop) Open() error  { return nil }
func (m *mockInterop) Close() error { return nil }

func (m *mockInterop) NewImage(desc device.Description) (*interop.Image, error) {
	m.nextTexture++
	return &interop.Image{Texture: m.nextTexture, Framebuffer: 1, Description: desc}, nil
}

func (m *mockInterop) ReleaseImage(_ *interop.Image) {}

func (m *mockInterop) Register(_ device.Surface, img *interop.Image, _ interop.Access) (interop.Object, error) {
	return &mockObject{m: m}, nil
}

type mockObject struct {
	m *mockInterop
}

func (o *mockObject) Lock() error {
	if o.m.failLocks > 0 {
		o.m.failLocks--
		return curated.Errorf(interop.LockFailure, "mock")
	}
	return nil
}

func (o *mockObject) Unlock() error { return nil }
func (o *mockObject) Unregister()   {}

// mockDisplay binds the pool on launch. there is no real display thread in
// these tests, Compose is called directly.
type mockDisplay struct {
	ip       *mockInterop
	samples  int
	launched bool
}

func (d *mockDisplay) Samples() int {
	return d.samples
}

func (d *mockDisplay) Launch(cap *capture.Capture) error {
	d.launched = true
	return cap.Pool().Bind(d.ip, interop.AccessReadOnly)
}

// mockCompositor records what a display pass drew.
type mockCompositor struct {
	eyes  []capture.Eye
	texs  []uint32
	swaps int
}

func (c *mockCompositor) Draw(img *interop.Image, eye capture.Eye) {
	c.eyes = append(c.eyes, eye)
	c.texs = append(c.texs, img.Texture)
}

func (c *mockCompositor) Indicator(_ bool) {}

func (c *mockCompositor) Swap() {
	c.swaps++
}

func newCapture(t *testing.T) (*capture.Capture, *device.Software, *mockDisplay) {
	t.Helper()

	set, err := settings.NewSettings()
	test.DemandSuccess(t, err)

	dev := device.NewSoftware(device.Description{Width: 64, Height: 48, Format: device.FormatRGBA8})
	disp := &mockDisplay{ip: &mockInterop{}}
	return capture.NewCapture(dev, set, disp), dev, disp
}

// prime runs the producer's first frame, which only records the presented
// target, and the start of the second, which creates resources.
func prime(t *testing.T, cap *capture.Capture) {
	t.Helper()

	cap.OnClear()
	test.Demand(t, cap.Initialised(), false)
	cap.OnPrePresent()
	cap.OnClear()
	test.Demand(t, cap.Initialised(), true)
}

func TestLazyCreation(t *testing.T) {
	cap, dev, disp := newCapture(t)

	// clearing a target that has never been presented does nothing
	cap.OnClear()
	test.Equate(t, cap.Initialised(), false)
	test.Equate(t, disp.launched, false)

	// presentation marks the target. the next clear creates resources and
	// redirects drawing into the pool
	cap.OnPrePresent()
	cap.OnClear()
	test.Equate(t, cap.Initialised(), true)
	test.Equate(t, disp.launched, true)
	test.Equate(t, cap.Pool().Bound(), true)

	rt, err := dev.RenderTarget()
	test.ExpectedSuccess(t, err)
	test.Equate(t, rt.ID() == dev.BackBuffer().ID(), false)
}

func TestViewportSurvivesRedirection(t *testing.T) {
	cap, dev, _ := newCapture(t)

	vp := device.Viewport{X: 8, Y: 8, Width: 48, Height: 32}
	test.ExpectedSuccess(t, dev.SetViewport(vp))

	prime(t, cap)

	// redirection into the pool resets the viewport but the protocol puts
	// the producer's viewport back
	got, err := dev.Viewport()
	test.ExpectedSuccess(t, err)
	test.Equate(t, got, vp)
}

func TestMonoFrames(t *testing.T) {
	cap, _, _ := newCapture(t)
	cmp := &mockCompositor{}

	prime(t, cap)

	// three full frames. every frame lands in the other ring slot
	for i := 0; i < 3; i++ {
		cap.OnPrePresent()
		<-cap.Handshake().Frame()
		cap.Compose(cmp)
		cap.OnPostPresent()
		cap.OnClear()
	}

	test.Equate(t, len(cmp.eyes), 3)
	for _, e := range cmp.eyes {
		test.Equate(t, e, capture.EyeMono)
	}
	test.Equate(t, cmp.swaps, 3)

	// consecutive frames alternate between the two slot images
	test.Equate(t, cmp.texs[0] == cmp.texs[1], false)
	test.Equate(t, cmp.texs[0], cmp.texs[2])

	in, out := cap.Frames()
	test.Equate(t, in, int64(3))
	test.Equate(t, out, int64(3))
}

func TestStereoSignal(t *testing.T) {
	cap, _, _ := newCapture(t)
	cmp := &mockCompositor{}

	prime(t, cap)
	test.Equate(t, cap.Stereo(), false)

	// an ordinary viewport passes through and means nothing
	test.Equate(t, cap.OnSetViewport(device.Viewport{X: 0, Y: 0, Width: 64, Height: 48}), true)
	test.Equate(t, cap.Stereo(), false)

	// a near miss is not the signal
	test.Equate(t, cap.OnSetViewport(device.Viewport{X: 1, Y: 0, Width: 2, Height: 4}), true)
	test.Equate(t, cap.Stereo(), false)

	// the signal itself is consumed. the Y value is immaterial
	test.Equate(t, cap.OnSetViewport(device.Viewport{X: 1, Y: 99, Width: 2, Height: 3}), false)
	test.Equate(t, cap.Stereo(), true)

	cap.OnPrePresent()
	cap.Compose(cmp)

	// one pass drew both eyes with a single swap
	test.Equate(t, len(cmp.eyes), 2)
	test.Equate(t, cmp.eyes[0], capture.EyeLeft)
	test.Equate(t, cmp.eyes[1], capture.EyeRight)
	test.Equate(t, cmp.swaps, 1)

	in, out := cap.Frames()
	test.Equate(t, in, int64(2))
	test.Equate(t, out, int64(2))

	// stereo mode is one-way
	test.Equate(t, cap.OnSetViewport(device.Viewport{X: 1, Width: 2, Height: 3}), false)
	test.Equate(t, cap.Stereo(), true)
}

func TestComposeWithoutFrames(t *testing.T) {
	cap, _, _ := newCapture(t)
	cmp := &mockCompositor{}

	prime(t, cap)

	// nothing has been presented since capture began. the pass draws
	// nothing and presents nothing but the producer is still unblocked
	cap.Compose(cmp)
	test.Equate(t, len(cmp.eyes), 0)
	test.Equate(t, cmp.swaps, 0)

	select {
	case <-cap.Handshake().Frame():
		t.Fatalf("unexpected frame announcement")
	default:
	}
}

func TestLockFailure(t *testing.T) {
	cap, _, disp := newCapture(t)
	cmp := &mockCompositor{}

	prime(t, cap)

	cap.OnPrePresent()

	// the frame is dropped when the lock is refused. the slot is free again
	disp.ip.failLocks = 1
	cap.Compose(cmp)
	test.Equate(t, len(cmp.eyes), 0)
	cap.Compose(cmp)
	test.Equate(t, len(cmp.eyes), 0)

	// the next frame lands in the next slot and composes normally
	cap.OnClear()
	cap.OnPrePresent()
	cap.Compose(cmp)
	test.Equate(t, len(cmp.eyes), 1)
	test.Equate(t, cmp.eyes[0], capture.EyeMono)
}

func TestStereoLockFailure(t *testing.T) {
	cap, _, disp := newCapture(t)
	cmp := &mockCompositor{}

	prime(t, cap)
	cap.OnSetViewport(device.Viewport{X: 1, Width: 2, Height: 3})
	cap.OnPrePresent()

	// a refused lock on the left eye must not stop the right eye from being
	// composited in the same pass
	disp.ip.failLocks = 1
	cap.Compose(cmp)
	test.Equate(t, len(cmp.eyes), 1)
	test.Equate(t, cmp.eyes[0], capture.EyeRight)
	test.Equate(t, cmp.swaps, 1)
}

func TestRedraw(t *testing.T) {
	cap, _, _ := newCapture(t)
	cmp := &mockCompositor{}

	prime(t, cap)

	// a repaint before anything has been composed shows nothing
	cap.Redraw(cmp)
	test.Equate(t, cmp.swaps, 0)

	cap.OnPrePresent()
	cap.Compose(cmp)
	test.Equate(t, cmp.swaps, 1)

	// a repaint replays the last pass without consuming anything
	cap.Redraw(cmp)
	test.Equate(t, cmp.swaps, 2)
	test.Equate(t, len(cmp.eyes), 2)
	test.Equate(t, cmp.texs[0], cmp.texs[1])

	_, out := cap.Frames()
	test.Equate(t, out, int64(1))
}

func TestForcedSamples(t *testing.T) {
	set, err := settings.NewSettings()
	test.DemandSuccess(t, err)

	// when not matching the producer's multisampling, the pool is created
	// with whatever the display's framebuffer has
	test.ExpectedSuccess(t, set.MatchOriginalMSAA.Set(false))

	dev := device.NewSoftware(device.Description{Width: 64, Height: 48, Format: device.FormatRGBA8})
	disp := &mockDisplay{ip: &mockInterop{}, samples: 4}
	cap := capture.NewCapture(dev, set, disp)

	cap.OnClear()
	cap.OnPrePresent()
	cap.OnClear()
	test.Demand(t, cap.Initialised(), true)

	test.Equate(t, cap.Pool().Slot(0).Surface.Description().MSAA, 4)
	test.Equate(t, cap.Pool().Slot(1).Surface.Description().MSAA, 4)
}

func TestMatchedSamples(t *testing.T) {
	set, err := settings.NewSettings()
	test.DemandSuccess(t, err)
	test.Demand(t, set.MatchOriginalMSAA.Get().(bool), true)

	// when matching, the producer's sample count is carried into the pool.
	// the display reads it from there when requesting its pixel format
	dev := device.NewSoftware(device.Description{Width: 64, Height: 48, Format: device.FormatRGBA8, MSAA: 8})
	disp := &mockDisplay{ip: &mockInterop{}}
	cap := capture.NewCapture(dev, set, disp)

	cap.OnClear()
	cap.OnPrePresent()
	cap.OnClear()
	test.Demand(t, cap.Initialised(), true)

	test.Equate(t, cap.Pool().Slot(0).Surface.Description().MSAA, 8)
	test.Equate(t, cap.Pool().Slot(1).Surface.Description().MSAA, 8)
}

func TestShutdownBeforeCreation(t *testing.T) {
	cap, _, _ := newCapture(t)

	// nothing to report and nothing to crash on
	cap.Shutdown()
}
