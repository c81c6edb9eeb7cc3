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

package device_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/quadrastereo/quadra/frame/device"
	"github.com/quadrastereo/quadra/test"
	"github.com/quadrastereo/quadra/userinput"
)

func TestSoftwareRenderTarget(t *testing.T) {
	dev := device.NewSoftware(device.Description{Width: 32, Height: 16, Format: device.FormatRGBA8})

	// backbuffer is the render target on startup
	rt, err := dev.RenderTarget()
	test.ExpectedSuccess(t, err)
	test.Equate(t, rt.ID(), dev.BackBuffer().ID())

	// viewport defaults to the full backbuffer
	vp, err := dev.Viewport()
	test.ExpectedSuccess(t, err)
	test.Equate(t, vp, device.Viewport{Width: 32, Height: 16})

	// a new render target resets the viewport to the full size of the target
	test.ExpectedSuccess(t, dev.SetViewport(device.Viewport{X: 4, Y: 4, Width: 8, Height: 8}))

	s, err := dev.CreateRenderTarget(device.Description{Width: 64, Height: 48, Format: device.FormatRGBA8})
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, dev.SetRenderTarget(s))

	vp, err = dev.Viewport()
	test.ExpectedSuccess(t, err)
	test.Equate(t, vp, device.Viewport{Width: 64, Height: 48})

	rt, err = dev.RenderTarget()
	test.ExpectedSuccess(t, err)
	test.Equate(t, rt.ID(), s.ID())
}

func TestSoftwareReleasedSurface(t *testing.T) {
	dev := device.NewSoftware(device.Description{Width: 32, Height: 16, Format: device.FormatRGBA8})

	s, err := dev.CreateRenderTarget(device.Description{Width: 32, Height: 16, Format: device.FormatRGBA8})
	test.ExpectedSuccess(t, err)

	s.Release()
	test.ExpectedFailure(t, dev.SetRenderTarget(s))
}

func TestSoftwareSurfaceVersion(t *testing.T) {
	dev := device.NewSoftware(device.Description{Width: 8, Height: 8, Format: device.FormatRGBA8})

	s := dev.BackBuffer()
	test.Equate(t, s.Version(), uint64(0))

	s.Modify(func(img *image.RGBA) {
		img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	})
	test.Equate(t, s.Version(), uint64(1))

	// reading does not advance the version
	v := s.Read(func(img *image.RGBA) {
		c := img.RGBAAt(0, 0)
		test.Equate(t, c.R, uint8(255))
	})
	test.Equate(t, v, uint64(1))
	test.Equate(t, s.Version(), uint64(1))
}

func TestSoftwareInput(t *testing.T) {
	dev := device.NewSoftware(device.Description{Width: 8, Height: 8, Format: device.FormatRGBA8})

	test.Equate(t, dev.QuitRequested(), false)

	dev.ForwardInput(userinput.EventKeyboard{Key: "F1", Down: true})
	select {
	case ev := <-dev.Input():
		k, ok := ev.(userinput.EventKeyboard)
		test.Demand(t, ok, true)
		test.Equate(t, k.Key, "F1")
	default:
		t.Fatalf("forwarded event not available on input channel")
	}

	dev.ForwardInput(userinput.EventQuit{})
	test.Equate(t, dev.QuitRequested(), true)
}
