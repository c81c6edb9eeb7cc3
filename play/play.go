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

// Package play runs the frame bridge against a built in producer. The
// producer renders a simple animation through the software device, driving
// the capture protocol exactly as a hooked application would, including the
// stereo signal. Useful for exercising the whole pipeline without a real
// producer on the other end.
package play

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/quadrastereo/quadra/curated"
	"github.com/quadrastereo/quadra/display"
	"github.com/quadrastereo/quadra/display/sdlgl"
	"github.com/quadrastereo/quadra/frame/capture"
	"github.com/quadrastereo/quadra/frame/device"
	"github.com/quadrastereo/quadra/frame/interop/glram"
	"github.com/quadrastereo/quadra/logger"
	"github.com/quadrastereo/quadra/settings"
	"github.com/quadrastereo/quadra/userinput"
)

// Error patterns for the play package.
const (
	PlayError = "play: %v"
)

// producer frame rate.
const frameRate = 60

// horizontal offset between the two eyes, in pixels.
const parallax = 12

// Play the built in producer until the display is closed or the duration
// expires. A stereoAfter of less than zero means the producer stays in mono.
// A duration of zero means run until quit.
func Play(set *settings.Settings, width int, height int, stereoAfter time.Duration, duration time.Duration) error {
	if width <= 0 || height <= 0 {
		return curated.Errorf(PlayError, "frame dimensions make no sense")
	}

	dev := device.NewSoftware(device.Description{
		Width:  width,
		Height: height,
		Format: device.FormatRGBA8,
	})

	var scr display.Display

	scr, err := sdlgl.NewDisplay(set, glram.NewInterop(dev, set), dev)
	if err != nil {
		return curated.Errorf(PlayError, err)
	}
	defer scr.Destroy()

	cap := capture.NewCapture(dev, set, scr)
	defer cap.Shutdown()

	tick := time.NewTicker(time.Second / frameRate)
	defer tick.Stop()

	start := time.Now()
	stereo := false
	frame := 0

	for !dev.QuitRequested() {
		if duration > 0 && time.Since(start) >= duration {
			break
		}

		quit := false
		drainInput(dev, &quit, &stereo)
		if quit {
			break
		}

		if !stereo && stereoAfter >= 0 && time.Since(start) >= stereoAfter {
			stereo = true
			logger.Log(logger.LevelInfo, "play", "producer switching to stereo")
		}

		cap.OnClear()

		// the stereo signal only means anything once frames are being
		// captured. until then the producer keeps rendering in mono
		if stereo && cap.Initialised() {
			drawFrame(dev, frame, -parallax)
			cap.OnSetViewport(device.Viewport{X: 1, Width: 2, Height: 3})
			drawFrame(dev, frame, parallax)
		} else {
			drawFrame(dev, frame, 0)
		}

		cap.OnPrePresent()
		cap.OnPostPresent()

		frame++
		<-tick.C
	}

	return nil
}

// drainInput empties the device's forwarded input queue.
func drainInput(dev *device.Software, quit *bool, stereo *bool) {
	for {
		select {
		case ev := <-dev.Input():
			switch ev := ev.(type) {
			case userinput.EventKeyboard:
				if !ev.Down {
					break
				}
				switch ev.Key {
				case "Escape":
					*quit = true
				case "S":
					*stereo = true
				}
			}
		default:
			return
		}
	}
}

// drawFrame renders one frame of the animation into the producer's current
// render target. A non zero offset shifts the foreground horizontally, which
// is all it takes to give the square some depth.
func drawFrame(dev *device.Software, frame int, offset int) {
	rt, err := dev.RenderTarget()
	if err != nil {
		logger.Logf(logger.LevelError, "play", "render target: %v", err)
		return
	}

	surf, ok := rt.(*device.SoftwareSurface)
	if !ok {
		return
	}

	surf.Modify(func(img *image.RGBA) {
		b := img.Bounds()

		// the background breathes slowly so that a stuck pipeline is
		// visible immediately
		shade := uint8(bounce(frame, 64))
		draw.Draw(img, b, image.NewUniform(color.RGBA{R: shade, G: shade, B: 64 + shade, A: 255}), image.Point{}, draw.Src)

		// bouncing foreground square
		const size = 64
		x := b.Min.X + bounce(frame*3, b.Dx()-size) + offset
		y := b.Min.Y + bounce(frame*2, b.Dy()-size)
		sq := image.Rect(x, y, x+size, y+size).Intersect(b)
		draw.Draw(img, sq, image.NewUniform(color.RGBA{R: 255, G: 200, B: 0, A: 255}), image.Point{}, draw.Src)
	})
}

// bounce maps an ever increasing value onto a triangle wave in the range
// [0, max].
func bounce(v int, max int) int {
	if max <= 0 {
		return 0
	}
	v %= max * 2
	if v > max {
		return 2*max - v
	}
	return v
}
