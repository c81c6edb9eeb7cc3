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

package sdlgl

import (
	"github.com/go-gl/gl/v2.1/gl"

	"github.com/quadrastereo/quadra/frame/capture"
	"github.com/quadrastereo/quadra/frame/interop"
)

// edge length of the stereo indicator in pixels.
const indicatorSize = 32

// buildQuad compiles the full screen textured quad into a display list. The
// texture coordinates run top down to undo the producer's row order.
func (scr *SDLGL) buildQuad() {
	scr.quad = gl.GenLists(1)
	gl.NewList(scr.quad, gl.COMPILE)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0.0, 1.0)
	gl.Vertex2f(-1.0, -1.0)
	gl.TexCoord2f(1.0, 1.0)
	gl.Vertex2f(1.0, -1.0)
	gl.TexCoord2f(1.0, 0.0)
	gl.Vertex2f(1.0, 1.0)
	gl.TexCoord2f(0.0, 0.0)
	gl.Vertex2f(-1.0, 1.0)
	gl.End()
	gl.EndList()
}

// dstRect is the window rectangle an eye's image lands in. Full window when
// the context is quad buffered, half each otherwise.
func (scr *SDLGL) dstRect(eye capture.Eye) (int32, int32, int32, int32) {
	w, h := scr.window.GLGetDrawableSize()

	if scr.stereo || eye == capture.EyeMono {
		return 0, 0, w, h
	}

	if eye == capture.EyeLeft {
		return 0, 0, w / 2, h
	}
	return w / 2, 0, w, h
}

// Draw implements the capture.Compositor interface.
func (scr *SDLGL) Draw(img *interop.Image, eye capture.Eye) {
	if scr.stereo {
		switch eye {
		case capture.EyeLeft:
			gl.DrawBuffer(gl.BACK_LEFT)
		case capture.EyeRight:
			gl.DrawBuffer(gl.BACK_RIGHT)
		default:
			// a mono frame goes to both eyes
			gl.DrawBuffer(gl.BACK)
		}
	} else {
		gl.DrawBuffer(gl.BACK)
	}

	x0, y0, x1, y1 := scr.dstRect(eye)

	// the quad path cannot work without a texture to sample, so a
	// renderbuffer image always blits
	useTexture := scr.set.UseTexture.Get().(bool) && img.Texture != 0

	if !useTexture || scr.set.MatchOriginalMSAA.Get().(bool) {
		// blit with a vertical flip. the producer's image is stored top
		// down and the multisample resolve comes for free
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, img.Framebuffer)
		gl.BlitFramebuffer(0, 0, int32(img.Description.Width), int32(img.Description.Height),
			x0, y1, x1, y0, gl.COLOR_BUFFER_BIT, gl.NEAREST)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
		return
	}

	w, h := scr.window.GLGetDrawableSize()
	gl.Viewport(x0, y0, x1-x0, y1-y0)
	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, img.Texture)
	gl.CallList(scr.quad)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.TEXTURE_2D)
	gl.Viewport(0, 0, w, h)
}

// Indicator implements the capture.Compositor interface. Blue in the left
// eye and red in the right, so that crossed or missing eyes are obvious at a
// glance. Grey means the producer is still in mono.
func (scr *SDLGL) Indicator(stereo bool) {
	w, h := scr.window.GLGetDrawableSize()
	if w == 0 || h == 0 {
		return
	}

	sx := 2.0 * float32(indicatorSize) / float32(w)
	sy := 2.0 * float32(indicatorSize) / float32(h)

	gl.Disable(gl.TEXTURE_2D)

	if scr.stereo {
		gl.DrawBuffer(gl.BACK_LEFT)
		if stereo {
			gl.Color3f(0.0, 0.0, 1.0)
		} else {
			gl.Color3f(0.5, 0.5, 0.5)
		}
		gl.Rectf(-1.0, 1.0-sy, -1.0+sx, 1.0)

		if stereo {
			gl.DrawBuffer(gl.BACK_RIGHT)
			gl.Color3f(1.0, 0.0, 0.0)
			gl.Rectf(-1.0, 1.0-sy, -1.0+sx, 1.0)
		}
	} else {
		gl.DrawBuffer(gl.BACK)
		if stereo {
			// one square per half
			gl.Color3f(0.0, 0.0, 1.0)
			gl.Rectf(-1.0, 1.0-sy, -1.0+sx, 1.0)
			gl.Color3f(1.0, 0.0, 0.0)
			gl.Rectf(0.0, 1.0-sy, sx, 1.0)
		} else {
			gl.Color3f(0.5, 0.5, 0.5)
			gl.Rectf(-1.0, 1.0-sy, -1.0+sx, 1.0)
		}
	}

	gl.Color3f(1.0, 1.0, 1.0)
}

// Swap implements the capture.Compositor interface.
func (scr *SDLGL) Swap() {
	scr.window.GLSwap()
}
