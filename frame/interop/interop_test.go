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

package interop_test

import (
	"testing"

	"github.com/quadrastereo/quadra/frame/interop"
	"github.com/quadrastereo/quadra/test"
)

func TestImageValid(t *testing.T) {
	// texture backed and renderbuffer backed images are both usable
	test.Equate(t, (&interop.Image{Texture: 1, Framebuffer: 1}).Valid(), true)
	test.Equate(t, (&interop.Image{Renderbuffer: 1, Framebuffer: 1}).Valid(), true)

	// exactly one backing, and always a framebuffer
	test.Equate(t, (&interop.Image{Framebuffer: 1}).Valid(), false)
	test.Equate(t, (&interop.Image{Texture: 1, Renderbuffer: 1, Framebuffer: 1}).Valid(), false)
	test.Equate(t, (&interop.Image{Texture: 1}).Valid(), false)

	var img *interop.Image
	test.Equate(t, img.Valid(), false)
}
