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

import "fmt"

// Format is the pixel format of a surface.
type Format int

// List of valid Format values.
const (
	FormatRGBA8 Format = iota
	FormatXRGB8
)

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatXRGB8:
		return "XRGB8"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Description of a surface. MSAA is a sample count, with values of zero or
// one both meaning no multisampling.
type Description struct {
	Width  int
	Height int
	Format Format
	MSAA   int
}

func (d Description) String() string {
	return fmt.Sprintf("%dx%d %v (%dx msaa)", d.Width, d.Height, d.Format, d.MSAA)
}

// Viewport is the rectangle of a surface that the producer is rendering to.
type Viewport struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Surface is a producer-side render target.
type Surface interface {
	// ID is the stable identity of the surface, issued by the device's
	// Registry on creation
	ID() SurfaceID

	Description() Description

	// Release the surface. The SurfaceID is retired and will never be issued
	// again
	Release()
}

// Device defines the producer-API operations used by the capture protocol.
// All functions must be called from the producer thread.
type Device interface {
	// the surface any subsequent producer drawing will be rendered into.
	// only render target index zero is ever redirected by the bridge
	RenderTarget() (Surface, error)

	// redirect producer drawing to the specified surface. note that the host
	// API resets the viewport to the full size of the new render target as a
	// side effect. callers that care must save and restore the viewport
	// around this call
	SetRenderTarget(Surface) error

	Viewport() (Viewport, error)
	SetViewport(Viewport) error

	// create an offscreen surface suitable for use as a render target
	CreateRenderTarget(Description) (Surface, error)

	// the adapter display mode. used as a fallback source of pixel format
	// information when the current render target cannot be queried
	DisplayMode() (Description, error)
}
