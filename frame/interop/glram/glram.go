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

// Package glram shares surfaces of the software device with the consumer's
// OpenGL context by copying pixel data through RAM. Uploads only happen when
// the surface has been modified since the last lock, so an unchanged surface
// costs nothing beyond a version check.
//
// All functions must be called on the display thread with the GL context
// current, in keeping with the interop package's contract.
package glram

import (
	"image"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/quadrastereo/quadra/curated"
	"github.com/quadrastereo/quadra/frame/device"
	"github.com/quadrastereo/quadra/frame/interop"
	"github.com/quadrastereo/quadra/logger"
	"github.com/quadrastereo/quadra/settings"
)

// Interop is the RAM-copy implementation of the interop.Interop interface.
type Interop struct {
	dev  *device.Software
	set  *settings.Settings
	open bool
}

// NewInterop is the preferred method of initialisation for the Interop type.
// The useTexture setting decides whether images are backed by textures or by
// renderbuffers.
func NewInterop(dev *device.Software, set *settings.Settings) *Interop {
	return &Interop{dev: dev, set: set}
}

// Open implements the interop.Interop interface.
func (rm *Interop) Open() error {
	if rm.open {
		return curated.Errorf(interop.NotAvailable, "already open")
	}
	if rm.dev == nil {
		return curated.Errorf(interop.NotAvailable, "no device")
	}
	rm.open = true
	return nil
}

// Close implements the interop.Interop interface.
func (rm *Interop) Close() error {
	if !rm.open {
		return curated.Errorf(interop.NotAvailable, "not open")
	}
	rm.open = false
	return nil
}

// NewImage implements the interop.Interop interface. Multisampled images are
// not possible when pixels travel through RAM so a request for multisampling
// is clamped rather than refused.
func (rm *Interop) NewImage(desc device.Description) (*interop.Image, error) {
	if !rm.open {
		return nil, curated.Errorf(interop.NotAvailable, "not open")
	}

	if desc.MSAA > 1 {
		logger.Logf(logger.LevelInfo, "glram", "cannot multisample a RAM copy. creating %dx%d image without", desc.Width, desc.Height)
		desc.MSAA = 0
	}

	img := &interop.Image{Description: desc}

	if rm.set.UseTexture.Get().(bool) {
		gl.GenTextures(1, &img.Texture)
		gl.BindTexture(gl.TEXTURE_2D, img.Texture)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
			int32(desc.Width), int32(desc.Height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	} else {
		gl.GenRenderbuffers(1, &img.Renderbuffer)
		gl.BindRenderbuffer(gl.RENDERBUFFER, img.Renderbuffer)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8,
			int32(desc.Width), int32(desc.Height))
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	}

	gl.GenFramebuffers(1, &img.Framebuffer)
	gl.BindFramebuffer(gl.FRAMEBUFFER, img.Framebuffer)
	if img.Texture != 0 {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, img.Texture, 0)
	} else {
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, img.Renderbuffer)
	}
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		rm.ReleaseImage(img)
		return nil, curated.Errorf(interop.NotAvailable,
			curated.Errorf("framebuffer incomplete (status %#04x)", status))
	}

	return img, nil
}

// ReleaseImage implements the interop.Interop interface.
func (rm *Interop) ReleaseImage(img *interop.Image) {
	if img == nil {
		return
	}
	if img.Framebuffer != 0 {
		gl.DeleteFramebuffers(1, &img.Framebuffer)
		img.Framebuffer = 0
	}
	if img.Texture != 0 {
		gl.DeleteTextures(1, &img.Texture)
		img.Texture = 0
	}
	if img.Renderbuffer != 0 {
		gl.DeleteRenderbuffers(1, &img.Renderbuffer)
		img.Renderbuffer = 0
	}
}

// Register implements the interop.Interop interface. The new object is locked
// and unlocked once before being returned, priming the image with the
// surface's current contents and proving the lock discipline works for this
// pairing.
func (rm *Interop) Register(s device.Surface, img *interop.Image, access interop.Access) (interop.Object, error) {
	if !rm.open {
		return nil, curated.Errorf(interop.NotAvailable, "not open")
	}

	sw, ok := s.(*device.SoftwareSurface)
	if !ok {
		return nil, curated.Errorf(interop.NotAvailable, "surface was not created by a software device")
	}
	if !img.Valid() {
		return nil, curated.Errorf(interop.NotAvailable, "image is not usable")
	}

	desc := sw.Description()
	if desc.Width != img.Description.Width || desc.Height != img.Description.Height {
		return nil, curated.Errorf(interop.NotAvailable,
			curated.Errorf("surface is %dx%d but image is %dx%d",
				desc.Width, desc.Height, img.Description.Width, img.Description.Height))
	}

	obj := &object{rm: rm, surf: sw, img: img, access: access}

	if err := obj.Lock(); err != nil {
		return nil, err
	}
	if err := obj.Unlock(); err != nil {
		return nil, err
	}

	return obj, nil
}

// object implements the interop.Object interface for RAM-copied surfaces.
type object struct {
	rm     *Interop
	surf   *device.SoftwareSurface
	img    *interop.Image
	access interop.Access

	locked bool

	// version of the surface at the time of the last upload
	uploaded uint64
}

// Lock implements the interop.Object interface.
func (obj *object) Lock() error {
	if obj.locked {
		return curated.Errorf(interop.LockFailure, "already locked")
	}
	if !obj.rm.dev.Registry().Held(obj.surf.ID()) {
		return interop.SurfaceGone(obj.surf.ID())
	}

	if obj.surf.Version() != obj.uploaded {
		obj.uploaded = obj.surf.Read(func(pix *image.RGBA) {
			if obj.img.Texture != 0 {
				gl.BindTexture(gl.TEXTURE_2D, obj.img.Texture)
				gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
					int32(obj.img.Description.Width), int32(obj.img.Description.Height),
					gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix.Pix))
				gl.BindTexture(gl.TEXTURE_2D, 0)
			} else {
				// a renderbuffer cannot be filled with a sub-image upload.
				// draw the pixels into its framebuffer instead
				gl.BindFramebuffer(gl.FRAMEBUFFER, obj.img.Framebuffer)
				gl.WindowPos2i(0, 0)
				gl.DrawPixels(int32(obj.img.Description.Width), int32(obj.img.Description.Height),
					gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix.Pix))
				gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			}
		})
	}

	obj.locked = true
	return nil
}

// Unlock implements the interop.Object interface.
func (obj *object) Unlock() error {
	obj.locked = false
	return nil
}

// Unregister implements the interop.Object interface.
func (obj *object) Unregister() {
	if obj.locked {
		logger.Log(logger.LevelError, "glram", "unregistering a locked object")
		obj.locked = false
	}
	obj.surf = nil
}
