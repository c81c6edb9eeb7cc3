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

package interop

import (
	"github.com/quadrastereo/quadra/curated"
	"github.com/quadrastereo/quadra/frame/device"
)

// Error patterns returned by Interop implementations.
const (
	NotAvailable = "interop: not available: %v"
	LockFailure  = "interop: lock: %v"
)

// Access describes how the consumer will use a registered image.
type Access int

// List of valid Access values.
const (
	AccessReadOnly Access = iota
	AccessReadWrite
	AccessWriteDiscard
)

// Image is the consumer-side face of a shared surface. The handles are only
// meaningful on the consumer thread with its GL context current.
//
// Exactly one of Texture and Renderbuffer is non-zero. Multisampled images are
// always renderbuffers. Framebuffer has the image attached as its colour
// attachment and is used as the read framebuffer when blitting.
type Image struct {
	Texture      uint32
	Renderbuffer uint32
	Framebuffer  uint32

	// dimensions and sample count of the image, recorded at creation
	Description device.Description
}

// Object arbitrates ownership of one shared image.
type Object interface {
	// Lock acquires the image for the consumer. returns an error if the image
	// could not be acquired, in which case its contents must not be read
	Lock() error

	// Unlock returns the image to the producer. must be called after every
	// successful Lock, and is harmless when the object is not locked
	Unlock() error

	// Unregister the object. the image may be released afterwards. not
	// callable while locked
	Unregister()
}

// Interop is implemented for each mechanism that can expose producer surfaces
// to the consumer's GL context. All functions must be called from the
// consumer thread.
type Interop interface {
	// Open the interop connection to the producer device. must be called
	// before any other function
	Open() error

	// NewImage allocates a consumer-side image compatible with the
	// description
	NewImage(device.Description) (*Image, error)

	// Register pairs a producer surface with a consumer image
	Register(device.Surface, *Image, Access) (Object, error)

	// ReleaseImage frees an image returned by NewImage. images must not be
	// registered at the time of release
	ReleaseImage(*Image)

	// Close the interop connection. all objects must have been unregistered
	Close() error
}

// sanity check that an image is usable by the consumer.
func (img *Image) Valid() bool {
	if img == nil {
		return false
	}
	if img.Framebuffer == 0 {
		return false
	}
	return (img.Texture == 0) != (img.Renderbuffer == 0)
}

// helper for implementations that need a consistent error for a surface that
// has been released while still registered.
func SurfaceGone(id device.SurfaceID) error {
	return curated.Errorf(NotAvailable, curated.Errorf("surface %v has been released", id))
}
