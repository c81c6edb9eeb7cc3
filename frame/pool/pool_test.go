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

package pool_test

import (
	"testing"

	"github.com/quadrastereo/quadra/curated"
	"github.com/quadrastereo/quadra/frame/device"
	"github.com/quadrastereo/quadra/frame/interop"
	"github.com/quadrastereo/quadra/frame/pool"
	"github.com/quadrastereo/quadra/test"
)

// mockInterop counts images and objects and can be told to fail.
type mockInterop struct {
	images       int
	objects      int
	failNewImage bool
	failRegister bool
}

func (m *mockInterop) Open() error  { return nil }
func (m *mockInterop) Close() error { return nil }

func (m *mockInterop) NewImage(desc device.Description) (*interop.Image, error) {
	if m.failNewImage {
		return nil, curated.Errorf(interop.NotAvailable, "mock")
	}
	m.images++
	return &interop.Image{Texture: 1, Framebuffer: 1, Description: desc}, nil
}

func (m *mockInterop) ReleaseImage(img *interop.Image) {
	m.images--
}

func (m *mockInterop) Register(s device.Surface, img *interop.Image, _ interop.Access) (interop.Object, error) {
	if m.failRegister {
		return nil, curated.Errorf(interop.NotAvailable, "mock")
	}
	m.objects++
	return &mockObject{m: m}, nil
}

type mockObject struct {
	m      *mockInterop
	locked bool
}

func (o *mockObject) Lock() error {
	o.locked = true
	return nil
}

func (o *mockObject) Unlock() error {
	o.locked = false
	return nil
}

func (o *mockObject) Unregister() {
	o.m.objects--
}

func TestPoolLifecycle(t *testing.T) {
	dev := device.NewSoftware(device.Description{Width: 64, Height: 48, Format: device.FormatRGBA8})
	ip := &mockInterop{}
	p := pool.NewPool()

	test.Equate(t, p.Created(), false)
	test.Equate(t, p.Bound(), false)

	desc := device.Description{Width: 64, Height: 48, Format: device.FormatRGBA8}
	test.ExpectedSuccess(t, p.Create(dev, desc))
	test.Equate(t, p.Created(), true)

	// creating twice is an error
	test.ExpectedFailure(t, p.Create(dev, desc))

	test.ExpectedSuccess(t, p.Bind(ip, interop.AccessReadOnly))
	test.Equate(t, p.Bound(), true)
	test.Equate(t, ip.images, pool.NumSlots)
	test.Equate(t, ip.objects, pool.NumSlots)

	// slot indices wrap
	test.Equate(t, p.Slot(0) == p.Slot(pool.NumSlots), true)

	p.Destroy(ip)
	test.Equate(t, p.Created(), false)
	test.Equate(t, p.Bound(), false)
	test.Equate(t, ip.images, 0)
	test.Equate(t, ip.objects, 0)

	// destroy is idempotent
	p.Destroy(ip)
}

func TestPoolCreateFailure(t *testing.T) {
	dev := device.NewSoftware(device.Description{Width: 64, Height: 48, Format: device.FormatRGBA8})
	p := pool.NewPool()

	// an impossible description fails surface creation and leaves the pool
	// unchanged
	test.ExpectedFailure(t, p.Create(dev, device.Description{Width: -1, Height: -1}))
	test.Equate(t, p.Created(), false)
}

func TestPoolBindFailure(t *testing.T) {
	dev := device.NewSoftware(device.Description{Width: 64, Height: 48, Format: device.FormatRGBA8})
	p := pool.NewPool()

	desc := device.Description{Width: 64, Height: 48, Format: device.FormatRGBA8}
	test.ExpectedSuccess(t, p.Create(dev, desc))

	// binding before creation is an error
	q := pool.NewPool()
	test.ExpectedFailure(t, q.Bind(&mockInterop{}, interop.AccessReadOnly))

	// a registration failure unwinds any images already bound
	ip := &mockInterop{failRegister: true}
	test.ExpectedFailure(t, p.Bind(ip, interop.AccessReadOnly))
	test.Equate(t, p.Bound(), false)
	test.Equate(t, ip.images, 0)
	test.Equate(t, ip.objects, 0)

	p.Destroy(ip)
}

func TestLabels(t *testing.T) {
	p := pool.NewPool()

	test.Equate(t, p.Slot(0).Label(), pool.LabelNone)
	p.Slot(0).SetLabel(pool.LabelLeft)
	p.Slot(1).SetLabel(pool.LabelRight)
	test.Equate(t, p.Slot(0).Label(), pool.LabelLeft)
	test.Equate(t, p.Slot(1).Label(), pool.LabelRight)

	test.Equate(t, pool.LabelMono.String(), "mono")
	test.Equate(t, pool.Label(99).String(), "unknown")
}
