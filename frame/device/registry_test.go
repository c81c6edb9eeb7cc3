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
	"testing"

	"github.com/quadrastereo/quadra/frame/device"
	"github.com/quadrastereo/quadra/test"
)

func TestRegistry(t *testing.T) {
	reg := device.NewRegistry()

	a := reg.Issue()
	b := reg.Issue()

	test.Equate(t, a.Valid(), true)
	test.Equate(t, b.Valid(), true)
	test.Equate(t, a == b, false)

	test.Equate(t, reg.Held(a), true)
	test.Equate(t, reg.Held(b), true)

	reg.Retire(a)
	test.Equate(t, reg.Held(a), false)
	test.Equate(t, reg.Held(b), true)

	// retiring twice is okay
	reg.Retire(a)
	test.Equate(t, reg.Held(a), false)
}

func TestRegistryNoAliasing(t *testing.T) {
	reg := device.NewRegistry()

	a := reg.Issue()
	reg.Retire(a)

	// the index is reused but the new SurfaceID must not compare equal to
	// the retired one
	c := reg.Issue()
	test.Equate(t, c.Valid(), true)
	test.Equate(t, a == c, false)
	test.Equate(t, reg.Held(a), false)
	test.Equate(t, reg.Held(c), true)
}

func TestRegistryZeroValue(t *testing.T) {
	reg := device.NewRegistry()

	var id device.SurfaceID
	test.Equate(t, id.Valid(), false)
	test.Equate(t, reg.Held(id), false)

	// retiring the zero SurfaceID has no effect
	reg.Retire(id)
	a := reg.Issue()
	test.Equate(t, reg.Held(a), true)
}
