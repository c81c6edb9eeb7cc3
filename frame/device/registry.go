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

import (
	"fmt"
	"sync"
)

// SurfaceID is the stable identity of a surface. The zero value is invalid
// and never issued by a Registry.
type SurfaceID struct {
	index      int
	generation int
}

func (id SurfaceID) String() string {
	return fmt.Sprintf("surface %d.%d", id.index, id.generation)
}

// Valid returns false for the zero SurfaceID.
func (id SurfaceID) Valid() bool {
	return id.generation > 0
}

// Registry issues surface identities. Indexes of retired surfaces are reused
// but with a new generation number, meaning a SurfaceID can never alias a
// previously released surface.
//
// Registry functions may be called from any thread.
type Registry struct {
	crit    sync.Mutex
	entries []int // generation per index. zero means the index is free
	free    []int
}

// NewRegistry is the preferred method of initialisation for the Registry
// type.
func NewRegistry() *Registry {
	return &Registry{}
}

// Issue a new SurfaceID.
func (reg *Registry) Issue() SurfaceID {
	reg.crit.Lock()
	defer reg.crit.Unlock()

	var idx int
	if len(reg.free) > 0 {
		idx = reg.free[len(reg.free)-1]
		reg.free = reg.free[:len(reg.free)-1]
		reg.entries[idx] = -reg.entries[idx] + 1
	} else {
		idx = len(reg.entries)
		reg.entries = append(reg.entries, 1)
	}

	return SurfaceID{index: idx, generation: reg.entries[idx]}
}

// Retire a SurfaceID. The index is returned to the free pool. Retiring an
// already retired or invalid SurfaceID has no effect.
func (reg *Registry) Retire(id SurfaceID) {
	reg.crit.Lock()
	defer reg.crit.Unlock()

	if !reg.held(id) {
		return
	}

	// a negative generation marks a free index while preserving the
	// generation count for the next call to Issue()
	reg.entries[id.index] = -reg.entries[id.index]
	reg.free = append(reg.free, id.index)
}

// Held returns true if the SurfaceID is currently issued and has not been
// retired.
func (reg *Registry) Held(id SurfaceID) bool {
	reg.crit.Lock()
	defer reg.crit.Unlock()
	return reg.held(id)
}

func (reg *Registry) held(id SurfaceID) bool {
	if !id.Valid() || id.index >= len(reg.entries) {
		return false
	}
	return reg.entries[id.index] == id.generation
}
