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

// Package interop defines how producer render targets become consumer-side
// OpenGL images. A surface created by the producer device is registered with
// an Interop implementation, producing an Object that arbitrates ownership of
// the shared image between the two threads.
//
// The lock discipline is strict. The consumer must hold the lock on an Object
// for the whole time it samples or blits from the corresponding image, and
// must release it before the producer can safely draw into the surface again.
// Lock acquisition is allowed to fail transiently and callers are expected to
// skip the frame rather than give up.
//
// The glram sub-package provides the concrete implementation used in
// production.
package interop
