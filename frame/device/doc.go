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

// Package device defines the operations the frame bridge requires of the
// producer's rendering device. The interception layer that delivers the host
// application's device to the bridge is not part of this project; anything
// that satisfies the Device interface can drive a capture session.
//
// Surfaces are identified by a SurfaceID issued by a Registry rather than by
// the raw handle (or pointer) of the underlying resource. Raw handles can be
// reused by the host API after release, which would poison the
// presented-target set used to recognise the main display pass. A SurfaceID
// carries a generation number and so never aliases a released surface.
//
// The Software implementation of Device renders to CPU memory. It is used by
// the demonstration producer in the run mode of the program and throughout
// the test suites.
package device
