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

// Package capture implements the frame capture protocol. It sits between a
// producer device and a display, redirecting the producer's drawing into the
// shared render target pool and telling the display when a frame is ready.
//
// The producer drives the protocol through four hooks, called from the
// producer thread at well defined points in its frame:
//
//	OnClear        start of frame. creates resources on first sight of the
//	               presented target and redirects drawing into the pool
//	OnSetViewport  every viewport change. watches for the stereo signal
//	OnPrePresent   end of frame. tags the captured frame and announces it
//	OnPostPresent  immediately after presentation. paces the producer
//	               against the display
//
// The display thread calls Compose once per announced frame (or on its own
// schedule when redrawing). Compose never blocks on the producer.
//
// A producer that never draws anything recognisable is left alone. Resource
// creation waits until a render target has actually been presented, so
// splash screens and videos rendered to intermediate targets do not trigger
// capture.
package capture
