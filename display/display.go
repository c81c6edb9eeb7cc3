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

// Package display is the window that captured frames end up in. The
// interface extends the capture protocol's view of a display with the
// lifecycle functions the application needs.
//
// The sdlgl sub-package provides the concrete implementation.
package display

import (
	"github.com/quadrastereo/quadra/frame/capture"
)

// Display is a window showing captured frames.
type Display interface {
	capture.Display

	// Destroy stops the display thread and releases the window. blocks
	// until the thread has finished. Destroy of an unlaunched display is
	// allowed
	Destroy()
}
