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

// Package userinput defines the events the display window forwards to the
// producer application. The bridge window sits over the producer's own
// window so input arriving at the bridge must be passed through unmodified
// for the producer application to remain usable.
package userinput

// MouseButton identifies a mouse button.
type MouseButton int

// List of valid MouseButton values.
const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// Event is sent to a Receiver. One of the concrete event types in this
// package.
type Event interface{}

// EventKeyboard is the press or release of a key.
type EventKeyboard struct {
	Key  string
	Down bool
}

// EventMouseMotion is a change of mouse position. Coordinates are in the
// display window's space.
type EventMouseMotion struct {
	X int
	Y int
}

// EventMouseButton is the press or release of a mouse button.
type EventMouseButton struct {
	Button MouseButton
	Down   bool
	X      int
	Y      int
}

// EventMouseWheel is mouse wheel movement.
type EventMouseWheel struct {
	Delta int
}

// EventQuit is a window close request.
type EventQuit struct{}

// Receiver implementations accept events forwarded from the display window.
// Events arrive on the display thread; implementations must be safe to call
// from a thread other than the producer thread.
type Receiver interface {
	ForwardInput(Event)
}
