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

// Package handshake synchronises the producer and display threads. Two
// one-way signals are exchanged per frame. The producer announces that a new
// frame is ready and the display thread announces that it has finished with
// whatever frames were pending.
//
// Both signals coalesce. If the display thread is slow then several frame
// announcements collapse into one, and the producer only ever observes the
// most recent completion. Neither side can deadlock the other. The producer's
// wait for completion is also bounded so that a stalled or absent display
// thread can never freeze the host application for longer than DoneTimeout.
package handshake

import (
	"time"
)

// DoneTimeout is the longest the producer will wait for the display thread to
// finish with a frame. Chosen to be long enough that a timeout only fires
// when the display thread is genuinely stalled, and short enough that the
// host application remains interactive when it is.
const DoneTimeout = 1000 * time.Millisecond

// Handshake synchronises one producer with one display thread.
type Handshake struct {
	frame chan struct{}
	done  chan struct{}
}

// NewHandshake is the preferred method of initialisation for the Handshake
// type.
func NewHandshake() *Handshake {
	return &Handshake{
		// both channels have a single slot so that signals coalesce rather
		// than queue
		frame: make(chan struct{}, 1),
		done:  make(chan struct{}, 1),
	}
}

// NotifyFrame announces a new frame to the display thread. Never blocks.
// Called on the producer thread.
func (hs *Handshake) NotifyFrame() {
	select {
	case hs.frame <- struct{}{}:
	default:
	}
}

// Frame returns the channel carrying frame announcements. The display thread
// should select on this alongside its other event sources.
func (hs *Handshake) Frame() <-chan struct{} {
	return hs.frame
}

// SignalDone announces that the display thread has finished with the pending
// frames. Never blocks. Called on the display thread at the end of every
// display pass whether or not anything was drawn.
func (hs *Handshake) SignalDone() {
	select {
	case hs.done <- struct{}{}:
	default:
	}
}

// WaitDone blocks the producer until the display thread signals completion or
// the timeout expires, whichever comes first. Returns false on timeout. A
// timeout is not an error, it just means the frame was abandoned unconsumed.
func (hs *Handshake) WaitDone(timeout time.Duration) bool {
	select {
	case <-hs.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
