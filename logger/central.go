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

package logger

import (
	"io"
)

// only allowing one central log for the entire application. there's no need to
// allow more than one log.
var central *logger

// maximum number of entries in the central logger.
const maxCentral = 256

func init() {
	central = newLogger(maxCentral)
}

// Log adds an entry to the central logger. The entry is discarded if lvl is
// higher than the level set with SetLevel()
func Log(lvl Level, tag, detail string) {
	central.log(lvl, tag, detail)
}

// Logf adds a formatted entry to the central logger
func Logf(lvl Level, tag, detail string, args ...interface{}) {
	central.logf(lvl, tag, detail, args...)
}

// Allowed returns true if a log request at the specified level would create an
// entry. Use it to elide expensive detail formatting on the capture path
func Allowed(lvl Level) bool {
	return central.allowed(lvl)
}

// SetLevel changes the level of the central logger
func SetLevel(lvl Level) {
	central.setLevel(lvl)
}

// SetEcho prints entries to io.Writer as they are added. A nil writer stops
// echoing
func SetEcho(output io.Writer) {
	central.setEcho(output)
}

// Clear all entries from central logger.
func Clear() {
	central.clear()
}

// Write contents of central logger to io.Writer.
func Write(output io.Writer) {
	central.write(output)
}

// Tail writes the last N entries to io.Writer.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}
