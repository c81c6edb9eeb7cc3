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
	"fmt"
	"strings"
)

// Level controls which log requests result in a log entry. A request made at a
// level higher than the current level of the logger is discarded.
type Level int

// List of valid Level values. LevelNone discards everything, including
// requests made at LevelError.
const (
	LevelNone Level = iota
	LevelError
	LevelInfo
	LevelVerbose
)

func (lvl Level) String() string {
	switch lvl {
	case LevelNone:
		return "none"
	case LevelError:
		return "error"
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	}
	return fmt.Sprintf("Level(%d)", int(lvl))
}

// ParseLevel converts a level name, as it might appear in a settings string,
// to a Level value. Matching is case insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "none":
		return LevelNone, nil
	case "error":
		return LevelError, nil
	case "info":
		return LevelInfo, nil
	case "verbose":
		return LevelVerbose, nil
	}
	return LevelNone, fmt.Errorf("logger: unrecognised level (%s)", s)
}
