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

// Package settings gathers the runtime options recognised by the frame
// bridge. Settings are read-only once the capture pipeline is running;
// changing them mid-session is not supported.
package settings

import (
	"github.com/quadrastereo/quadra/logger"
	"github.com/quadrastereo/quadra/prefs"
)

// The keys recognised in a prefs string (eg. on the command line with the
// -prefs flag).
const (
	KeyUseTexture        = "useTexture"
	KeyMatchOriginalMSAA = "matchOriginalMSAA"
	KeyStereoIndicator   = "stereoIndicator"
	KeyLogLevel          = "logLevel"
)

// Settings for the frame bridge.
type Settings struct {
	// back pool slots with textures rather than renderbuffers. the textured
	// quad composite path is only available when this is true
	UseTexture prefs.Bool

	// force the display pixel format to use the same multisample count as
	// the producer. when enabled the composite pass always uses the blit
	// path
	MatchOriginalMSAA prefs.Bool

	// draw the on-screen left/right channel indicator
	StereoIndicator prefs.Bool

	// level of the central logger. one of none/error/info/verbose
	LogLevel prefs.String
}

// NewSettings is the preferred method of initialisation for the Settings
// type. All values are set to their defaults.
func NewSettings() (*Settings, error) {
	set := &Settings{}

	// changing the log level setting takes effect immediately
	set.LogLevel.SetHookPost(func(v prefs.Value) error {
		lvl, err := logger.ParseLevel(v.(string))
		if err != nil {
			return err
		}
		logger.SetLevel(lvl)
		return nil
	})

	err := set.Reset()
	if err != nil {
		return nil, err
	}

	return set, nil
}

// Reset all settings to their default values.
func (set *Settings) Reset() error {
	err := set.UseTexture.Set(true)
	if err != nil {
		return err
	}
	err = set.MatchOriginalMSAA.Set(true)
	if err != nil {
		return err
	}
	err = set.StereoIndicator.Set(false)
	if err != nil {
		return err
	}
	return set.LogLevel.Set(logger.LevelInfo.String())
}

// ApplyCommandLine updates settings from the current command line prefs
// group. Keys not present in the group are left unchanged.
func (set *Settings) ApplyCommandLine() error {
	for _, opt := range []struct {
		key  string
		pref interface{ Set(prefs.Value) error }
	}{
		{KeyUseTexture, &set.UseTexture},
		{KeyMatchOriginalMSAA, &set.MatchOriginalMSAA},
		{KeyStereoIndicator, &set.StereoIndicator},
		{KeyLogLevel, &set.LogLevel},
	} {
		if ok, v := prefs.GetCommandLinePref(opt.key); ok {
			err := opt.pref.Set(v)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
