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

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/quadrastereo/quadra/logger"
	"github.com/quadrastereo/quadra/modalflag"
	"github.com/quadrastereo/quadra/play"
	"github.com/quadrastereo/quadra/prefs"
	"github.com/quadrastereo/quadra/settings"
	"github.com/quadrastereo/quadra/statsview"
	"github.com/quadrastereo/quadra/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	width := md.AddInt("width", 800, "width of the produced frames")
	height := md.AddInt("height", 600, "height of the produced frames")
	stereoAfter := md.AddInt("stereo", 5, "seconds before the producer sends the stereo signal (-1 to stay mono)")
	duration := md.AddInt("duration", 0, "seconds to run for (0 means until quit)")
	prf := md.AddString("prefs", "", fmt.Sprintf("preference values for this session (eg. %s::false)", settings.KeyStereoIndicator))
	log := md.AddBool("log", false, "echo log entries to stderr as they happen")
	stats := md.AddBool("statsview", false, "run the performance statistics server")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview is not available in this build. see the statsview build tag")
		}
		statsview.Launch(md.Output)
	}

	prefs.PushCommandLineStack(*prf)

	set, err := settings.NewSettings()
	if err != nil {
		return err
	}
	if err := set.ApplyCommandLine(); err != nil {
		return err
	}

	err = play.Play(set, *width, *height,
		time.Duration(*stereoAfter)*time.Second,
		time.Duration(*duration)*time.Second)

	// any prefs left on the stack were not recognised by anything
	if r := prefs.PopCommandLineStack(); r != "" {
		logger.Logf(logger.LevelError, "quadra", "unrecognised preferences: %s", r)
	}

	if !*log {
		// the log is the only record of what the session did
		logger.Write(os.Stdout)
	}

	return err
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, ver)
	if *revision {
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}
