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

package prefs_test

import (
	"testing"

	"github.com/quadrastereo/quadra/prefs"
	"github.com/quadrastereo/quadra/test"
)

func TestBool(t *testing.T) {
	var b prefs.Bool

	// zero value reads as false
	test.Equate(t, b.Get().(bool), false)

	test.ExpectedSuccess(t, b.Set(true))
	test.Equate(t, b.Get().(bool), true)
	test.Equate(t, b.String(), "true")

	// string conversion. anything other than "true" is false
	test.ExpectedSuccess(t, b.Set("TRUE"))
	test.Equate(t, b.Get().(bool), true)
	test.ExpectedSuccess(t, b.Set("yes"))
	test.Equate(t, b.Get().(bool), false)

	// unsupported type
	test.ExpectedFailure(t, b.Set(1.0))

	test.ExpectedSuccess(t, b.Reset())
	test.Equate(t, b.Get().(bool), false)
}

func TestInt(t *testing.T) {
	var i prefs.Int

	test.Equate(t, i.Get().(int), 0)

	test.ExpectedSuccess(t, i.Set(4))
	test.Equate(t, i.Get().(int), 4)

	test.ExpectedSuccess(t, i.Set(" 16 "))
	test.Equate(t, i.Get().(int), 16)

	test.ExpectedFailure(t, i.Set("sixteen"))
}

func TestHookPost(t *testing.T) {
	var b prefs.Bool

	hooked := false
	b.SetHookPost(func(v prefs.Value) error {
		hooked = v.(bool)
		return nil
	})

	test.ExpectedSuccess(t, b.Set(true))
	test.Equate(t, hooked, true)
}

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.Equate(t, prefs.PopCommandLineStack(), "")

	// single value
	prefs.PushCommandLineStack("useTexture::true")
	test.Equate(t, prefs.PopCommandLineStack(), "useTexture::true")

	// single value but with additional space
	prefs.PushCommandLineStack("   useTexture:: true ")
	test.Equate(t, prefs.PopCommandLineStack(), "useTexture::true")

	// more than one key/value in the prefs string. remaining string will be
	// sorted
	prefs.PushCommandLineStack("useTexture::true; logLevel::info")
	test.Equate(t, prefs.PopCommandLineStack(), "logLevel::info; useTexture::true")

	// check invalid prefs string
	prefs.PushCommandLineStack("useTexture_true")
	test.Equate(t, prefs.PopCommandLineStack(), "")

	// check (partially) invalid prefs string
	prefs.PushCommandLineStack("useTexture_true;logLevel::info")
	test.Equate(t, prefs.PopCommandLineStack(), "logLevel::info")
}

func TestCommandLineStack(t *testing.T) {
	// empty on start
	test.Equate(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("useTexture::true")

	// add another command line group
	prefs.PushCommandLineStack("logLevel::verbose")

	// values are read from the top group only. reading deletes the entry
	ok, v := prefs.GetCommandLinePref("logLevel")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v.(string), "verbose")
	ok, _ = prefs.GetCommandLinePref("useTexture")
	test.ExpectedFailure(t, ok)

	test.Equate(t, prefs.PopCommandLineStack(), "")

	// first group still exists
	test.Equate(t, prefs.PopCommandLineStack(), "useTexture::true")
}
