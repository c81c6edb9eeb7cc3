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

package curated_test

import (
	"errors"
	"testing"

	"github.com/quadrastereo/quadra/curated"
	"github.com/quadrastereo/quadra/test"
)

const (
	testError     = "test error: %v"
	testErrorWrap = "wrapped: %v"
)

func TestIs(t *testing.T) {
	err := curated.Errorf(testError, "detail")

	test.Equate(t, curated.IsAny(err), true)
	test.Equate(t, curated.Is(err, testError), true)
	test.Equate(t, curated.Is(err, testErrorWrap), false)

	// uncurated errors match nothing
	plain := errors.New("plain error")
	test.Equate(t, curated.IsAny(plain), false)
	test.Equate(t, curated.Is(plain, testError), false)

	// nor does nil
	test.Equate(t, curated.IsAny(nil), false)
	test.Equate(t, curated.Is(nil, testError), false)
	test.Equate(t, curated.Has(nil, testError), false)
}

func TestHas(t *testing.T) {
	err := curated.Errorf(testError, "detail")
	wrapped := curated.Errorf(testErrorWrap, err)

	// Is() matches the outermost pattern only; Has() searches the chain
	test.Equate(t, curated.Is(wrapped, testError), false)
	test.Equate(t, curated.Has(wrapped, testError), true)
	test.Equate(t, curated.Has(wrapped, testErrorWrap), true)
}

func TestNormalisation(t *testing.T) {
	// duplicate adjacent message parts are removed
	err := curated.Errorf("pool: %v", curated.Errorf("pool: no surfaces"))
	test.Equate(t, err.Error(), "pool: no surfaces")

	// non-duplicate parts are preserved
	err = curated.Errorf("capture: %v", curated.Errorf("pool: no surfaces"))
	test.Equate(t, err.Error(), "capture: pool: no surfaces")
}
