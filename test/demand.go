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

package test

import "testing"

// DemandSuccess is the same as ExpectedSuccess except that the test will end
// immediately on failure.
func DemandSuccess(t *testing.T, v interface{}) {
	t.Helper()

	if !ExpectedSuccess(t, v) {
		t.FailNow()
	}
}

// DemandFailure is the same as ExpectedFailure except that the test will end
// immediately on failure.
func DemandFailure(t *testing.T, v interface{}) {
	t.Helper()

	if !ExpectedFailure(t, v) {
		t.FailNow()
	}
}
