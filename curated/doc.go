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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern is retained and can
// later be matched against with the Is() and Has() functions:
//
//	err := curated.Errorf(pool.CreationError, why)
//
//	if curated.Has(err, pool.CreationError) {
//		...
//	}
//
// Is() matches the outermost error only. Has() looks for the pattern anywhere
// in the error chain. IsAny() answers whether the error was created by
// Errorf() at all - ie. whether the error is curated or uncurated.
//
// The Error() function for curated errors normalises the message chain by
// removing duplicate adjacent parts. The practical advantage of this is that
// it alleviates the problem of when and how to wrap errors: wrapping a
// "pool: ..." error in the pattern "pool: %v" will not produce the string
// "pool: pool: ...".
package curated
