/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package digit adapts an engine to random digits in a fixed base.
//
// A digit source emits independent uniform digits in [0, base) while
// counting how many digits it has produced. The count is the entropy
// accounting the samplers rely on: an exact sampler should draw no
// more digits than the precision of its output requires.
//
// The base 2^32 does not fit in a uint32, so the value 0 is used as a
// sentinel for it (Base32); the natural modulus of the digit type
// then serves as the base.
package digit

import (
	"github.com/pkg/errors"

	"github.com/fentec-project/exrand/engine"
)

// Base32 is the sentinel base value selecting base 2^32.
const Base32 uint32 = 0

// ErrOutOfDigits is returned by a finite source when a digit is
// requested and none remain.
var ErrOutOfDigits = errors.New("digit: out of digits")

// Source emits independent uniform digits in [0, Base()).
//
// Next may consult the supplied engine; a tabulated source ignores it
// and returns ErrOutOfDigits on exhaustion. An engine-backed source
// never fails.
type Source interface {
	// Next returns the next digit, uniform over [0, Base()).
	Next(e engine.Engine) (uint32, error)
	// Base returns the digit base, with 0 meaning 2^32.
	Base() uint32
	// Max returns the largest digit value, base-1.
	Max() uint32
	// Bits returns the number of bits needed to hold a digit.
	Bits() int
	// PowerOfTwo reports whether the base is a power of two.
	PowerOfTwo() bool
	// Count returns the number of digits emitted so far.
	Count() int64
	// InvBase returns 1/base as a float64.
	InvBase() float64
}

// bitsFor returns the position of the most significant set bit of x,
// counting from 1; it returns 0 for x = 0.
func bitsFor(x uint32) int {
	n := 0
	for x != 0 {
		n++
		x >>= 1
	}
	return n
}
