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

package digit

import (
	"math"

	"github.com/pkg/errors"

	"github.com/fentec-project/exrand/engine"
)

// Gen turns an engine's 32-bit words into digits in [0, base).
//
// For a power-of-two base a digit is the high bits of one word; for
// any other base a digit is obtained by threshold rejection, so the
// result stays exactly uniform. Gen is infallible: Next always
// returns a digit.
type Gen struct {
	base      uint32 // 0 means 2^32
	max       uint32 // base - 1
	bits      int
	pot       bool
	threshold uint32 // smallest accepted word for rejection sampling
	count     int64
}

// NewGen returns a digit source for the given base. The base must be
// 2 or more; the sentinel Base32 selects base 2^32.
func NewGen(base uint32) (*Gen, error) {
	if base == 1 {
		return nil, errors.New("digit: base must be 2 or more")
	}
	g := &Gen{base: base}
	if base == Base32 {
		g.max = math.MaxUint32
	} else {
		g.max = base - 1
	}
	g.bits = bitsFor(g.max)
	g.pot = g.max == ^uint32(0)>>(32-g.bits)
	if !g.pot {
		// Words below the threshold would bias the fold to [0, base).
		g.threshold = uint32((uint64(1)<<32 - uint64(base)) % uint64(base))
	}
	return g, nil
}

// Next returns the next digit. The returned error is always nil; it
// is present so Gen satisfies Source alongside fallible sources.
func (g *Gen) Next(e engine.Engine) (uint32, error) {
	g.count++
	if g.pot {
		return e.Uint32() >> (32 - g.bits), nil
	}
	for {
		v := e.Uint32()
		if v >= g.threshold {
			return v % g.base, nil
		}
	}
}

// Base returns the digit base, with 0 meaning 2^32.
func (g *Gen) Base() uint32 { return g.base }

// Max returns the largest digit value.
func (g *Gen) Max() uint32 { return g.max }

// Bits returns the number of bits needed to hold a digit.
func (g *Gen) Bits() int { return g.bits }

// PowerOfTwo reports whether the base is a power of two.
func (g *Gen) PowerOfTwo() bool { return g.pot }

// Count returns the number of digits emitted so far.
func (g *Gen) Count() int64 { return g.count }

// InvBase returns 1/base as a float64.
func (g *Gen) InvBase() float64 {
	if g.pot {
		return math.Ldexp(1, -g.bits)
	}
	return 1 / float64(g.base)
}
