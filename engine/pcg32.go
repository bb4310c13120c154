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

package engine

import "math/bits"

const pcg32Multiplier = 6364136223846793005

// PCG32 is the PCG XSH-RR generator of O'Neill with 64 bits of state
// and 32-bit output. It is a small, fast default engine for callers
// that do not need the MT19937 reference stream.
type PCG32 struct {
	state uint64
	inc   uint64
}

// NewPCG32 returns a PCG32 engine seeded deterministically from seed.
// Equal seeds produce equal streams.
func NewPCG32(seed uint64) *PCG32 {
	e := &PCG32{inc: (54 << 1) | 1}
	// Recommended initialization: step once from the stream constant,
	// add the seed, step again.
	e.next()
	e.state += seed
	e.next()
	return e
}

// Uint32 returns the next word of the PCG stream.
func (e *PCG32) Uint32() uint32 {
	return e.next()
}

func (e *PCG32) next() uint32 {
	old := e.state
	e.state = old*pcg32Multiplier + e.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := int(old >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}
