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

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// MT19937 is the Mersenne Twister generator of Matsumoto and
// Nishimura, producing the same word stream as std::mt19937 for a
// given seed. The reference self-check values of the samplers are
// defined against this engine.
type MT19937 struct {
	mt  [mtN]uint32
	mti int
}

// NewMT19937 returns a Mersenne Twister engine initialized with seed.
// The default seed of the reference implementation is 5489.
func NewMT19937(seed uint32) *MT19937 {
	e := &MT19937{}
	e.Seed(seed)
	return e
}

// Seed reinitializes the engine state from seed.
func (e *MT19937) Seed(seed uint32) {
	e.mt[0] = seed
	for i := 1; i < mtN; i++ {
		e.mt[i] = 1812433253*(e.mt[i-1]^(e.mt[i-1]>>30)) + uint32(i)
	}
	e.mti = mtN
}

// Uint32 returns the next word of the Mersenne Twister stream.
func (e *MT19937) Uint32() uint32 {
	var y uint32
	mag01 := [2]uint32{0, mtMatrixA}

	if e.mti >= mtN {
		var kk int
		for kk = 0; kk < mtN-mtM; kk++ {
			y = (e.mt[kk] & mtUpperMask) | (e.mt[kk+1] & mtLowerMask)
			e.mt[kk] = e.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
		}
		for ; kk < mtN-1; kk++ {
			y = (e.mt[kk] & mtUpperMask) | (e.mt[kk+1] & mtLowerMask)
			e.mt[kk] = e.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
		}
		y = (e.mt[mtN-1] & mtUpperMask) | (e.mt[0] & mtLowerMask)
		e.mt[mtN-1] = e.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
		e.mti = 0
	}

	y = e.mt[e.mti]
	e.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18

	return y
}
