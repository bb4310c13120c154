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

package engine_test

import (
	"testing"

	"github.com/fentec-project/exrand/engine"
	"github.com/stretchr/testify/assert"
)

func TestEngine_MT19937Reference(t *testing.T) {
	// The 10000th output for the default seed is a published check
	// value for MT19937.
	e := engine.NewMT19937(5489)
	var x uint32
	for i := 0; i < 10000; i++ {
		x = e.Uint32()
	}
	assert.Equal(t, uint32(4123659995), x, "MT19937 does not match the reference stream")
}

func TestEngine_MT19937Seeding(t *testing.T) {
	e1 := engine.NewMT19937(42)
	e2 := engine.NewMT19937(42)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, e1.Uint32(), e2.Uint32())
	}

	e2.Seed(43)
	same := true
	for i := 0; i < 100; i++ {
		if e1.Uint32() != e2.Uint32() {
			same = false
		}
	}
	assert.False(t, same, "streams for different seeds should diverge")
}

func TestEngine_PCG32(t *testing.T) {
	e1 := engine.NewPCG32(12345)
	e2 := engine.NewPCG32(12345)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, e1.Uint32(), e2.Uint32())
	}

	// Crude balance check on the top bit.
	e := engine.NewPCG32(1)
	ones := 0
	for i := 0; i < 10000; i++ {
		if e.Uint32()>>31 == 1 {
			ones++
		}
	}
	assert.True(t, ones > 4500 && ones < 5500, "top bit is biased")
}

func TestEngine_Salsa20(t *testing.T) {
	var key [32]byte
	key[0] = 7
	e1 := engine.NewSalsa20(&key)
	e2 := engine.NewSalsa20(&key)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, e1.Uint32(), e2.Uint32())
	}

	c, err := engine.NewCrypto()
	assert.NoError(t, err)
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		seen[c.Uint32()] = true
	}
	assert.True(t, len(seen) > 90, "keyed stream should not repeat")
}
