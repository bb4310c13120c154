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

package digit_test

import (
	"testing"

	"github.com/fentec-project/exrand/digit"
	"github.com/fentec-project/exrand/engine"
	"github.com/stretchr/testify/assert"
)

func TestDigit_GenValidation(t *testing.T) {
	_, err := digit.NewGen(1)
	assert.Error(t, err, "base 1 carries no information")

	for _, base := range []uint32{2, 10, 16, 1 << 16, digit.Base32} {
		g, err := digit.NewGen(base)
		assert.NoError(t, err)
		assert.Equal(t, base, g.Base())
	}
}

func TestDigit_GenPowerOfTwo(t *testing.T) {
	g, err := digit.NewGen(8)
	assert.NoError(t, err)
	assert.True(t, g.PowerOfTwo())
	assert.Equal(t, 3, g.Bits())
	assert.Equal(t, uint32(7), g.Max())

	e := engine.NewMT19937(1)
	for i := 0; i < 10000; i++ {
		d, err := g.Next(e)
		assert.NoError(t, err)
		assert.True(t, d < 8)
	}
	assert.Equal(t, int64(10000), g.Count())
}

func TestDigit_GenBase32(t *testing.T) {
	g, err := digit.NewGen(digit.Base32)
	assert.NoError(t, err)
	assert.True(t, g.PowerOfTwo())
	assert.Equal(t, 32, g.Bits())
	assert.Equal(t, uint32(0xffffffff), g.Max())

	// A 2^32 digit is the raw engine word.
	e1 := engine.NewMT19937(99)
	e2 := engine.NewMT19937(99)
	for i := 0; i < 100; i++ {
		d, err := g.Next(e1)
		assert.NoError(t, err)
		assert.Equal(t, e2.Uint32(), d)
	}
}

func TestDigit_GenRejection(t *testing.T) {
	g, err := digit.NewGen(10)
	assert.NoError(t, err)
	assert.False(t, g.PowerOfTwo())

	e := engine.NewMT19937(7)
	counts := make([]int, 10)
	n := 100000
	for i := 0; i < n; i++ {
		d, err := g.Next(e)
		assert.NoError(t, err)
		assert.True(t, d < 10)
		counts[d]++
	}
	for d, c := range counts {
		assert.True(t, c > 9000 && c < 11000,
			"digit %d occurs %d times in %d draws", d, c, n)
	}
}

func TestDigit_Table(t *testing.T) {
	tab, err := digit.NewTable("31415")
	assert.NoError(t, err)
	assert.Equal(t, uint32(10), tab.Base())
	assert.Equal(t, 5, tab.Remaining())

	want := []uint32{3, 1, 4, 1, 5}
	for _, w := range want {
		d, err := tab.Next(nil)
		assert.NoError(t, err)
		assert.Equal(t, w, d)
	}

	_, err = tab.Next(nil)
	assert.ErrorIs(t, err, digit.ErrOutOfDigits)

	err = tab.Seed("99")
	assert.NoError(t, err)
	d, err := tab.Next(nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(9), d)

	_, err = digit.NewTable("12a4")
	assert.Error(t, err, "non-digit characters must be rejected")
}
