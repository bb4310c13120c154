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

package urand_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/fentec-project/exrand/digit"
	"github.com/fentec-project/exrand/engine"
	"github.com/fentec-project/exrand/urand"
	"github.com/stretchr/testify/assert"
)

// script replays a fixed sequence of engine words, then zeros.
type script struct {
	words []uint32
	pos   int
}

func (s *script) Uint32() uint32 {
	if s.pos >= len(s.words) {
		return 0
	}
	w := s.words[s.pos]
	s.pos++
	return w
}

func newBase32URand(t *testing.T, words ...uint32) (*urand.URand, *script) {
	src, err := digit.NewGen(digit.Base32)
	assert.NoError(t, err)
	return urand.NewURand(src).Init(), &script{words: words}
}

func TestURand_Float64Directed(t *testing.T) {
	// x = 0x123456789ABCDEF0... / 2^64; the 53 kept bits are
	// 0x123456789ABCDE and the rounding bit is set.
	const kept = 0x123456789ABCDE
	down := math.Ldexp(kept, -56)
	up := math.Ldexp(kept+1, -56)

	x, e := newBase32URand(t, 0x12345678, 0x9ABCDEF0)
	v, flag, err := x.Float64(e, urand.TowardZero)
	assert.NoError(t, err)
	assert.Equal(t, down, v)
	assert.Equal(t, -1, flag)

	// The digits are already pinned, so other modes agree on them.
	v, flag, err = x.Float64(e, urand.AwayFromZero)
	assert.NoError(t, err)
	assert.Equal(t, up, v)
	assert.Equal(t, 1, flag)

	v, flag, err = x.Float64(e, urand.ToNearest)
	assert.NoError(t, err)
	assert.Equal(t, up, v, "the set rounding bit rounds up")
	assert.Equal(t, 1, flag)

	v, _, err = x.Float64(e, urand.TowardPositive)
	assert.NoError(t, err)
	assert.Equal(t, up, v)
	v, _, err = x.Float64(e, urand.TowardNegative)
	assert.NoError(t, err)
	assert.Equal(t, down, v)

	// Directed modes flip with the sign.
	x.Negate()
	v, flag, err = x.Float64(e, urand.TowardNegative)
	assert.NoError(t, err)
	assert.Equal(t, -up, v)
	assert.Equal(t, -1, flag)
	v, _, err = x.Float64(e, urand.TowardZero)
	assert.NoError(t, err)
	assert.Equal(t, -down, v)
}

func TestURand_Float64IntegerPart(t *testing.T) {
	x, e := newBase32URand(t, 0x80000000)
	x.SetInteger(3)
	v, flag, err := x.Float64(e, urand.TowardZero)
	assert.NoError(t, err)
	assert.Equal(t, 3.5, v, "3 + 0x80000000/2^32 truncates to 3.5")
	assert.Equal(t, -1, flag)
}

func TestURand_Float32(t *testing.T) {
	// The 24 kept bits are 0x12345678 >> 5 and the next bit, bit 4 of
	// the word, is set, so to-nearest rounds up.
	x, e := newBase32URand(t, 0x12345678, 0)
	v, flag, err := x.Float32(e, urand.ToNearest)
	assert.NoError(t, err)
	assert.Equal(t, float32(math.Ldexp(0x91A2B4, -27)), v)
	assert.Equal(t, 1, flag)

	v, flag, err = x.Float32(e, urand.TowardZero)
	assert.NoError(t, err)
	assert.Equal(t, float32(math.Ldexp(0x91A2B3, -27)), v)
	assert.Equal(t, -1, flag)
}

func TestURand_Float64RequiresBinaryBase(t *testing.T) {
	x := urand.NewURand(mustTable(t, "123"))
	x.Init()
	_, _, err := x.Float64(nil, urand.ToNearest)
	assert.Error(t, err)
}

func TestURand_BigFloat(t *testing.T) {
	x, e := newBase32URand(t, 0x12345678, 0x9ABCDEF0)

	// lead = -3, so 24 bits of precision keep 0x12345678 >> 5 and the
	// next bit, bit 4 of the first word, is set.
	z, flag, err := x.Big(e, urand.TowardZero, 24)
	assert.NoError(t, err)
	assert.Equal(t, -1, flag)
	want := new(big.Float).SetPrec(24).SetUint64(0x91A2B3)
	want.SetMantExp(want, -27)
	assert.Equal(t, 0, z.Cmp(want))

	z, flag, err = x.Big(e, urand.ToNearest, 24)
	assert.NoError(t, err)
	assert.Equal(t, 1, flag)
	want = new(big.Float).SetPrec(24).SetUint64(0x91A2B4)
	want.SetMantExp(want, -27)
	assert.Equal(t, 0, z.Cmp(want))

	// At 64 bits the two generated words are kept exactly.
	z, _, err = x.Big(e, urand.TowardZero, 64)
	assert.NoError(t, err)
	want = new(big.Float).SetPrec(64).SetUint64(0x123456789ABCDEF0)
	want.SetMantExp(want, -64)
	assert.Equal(t, 0, z.Cmp(want))
}

func TestURand_Float64AgainstBig(t *testing.T) {
	// A float64 is a 53-bit binary float, so the two conversions must
	// agree deviate for deviate.
	src, err := digit.NewGen(digit.Base32)
	assert.NoError(t, err)
	e1 := engine.NewMT19937(11)
	e2 := engine.NewMT19937(11)
	x1 := urand.NewURand(src)
	x2 := urand.NewURand(src)
	for i := 0; i < 1000; i++ {
		v, f1, err := x1.Init().Float64(e1, urand.ToNearest)
		assert.NoError(t, err)
		z, f2, err := x2.Init().Big(e2, urand.ToNearest, 53)
		assert.NoError(t, err)
		zv, _ := z.Float64()
		assert.Equal(t, zv, v)
		assert.Equal(t, f1, f2)
	}
}
