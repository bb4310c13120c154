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

package urand

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/fentec-project/exrand/engine"
)

// Rounding selects how a u-rand is converted to a finite-precision
// value. The missing digits of a u-rand always imply rounding, so the
// direction has to be chosen explicitly.
type Rounding int

const (
	// ToNearest rounds to the nearest representable value; the
	// rounding digit decides ties, so a tie rounds away from zero.
	ToNearest Rounding = iota
	// TowardZero truncates toward zero.
	TowardZero
	// AwayFromZero rounds away from zero.
	AwayFromZero
	// TowardPositive rounds toward +infinity.
	TowardPositive
	// TowardNegative rounds toward -infinity.
	TowardNegative
)

// scanLimit bounds the leading-zero-digit scan when the target type
// has an effectively unbounded exponent range.
const scanLimit = 1 << 30

// Float64 converts the u-rand to a float64 with the given rounding,
// generating exactly the digits needed to locate the leading bit and
// to decide the rounding at the 53rd significant bit. The returned
// flag is +1 if the rounded value is above the true value, -1 if
// below; it is never 0 because the ungenerated tail of a u-rand is
// never exactly zero. Requires a power-of-two base.
func (x *URand) Float64(e engine.Engine, rnd Rounding) (float64, int, error) {
	return x.valueBinary(e, rnd, 53, -1021, true)
}

// Float32 is Float64 for single precision, including denormals.
func (x *URand) Float32(e engine.Engine, rnd Rounding) (float32, int, error) {
	// All intermediate values fit exactly in a float64, so the final
	// conversion is exact.
	z, flag, err := x.valueBinary(e, rnd, 24, -125, true)
	return float32(z), flag, err
}

// valueBinary is the common conversion to a binary floating point
// value with the given number of mantissa digits and minimum
// exponent. Positions are counted so that 0.5 has its leading bit at
// position 0.
func (x *URand) valueBinary(e engine.Engine, rnd Rounding, digits, minExp int, hasDenorm bool) (float64, int, error) {
	if !x.src.PowerOfTwo() {
		return 0, 0, errors.New("urand: binary conversion requires a power-of-two base")
	}
	xbits := x.src.Bits()

	// flag is the rounding direction for the magnitude: -1 down,
	// 0 nearest (resolved below), +1 up.
	flag := roundFlag(rnd, x.s)

	var lead int // position of the leading significant bit
	if x.n != 0 {
		lead = bitsFor32(x.n)
	} else {
		i := 0
		for {
			di, err := x.Digit(e, i)
			if err != nil {
				return 0, 0, err
			}
			if di != 0 || i >= (-minExp)/xbits {
				break
			}
			i++
		}
		lead = bitsFor32(x.d[i]) - (i+1)*xbits
		if lead < minExp {
			if hasDenorm {
				lead = minExp
			} else {
				lead = minExp - 1 // marks underflow
			}
		}
	}

	// Position of the rounding bit.
	trail := lead
	if lead >= minExp {
		trail -= digits
	}
	if flag == 0 {
		var bit uint32
		if trail > 0 {
			bit = (x.n >> uint(trail-1)) & 1
		} else {
			dk, err := x.Digit(e, (-trail)/xbits)
			if err != nil {
				return 0, 0, err
			}
			bit = (dk >> uint(xbits-1-(-trail)%xbits)) & 1
		}
		if bit == 0 {
			flag = -1
		} else {
			flag = 1
		}
	}

	z := 0.0
	if flag > 0 {
		z = 1.0
	}
	// The result is the bits in (trail, lead], plus z*2^trail.
	switch {
	case trail >= 0:
		z = math.Ldexp(z, trail) + float64(x.n&(^uint32(0)<<uint(trail)))
	case lead >= minExp:
		k := (-trail - 1) / xbits
		dk, err := x.Digit(e, k)
		if err != nil {
			return 0, 0, err
		}
		shift := (k+1)*xbits + trail
		z = math.Ldexp(z, shift) + float64(dk&(^uint32(0)<<uint(shift)))
		for k > 0 {
			k--
			z = math.Ldexp(z, -xbits) + float64(x.d[k])
		}
		z = math.Ldexp(z, -xbits) + float64(x.n)
	default:
		z *= math.Ldexp(1, minExp-1) // underflow without denormals
	}
	flag *= x.s
	return float64(x.s) * z, flag, nil
}

// Big converts the u-rand to a *big.Float of the given precision in
// bits, with the same digit-consumption protocol as Float64. Requires
// a power-of-two base and prec > 0.
func (x *URand) Big(e engine.Engine, rnd Rounding, prec uint) (*big.Float, int, error) {
	if !x.src.PowerOfTwo() {
		return nil, 0, errors.New("urand: binary conversion requires a power-of-two base")
	}
	if prec == 0 {
		return nil, 0, errors.New("urand: precision must be positive")
	}
	xbits := x.src.Bits()

	flag := roundFlag(rnd, x.s)

	var lead int
	if x.n != 0 {
		lead = bitsFor32(x.n)
	} else {
		i := 0
		for {
			di, err := x.Digit(e, i)
			if err != nil {
				return nil, 0, err
			}
			if di != 0 || i >= scanLimit/xbits {
				break
			}
			i++
		}
		lead = bitsFor32(x.d[i]) - (i+1)*xbits
	}

	trail := lead - int(prec)
	if flag == 0 {
		var bit uint32
		if trail > 0 {
			bit = (x.n >> uint(trail-1)) & 1
		} else {
			dk, err := x.Digit(e, (-trail)/xbits)
			if err != nil {
				return nil, 0, err
			}
			bit = (dk >> uint(xbits-1-(-trail)%xbits)) & 1
		}
		if bit == 0 {
			flag = -1
		} else {
			flag = 1
		}
	}

	// Assemble the kept bits (trail, lead] into an exact integer
	// mantissa m, so the result is (m + carry) * 2^trail.
	m := new(big.Int)
	if trail >= 0 {
		m.SetUint64(uint64(x.n >> uint(trail)))
	} else {
		k := (-trail - 1) / xbits
		if _, err := x.Digit(e, k); err != nil {
			return nil, 0, err
		}
		m.SetUint64(uint64(x.n))
		w := new(big.Int)
		for j := 0; j <= k; j++ {
			m.Lsh(m, uint(xbits))
			m.Or(m, w.SetUint64(uint64(x.d[j])))
		}
		m.Rsh(m, uint((k+1)*xbits+trail))
	}
	if flag > 0 {
		m.Add(m, big.NewInt(1))
	}

	z := new(big.Float).SetPrec(prec + 64).SetInt(m)
	z.SetMantExp(z, trail)
	z.SetPrec(prec)
	if x.s < 0 {
		z.Neg(z)
	}
	flag *= x.s
	return z, flag, nil
}

func roundFlag(rnd Rounding, s int) int {
	switch rnd {
	case ToNearest:
		return 0
	case TowardZero:
		return -1
	case TowardPositive:
		return s
	case TowardNegative:
		return -s
	default:
		return 1 // away from zero
	}
}

// bitsFor32 returns the position of the most significant set bit of
// x, counting from 1; it returns 0 for x = 0.
func bitsFor32(x uint32) int {
	n := 0
	for x != 0 {
		n++
		x >>= 1
	}
	return n
}
