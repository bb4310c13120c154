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

package dist

import (
	"github.com/pkg/errors"

	"github.com/fentec-project/exrand/digit"
	"github.com/fentec-project/exrand/engine"
	"github.com/fentec-project/exrand/urand"
)

// Normal samples deviates from the unit normal distribution,
// P(x) = exp(-x^2/2) / sqrt(2*pi), exactly, by rejection against a
// half-integer exponential envelope. No transcendental functions are
// evaluated; every accept/reject decision is made by comparing lazy
// u-rands digit by digit.
type Normal struct {
	src digit.Source
	halfBernoulli
	x *urand.URand
}

// NewNormal returns a unit normal sampler drawing digits from src.
// The base must be less than 2^15 or a power of two.
func NewNormal(src digit.Source) (*Normal, error) {
	if !(src.Base()-1 < 1<<15 || src.PowerOfTwo() && src.Bits() <= 32) {
		return nil, errors.New("dist: normal sampler requires base below 2^15 or a power of two")
	}
	return &Normal{
		src: src,
		halfBernoulli: halfBernoulli{
			y: urand.NewURand(src),
			z: urand.NewURand(src),
		},
		x: urand.NewURand(src),
	}, nil
}

// Generate sets x to the next normal deviate as a u-rand. The integer
// part k of the magnitude is sampled from the discrete envelope
// exp(-k/2), a correction rejection brings it to exp(-k^2/2), the
// fractional part is then accepted with the conditional normal
// density on [k, k+1], and finally a fair coin sets the sign.
func (nd *Normal) Generate(e engine.Engine, x *urand.URand) error {
	for {
		k, err := nd.countHalves(e)
		if err != nil {
			return err
		}
		ok, err := nd.expNHalves(e, k*(k-1))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		x.Init()
		accept := true
		for j := k + 1; j > 0; {
			j--
			ok, err = nd.reduce(e, k, x)
			if err != nil {
				return err
			}
			if !ok {
				accept = false
				break
			}
		}
		if !accept {
			continue
		}
		x.SetInteger(uint32(k))
		neg, err := nd.y.Init().LessThanHalf(e)
		if err != nil {
			return err
		}
		if neg {
			x.Negate()
		}
		return nil
	}
}

// Float64 returns a normal deviate correctly rounded to the nearest
// float64.
func (nd *Normal) Float64(e engine.Engine) (float64, error) {
	if err := nd.Generate(e, nd.x); err != nil {
		return 0, err
	}
	v, _, err := nd.x.Float64(e, urand.ToNearest)
	return v, err
}

// Source returns the digit source the sampler draws from.
func (nd *Normal) Source() digit.Source { return nd.src }

// threeWay returns -1, 0, +1 with probabilities 1/m, 1/m, 1-2/m,
// narrowing a single digit stream against the interval [1/m, 2/m].
func (nd *Normal) threeWay(e engine.Engine, m int) (int, error) {
	n1, n2 := 1, 2
	// Work with at most 15-bit digits so that the products below stay
	// well inside an int.
	const maxbits = 15
	shift, tbase := 0, int(nd.src.Base())
	if nd.src.PowerOfTwo() && nd.src.Bits() > maxbits {
		shift = nd.src.Bits() - maxbits
		tbase = 1 << maxbits
	}
	for {
		dg, err := nd.src.Next(e)
		if err != nil {
			return 0, err
		}
		d := int(dg >> shift)
		n1 = max(0, n1*tbase-d*m)
		if n1 >= m {
			return -1, nil
		}
		n2 = min(m, n2*tbase-d*m)
		if n2 <= 0 {
			return 1, nil
		}
		if n1 <= 0 && n2 >= m {
			return 0, nil
		}
	}
}

// reduce returns true with probability exp(-x*(2k+x)/(2k+2)) for the
// fractional deviate x conditioned on integer part k. It counts the
// length of a decreasing sequence of u-rands below x, with the
// three-way draw supplying the 1/(2k+2) factors.
func (nd *Normal) reduce(e engine.Engine, k int, x *urand.URand) (bool, error) {
	n, m := 0, 2*k+2
	for ; ; n++ {
		f := 0
		var err error
		if k == 0 {
			f, err = nd.threeWay(e, m)
			if err != nil {
				return false, err
			}
			if f < 0 {
				break
			}
		}
		prev := x
		if n > 0 {
			prev = nd.y
		}
		lt, err := nd.z.Init().LessThan(e, prev)
		if err != nil {
			return false, err
		}
		if !lt {
			break
		}
		if k != 0 {
			f, err = nd.threeWay(e, m)
			if err != nil {
				return false, err
			}
			if f < 0 {
				break
			}
		}
		if f == 0 {
			lt, err = nd.y.Init().LessThan(e, x)
			if err != nil {
				return false, err
			}
			if !lt {
				break
			}
		}
		nd.y.Swap(nd.z)
	}
	return n%2 == 0, nil
}
