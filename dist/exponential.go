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

// Exponential samples deviates from the unit exponential
// distribution, P(x) = exp(-x) for x > 0, by von Neumann's rejection
// method on the fractional part with the rejection count supplying
// the integer part.
//
// Two variants are implemented. The plain variant samples the
// fractional part in [0,1) directly. The bit-optimized variant bales
// out of a trial as soon as the candidate reaches 1/2, halving the
// expected digit consumption; it requires an even base since it folds
// the count parity into the leading digit.
type Exponential struct {
	src    digit.Source
	bitOpt bool
	halfUp uint32
	v, w   *urand.URand
	x      *urand.URand
}

// NewExponential returns a unit exponential sampler drawing digits
// from src. The bit-optimized variant is used when the base is even,
// except for base 2^32 where the early bale-out costs more digits
// than it saves.
func NewExponential(src digit.Source) *Exponential {
	bitOpt := src.Base() != digit.Base32 && src.Base()%2 == 0
	d, _ := newExponential(src, bitOpt)
	return d
}

// NewExponentialAlg is NewExponential with the variant chosen by the
// caller. Requesting the bit-optimized variant with an odd base is an
// error.
func NewExponentialAlg(src digit.Source, bitOptimized bool) (*Exponential, error) {
	return newExponential(src, bitOptimized)
}

func newExponential(src digit.Source, bitOpt bool) (*Exponential, error) {
	if bitOpt && src.Max()%2 != 1 {
		return nil, errors.New("dist: bit-optimized exponential requires an even base")
	}
	return &Exponential{
		src:    src,
		bitOpt: bitOpt,
		halfUp: (src.Max()-1)/2 + 1,
		v:      urand.NewURand(src),
		w:      urand.NewURand(src),
		x:      urand.NewURand(src),
	}, nil
}

// Generate sets x to the next exponential deviate as a u-rand. A
// rejection trial yields the fractional part and the number of failed
// trials the integer part, in units of 1/2 for the bit-optimized
// variant and of 1 otherwise.
func (d *Exponential) Generate(e engine.Engine, x *urand.URand) error {
	k := 0
	for {
		ok, err := d.trial(e, x)
		if err != nil {
			return err
		}
		if ok {
			break
		}
		k++
	}
	if d.bitOpt {
		if k%2 != 0 {
			x.SetRawDigit(0, x.RawDigit(0)+d.halfUp)
		}
		x.SetInteger(uint32(k / 2))
	} else {
		x.SetInteger(uint32(k))
	}
	return nil
}

// Float64 returns an exponential deviate correctly rounded to the
// nearest float64.
func (d *Exponential) Float64(e engine.Engine) (float64, error) {
	if err := d.Generate(e, d.x); err != nil {
		return 0, err
	}
	v, _, err := d.x.Float64(e, urand.ToNearest)
	return v, err
}

// Source returns the digit source the sampler draws from.
func (d *Exponential) Source() digit.Source { return d.src }

// trial runs one von Neumann trial, leaving the candidate fractional
// part in p on success.
func (d *Exponential) trial(e engine.Engine, p *urand.URand) (bool, error) {
	p.Init()
	if d.bitOpt {
		lt, err := p.LessThanHalf(e)
		if err != nil {
			return false, err
		}
		if !lt {
			return false, nil
		}
	}
	lt, err := d.w.Init().LessThan(e, p)
	if err != nil {
		return false, err
	}
	if !lt {
		return true, nil
	}
	for {
		lt, err = d.v.Init().LessThan(e, d.w)
		if err != nil {
			return false, err
		}
		if !lt {
			return false, nil
		}
		lt, err = d.w.Init().LessThan(e, d.v)
		if err != nil {
			return false, err
		}
		if !lt {
			return true, nil
		}
	}
}
