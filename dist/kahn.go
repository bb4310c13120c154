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

// NormalKahn samples from the unit normal distribution by Kahn's
// method: a pair of exponential deviates x, y is accepted when
// (x-1)^2 < 2y, comparing the two sides as exact rational intervals
// that are narrowed one digit at a time.
//
// Deprecated: the interval comparison needs arbitrary precision
// integers but is carried out in int64. Roughly one sample in 10^9
// overflows and is silently rejected, which biases the results. Use
// Normal instead; NormalKahn is kept for comparison runs.
type NormalKahn struct {
	src digit.Source
	y   *urand.URand
	exp *Exponential
}

// NewNormalKahn returns a Kahn sampler drawing digits from src. The
// base must be even and must not exceed 16; larger bases make the
// int64 overflow more likely.
func NewNormalKahn(src digit.Source) (*NormalKahn, error) {
	if src.Base() == digit.Base32 || src.Base() > 16 {
		return nil, errors.New("dist: Kahn sampler requires base in [2,16]")
	}
	exp, err := newExponential(src, true)
	if err != nil {
		return nil, err
	}
	return &NormalKahn{
		src: src,
		y:   urand.NewURand(src),
		exp: exp,
	}, nil
}

// Generate sets x to the next normal deviate as a u-rand.
func (nk *NormalKahn) Generate(e engine.Engine, x *urand.URand) error {
	for {
		if err := nk.exp.Generate(e, x); err != nil {
			return err
		}
		if err := nk.exp.Generate(e, nk.y); err != nil {
			return err
		}
		nx, dx, err := x.Rational(e, x.NDigits())
		if err != nil {
			return err
		}
		ny, dy, err := nk.y.Rational(e, nk.y.NDigits())
		if err != nil {
			return err
		}
		accept, err := nk.compare(e, x, nx, dx, ny, dy)
		if err != nil {
			return err
		}
		if accept {
			return nil
		}
	}
}

// compare narrows the rational enclosures of (x-1)^2 and 2y until one
// is entirely below the other. It returns false, and the caller draws
// a fresh pair, on rejection and also when int64 overflow leaves the
// comparison undecidable.
func (nk *NormalKahn) compare(e engine.Engine, x *urand.URand, nx, dx, ny, dy int64) (accept bool, err error) {
	for {
		nxl := nx - dx // x - 1
		if nxl < 0 {
			nxl = -nxl - 1
		}
		nxu := nxl + 1
		nxl, nxu = nxl*nxl, nxu*nxu // (x-1)^2
		dxx := dx * dx
		nyl, nyu, dyy := ny, ny+1, dy // 2y
		if dyy%2 == 0 {
			dyy /= 2
		} else {
			nyl *= 2
			nyu *= 2
		}
		if !(dxx > 0 && dyy > 0) {
			return false, nil // overflow, restart
		}
		// Common denominator; the smaller one always divides the
		// larger exactly.
		if dyy > dxx {
			nxl *= dyy / dxx
			nxu *= dyy / dxx
		} else if dxx > dyy {
			nyl *= dxx / dyy
			nyu *= dxx / dyy
		}
		if !(nxl >= 0 && nxu > nxl && nyl >= 0 && nyu > nyl) {
			return false, nil // overflow, restart
		}
		// The enclosures are open intervals, so equality decides.
		if nxu <= nyl {
			// (x-1)^2 < 2y; attach a random sign and accept.
			neg, err := nk.y.Init().LessThanHalf(e)
			if err != nil {
				return false, err
			}
			if neg {
				x.Negate()
			}
			return true, nil
		}
		if nyu <= nxl {
			return false, nil // (x-1)^2 > 2y
		}
		// Narrow the wider gap; on a tie refine x since its digits
		// end up in the result.
		if nxu-nxl >= nyu-nyl {
			nx, dx, err = x.Rational(e, x.NDigits()+1)
		} else {
			ny, dy, err = nk.y.Rational(e, nk.y.NDigits()+1)
		}
		if err != nil {
			return false, err
		}
	}
}
