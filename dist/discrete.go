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
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/fentec-project/exrand/digit"
	"github.com/fentec-project/exrand/engine"
	"github.com/fentec-project/exrand/urand"
)

// Params holds the parameters of the discrete normal distribution,
// mu = muNum/muDen and sigma = sigmaNum/sigmaDen, stored in lowest
// terms.
type Params struct {
	muNum, muDen       int
	sigmaNum, sigmaDen int
}

// NewParams returns the parameters mu = muNum/muDen and
// sigma = sigmaNum/sigmaDen, reduced to lowest terms. sigma must be
// positive and the denominators must be positive.
func NewParams(muNum, muDen, sigmaNum, sigmaDen int) (*Params, error) {
	if sigmaNum <= 0 || sigmaDen <= 0 || muDen <= 0 || int64(muNum) <= math.MinInt32 {
		return nil, errors.New("dist: need sigma > 0 and mu_den > 0")
	}
	l := gcd(muNum, muDen)
	m := gcd(sigmaNum, sigmaDen)
	return &Params{
		muNum: muNum / l, muDen: muDen / l,
		sigmaNum: sigmaNum / m, sigmaDen: sigmaDen / m,
	}, nil
}

// NewIntParams is NewParams for integer mu and sigma.
func NewIntParams(mu, sigma int) (*Params, error) {
	return NewParams(mu, 1, sigma, 1)
}

// MuNum returns the numerator of mu.
func (p *Params) MuNum() int { return p.muNum }

// MuDen returns the denominator of mu.
func (p *Params) MuDen() int { return p.muDen }

// SigmaNum returns the numerator of sigma.
func (p *Params) SigmaNum() int { return p.sigmaNum }

// SigmaDen returns the denominator of sigma.
func (p *Params) SigmaDen() int { return p.sigmaDen }

func (p *Params) String() string {
	return fmt.Sprintf("%d %d %d %d", p.muNum, p.muDen, p.sigmaNum, p.sigmaDen)
}

// Knuth, TAOCP, vol 2, 4.5.2, Algorithm A.
func gcd(u, v int) int {
	if u < 0 {
		u = -u
	}
	if v < 0 {
		v = -v
	}
	for v > 0 {
		u, v = v, u%v
	}
	return u
}

func iceil(n, d int64) int64 {
	k := n / d
	if k*d < n {
		k++
	}
	return k
}

// DiscreteNormal samples exactly from the discrete normal
// distribution, P(i) proportional to exp(-((i-mu)/sigma)^2/2) for
// integer i. The rejection scheme of the continuous normal sampler
// carries over with the fractional deviate replaced by a rational
// interval around a partially sampled integer, so all comparisons
// reduce to exact int64 arithmetic.
type DiscreteNormal struct {
	src digit.Source
	halfBernoulli
	j     *urand.IRand
	param *Params

	// sigma = sig/den, mu = imu + mu/den, isig = ceil(sigma)
	sig, mu, den int64
	imu, isig    int
}

// The probability of drawing an integer part beyond kmax is about
// 10^-543, so overflow checks done at kmax cover any plausible run.
const kmax = 51

// NewDiscreteNormal returns a discrete normal sampler with the given
// parameters, drawing digits from src. The base must not exceed 2^24
// so that the exact comparisons stay within int64. The parameter
// magnitudes are checked once here so that sampling cannot overflow.
func NewDiscreteNormal(src digit.Source, p *Params) (*DiscreteNormal, error) {
	if src.Base() == digit.Base32 || src.Bits() > 24 {
		return nil, errors.New("dist: discrete normal sampler requires base in [2,2^24]")
	}
	dn := &DiscreteNormal{
		src: src,
		halfBernoulli: halfBernoulli{
			y: urand.NewURand(src),
			z: urand.NewURand(src),
		},
		j:     urand.NewIRand(src),
		param: p,
	}
	if err := dn.init(); err != nil {
		return nil, err
	}
	return dn, nil
}

func (dn *DiscreteNormal) init() error {
	const maxll = math.MaxInt64
	const maxint = math.MaxInt32
	p := dn.param
	dn.imu = p.muNum / p.muDen
	fmuNum := int64(p.muNum - dn.imu*p.muDen)
	dn.isig = int(iceil(int64(p.sigmaNum), int64(p.sigmaDen)))
	l := int64(gcd(p.sigmaDen, p.muDen))
	muDen, sigNum, sigDen := int64(p.muDen), int64(p.sigmaNum), int64(p.sigmaDen)
	absF := fmuNum
	if absF < 0 {
		absF = -absF
	}
	if !(muDen/l <= maxll/sigNum && absF <= maxll/(sigDen/l) && muDen/l <= maxll/sigDen) {
		return errors.New("dist: sigma or mu overflow")
	}
	dn.sig = sigNum * (muDen / l)
	dn.mu = fmuNum * (sigDen / l)
	dn.den = sigDen * (muDen / l)
	if !(int64(dn.isig) <= maxll/dn.den) {
		return errors.New("dist: sigma or mu overflow")
	}
	// The sampled integer i stays within k*sigma + mu of zero.
	if !(dn.isig <= maxint/kmax) {
		return errors.New("dist: possible overflow in result range")
	}
	absMu := dn.imu
	if absMu < 0 {
		absMu = -absMu
	}
	if !(absMu <= maxint-dn.isig*kmax) {
		return errors.New("dist: possible overflow in result range")
	}
	// The exact comparisons need sig*base*kmax and 2*base*kmax to be
	// representable.
	b := int64(dn.src.Base())
	s := dn.sig
	if s < 2 {
		s = 2
	}
	if !(s <= maxll/(b*kmax)) {
		return errors.New("dist: possible overflow in digit comparisons")
	}
	return nil
}

// Param returns the distribution parameters.
func (dn *DiscreteNormal) Param() *Params { return dn.param }

// Source returns the digit source the sampler draws from.
func (dn *DiscreteNormal) Source() digit.Source { return dn.src }

// Generate sets j to the next deviate as an i-rand, leaving the final
// uniform-within-interval choice unsampled until the value is
// actually demanded.
func (dn *DiscreteNormal) Generate(e engine.Engine, j *urand.IRand) error {
	for {
		k, err := dn.countHalves(e)
		if err != nil {
			return err
		}
		ok, err := dn.expNHalves(e, k*(k-1))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		// With sign s, the candidate integers are i = s*(i0 + j) for
		// j uniform in [0, ceil(sigma)), where s*i0 is the smallest
		// value with x = s*(i-mu)/sigma - k >= 0. In the scaled
		// integer arithmetic x = (xn0 + j*den)/sig.
		if err = j.Init(e, 2); err != nil {
			return err
		}
		sv, err := j.Value(e)
		if err != nil {
			return err
		}
		s := 1
		if sv != 0 {
			s = -1
		}
		xn0 := dn.sig*int64(k) + int64(s)*dn.mu
		i0 := iceil(xn0, dn.den)
		xn0 = i0*dn.den - xn0
		if err = j.Init(e, int64(dn.isig)); err != nil {
			return err
		}
		// When sigma is not an integer the largest j may push x past
		// 1; reject those. Reject also s = -1, k = 0, x = 0 which
		// duplicates s = +1, k = 0, x = 0.
		lt, err := j.LessThan(e, dn.sig-xn0, dn.den)
		if err != nil {
			return err
		}
		if !lt {
			continue
		}
		if k == 0 && s < 0 {
			gt, err := j.GreaterThan(e, -xn0, dn.den)
			if err != nil {
				return err
			}
			if !gt {
				continue
			}
		}
		accept := true
		for h := k + 1; h > 0; {
			h--
			ok, err = dn.reduce(e, k, xn0, j)
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
		j.Add(i0 + int64(s*dn.imu))
		if s < 0 {
			j.Negate()
		}
		return nil
	}
}

// Int samples the next deviate and resolves it to an int.
func (dn *DiscreteNormal) Int(e engine.Engine) (int, error) {
	if err := dn.Generate(e, dn.j); err != nil {
		return 0, err
	}
	v, err := dn.j.Value(e)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// reduce returns true with probability exp(-x*(2k+x)/(2k+2)) where
// x = (xn0 + den*j)/sig, the discrete counterpart of the continuous
// sampler's correction step.
func (dn *DiscreteNormal) reduce(e engine.Engine, k int, xn0 int64, j *urand.IRand) (bool, error) {
	n, m := 0, 2*k+2
	for ; ; n++ {
		f := 0
		var err error
		if k == 0 {
			f, err = dn.z.Init().Compare(e, 1, 2, int64(m))
			if err != nil {
				return false, err
			}
			if f < 0 {
				break
			}
		}
		dn.z.Init()
		var lt bool
		if n > 0 {
			lt, err = dn.z.LessThan(e, dn.y)
		} else {
			lt, err = dn.z.LessThanScaled(e, xn0, dn.den, dn.sig, j)
		}
		if err != nil {
			return false, err
		}
		if !lt {
			break
		}
		if k > 0 {
			f, err = dn.y.Init().Compare(e, 1, 2, int64(m))
			if err != nil {
				return false, err
			}
			if f < 0 {
				break
			}
		}
		if f == 0 {
			lt, err = dn.y.Init().LessThanScaled(e, xn0, dn.den, dn.sig, j)
			if err != nil {
				return false, err
			}
			if !lt {
				break
			}
		}
		dn.y.Swap(dn.z)
	}
	return n%2 == 0, nil
}
