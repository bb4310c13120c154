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
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Auxiliary functions for the distributions sampled by this package.
// They support goodness-of-fit testing and cost accounting and play
// no part in sampling itself.

// CumulativeUniform returns the probability that a unit uniform
// deviate is below x.
func CumulativeUniform(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x < 1:
		return x
	default:
		return 1
	}
}

// CumulativeExponential returns the probability that a unit
// exponential deviate is below x.
func CumulativeExponential(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return -math.Expm1(-x)
}

// CumulativeNormal returns the probability that a unit normal deviate
// lies in (0, x); it is antisymmetric about x = 0.
func CumulativeNormal(x float64) float64 {
	return distuv.UnitNormal.CDF(x) - 0.5
}

// UniformEntropy returns the entropy of the unit uniform
// distribution.
func UniformEntropy() float64 { return 0 }

// ExponentialEntropy returns the entropy of the unit exponential
// distribution.
func ExponentialEntropy() float64 { return 1 }

// NormalEntropy returns the entropy of the unit normal distribution.
func NormalEntropy() float64 { return math.Log(2*math.Pi)/2 + 0.5 }

// UniformMeanExponent returns the mean binary exponent of a unit
// uniform deviate in floating point form.
func UniformMeanExponent() float64 { return -1 }

// ExponentialMeanExponent returns the mean binary exponent of a unit
// exponential deviate in floating point form.
func ExponentialMeanExponent() float64 {
	z := 0.0
	y0 := CumulativeExponential(0)
	for k := -53; ; k++ {
		y1 := CumulativeExponential(math.Pow(2, float64(k)))
		z += float64(k) * (y1 - y0)
		if !(y1 < 1) {
			break
		}
		y0 = y1
	}
	return z
}

// NormalMeanExponent returns the mean binary exponent of a unit
// normal deviate in floating point form.
func NormalMeanExponent() float64 {
	z := 0.0
	// Doubled to cover the negative half as well.
	y0 := 2 * CumulativeNormal(0)
	for k := -40; ; k++ {
		y1 := 2 * CumulativeNormal(math.Pow(2, float64(k)))
		z += float64(k) * (y1 - y0)
		if !(y1 < 1) {
			break
		}
		y0 = y1
	}
	return z
}

// DiscreteNormalProb returns the probability of drawing i from the
// discrete normal distribution with parameters p, divided by norm.
// With norm = 1 the probability is unnormalized.
func DiscreteNormalProb(p *Params, i int, norm float64) float64 {
	mu := float64(p.MuNum()) / float64(p.MuDen())
	sigma := float64(p.SigmaNum()) / float64(p.SigmaDen())
	x := (float64(i) - mu) / sigma
	return math.Exp(-x*x/2) / norm
}

// DiscreteNormalNorm returns the normalizing constant of the discrete
// normal distribution with parameters p together with its entropy.
func DiscreteNormalNorm(p *Params) (norm, entropy float64) {
	imu := p.MuNum() / p.MuDen()
	isig := (p.SigmaNum() + p.SigmaDen() - 1) / p.SigmaDen()
	if isig < 10 {
		s, h := 0.0, 0.0
		for i := imu - 10*isig; i < imu+10*isig; i++ {
			pr := DiscreteNormalProb(p, i, 1)
			s += pr
			if pr > 0 {
				h -= pr * math.Log(pr)
			}
		}
		return s, h/s + math.Log(s)
	}
	// The continuous approximation is very accurate for wide
	// distributions.
	sigma := float64(p.SigmaNum()) / float64(p.SigmaDen())
	norm = math.Sqrt(2*math.Pi) * sigma
	return norm, math.Log(norm) + 0.5
}
