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

package dist_test

import (
	"math"
	"testing"

	"github.com/fentec-project/exrand/digit"
	"github.com/fentec-project/exrand/dist"
	"github.com/fentec-project/exrand/engine"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestDist_Params(t *testing.T) {
	p, err := dist.NewParams(2, 4, 6, 9)
	assert.NoError(t, err)
	assert.Equal(t, 1, p.MuNum())
	assert.Equal(t, 2, p.MuDen())
	assert.Equal(t, 2, p.SigmaNum())
	assert.Equal(t, 3, p.SigmaDen())
	assert.Equal(t, "1 2 2 3", p.String())

	p, err = dist.NewIntParams(-3, 5)
	assert.NoError(t, err)
	assert.Equal(t, -3, p.MuNum())
	assert.Equal(t, 1, p.MuDen())

	_, err = dist.NewParams(0, 1, 0, 1)
	assert.Error(t, err, "sigma must be positive")
	_, err = dist.NewParams(0, 1, -2, 1)
	assert.Error(t, err)
	_, err = dist.NewParams(1, -1, 1, 1)
	assert.Error(t, err, "denominators must be positive")
}

func TestDist_DiscreteNormalValidation(t *testing.T) {
	p, err := dist.NewIntParams(0, 1)
	assert.NoError(t, err)

	src, err := digit.NewGen(digit.Base32)
	assert.NoError(t, err)
	_, err = dist.NewDiscreteNormal(src, p)
	assert.Error(t, err, "base 2^32 exceeds the exact arithmetic range")

	src, err = digit.NewGen(1 << 16)
	assert.NoError(t, err)
	_, err = dist.NewDiscreteNormal(src, p)
	assert.NoError(t, err)

	// A sigma near the int range must be rejected up front rather
	// than overflow during sampling.
	big, err := dist.NewIntParams(0, math.MaxInt32)
	assert.NoError(t, err)
	_, err = dist.NewDiscreteNormal(src, big)
	assert.Error(t, err)
}

func TestDist_DiscreteNormalMoments(t *testing.T) {
	src, err := digit.NewGen(1 << 16)
	assert.NoError(t, err)
	p, err := dist.NewIntParams(5, 3)
	assert.NoError(t, err)
	dn, err := dist.NewDiscreteNormal(src, p)
	assert.NoError(t, err)
	e := engine.NewMT19937(12)

	n := 50000
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		x, err := dn.Int(e)
		assert.NoError(t, err)
		v := float64(x)
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	vari := sumSq/float64(n) - mean*mean
	assert.True(t, mean > 4.9 && mean < 5.1,
		"mean %f of the discrete normal distribution is off", mean)
	assert.True(t, vari > 8.5 && vari < 9.5,
		"variance %f of the discrete normal distribution is off", vari)
}

func TestDist_DiscreteNormalSmallSigma(t *testing.T) {
	// sigma = 1/2 concentrates most of the mass on mu; the exact
	// share is 1/(1 + 2exp(-2) + 2exp(-8) + ...), about 0.787.
	src, err := digit.NewGen(1 << 16)
	assert.NoError(t, err)
	p, err := dist.NewParams(7, 1, 1, 2)
	assert.NoError(t, err)
	dn, err := dist.NewDiscreteNormal(src, p)
	assert.NoError(t, err)
	e := engine.NewMT19937(13)

	counts := map[int]int{}
	n := 10000
	for i := 0; i < n; i++ {
		x, err := dn.Int(e)
		assert.NoError(t, err)
		counts[x]++
	}
	norm, _ := dist.DiscreteNormalNorm(p)
	want := dist.DiscreteNormalProb(p, 7, norm) * float64(n)
	assert.InDelta(t, want, float64(counts[7]), 250,
		"mass at mu is %d of %d", counts[7], n)
	for x := range counts {
		assert.True(t, x >= 4 && x <= 10, "implausible deviate %d", x)
	}
}

func TestDist_DiscreteNormalChiSquared(t *testing.T) {
	src, err := digit.NewGen(1 << 8)
	assert.NoError(t, err)
	p, err := dist.NewIntParams(0, 2)
	assert.NoError(t, err)
	dn, err := dist.NewDiscreteNormal(src, p)
	assert.NoError(t, err)
	e := engine.NewMT19937(14)

	n := 100000
	counts := map[int]int{}
	for i := 0; i < n; i++ {
		x, err := dn.Int(e)
		assert.NoError(t, err)
		counts[x]++
	}

	norm, _ := dist.DiscreteNormalNorm(p)
	// Pool the tails beyond |x| = 6, expected mass included, so every
	// bin has a healthy expected count.
	lo, hi := -6, 6
	stat := 0.0
	for x := lo; x <= hi; x++ {
		expected := dist.DiscreteNormalProb(p, x, norm) * float64(n)
		observed := float64(counts[x])
		if x == lo {
			for y := -60; y < lo; y++ {
				expected += dist.DiscreteNormalProb(p, y, norm) * float64(n)
			}
			for y := range counts {
				if y < lo {
					observed += float64(counts[y])
				}
			}
		}
		if x == hi {
			for y := hi + 1; y <= 60; y++ {
				expected += dist.DiscreteNormalProb(p, y, norm) * float64(n)
			}
			for y := range counts {
				if y > hi {
					observed += float64(counts[y])
				}
			}
		}
		stat += (observed - expected) * (observed - expected) / expected
	}
	limit := distuv.ChiSquared{K: float64(hi - lo)}.Quantile(0.999)
	assert.True(t, stat < limit,
		"chi-squared statistic %f exceeds the 99.9%% quantile %f", stat, limit)
}
