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
	"github.com/fentec-project/exrand/digit"
	"github.com/fentec-project/exrand/engine"
	"github.com/fentec-project/exrand/urand"
)

// Uniform samples deviates from the unit uniform distribution,
// P(x) = 1 for 0 < x < 1. A fresh u-rand already is such a deviate,
// so generation is trivial; the work happens when the deviate is
// rounded.
type Uniform struct {
	src digit.Source
	x   *urand.URand
}

// NewUniform returns a unit uniform sampler drawing digits from src.
func NewUniform(src digit.Source) *Uniform {
	return &Uniform{src: src, x: urand.NewURand(src)}
}

// Generate sets x to a fresh unit uniform deviate.
func (u *Uniform) Generate(x *urand.URand) {
	x.Init()
}

// Float64 returns a unit uniform deviate correctly rounded to the
// nearest float64.
func (u *Uniform) Float64(e engine.Engine) (float64, error) {
	u.x.Init()
	v, _, err := u.x.Float64(e, urand.ToNearest)
	return v, err
}

// Source returns the digit source the sampler draws from.
func (u *Uniform) Source() digit.Source { return u.src }
