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
	"github.com/fentec-project/exrand/engine"
	"github.com/fentec-project/exrand/urand"
)

// halfBernoulli implements the Bernoulli trials with probability
// exp(-1/2) that drive the rejection steps of the normal samplers.
// The trials run von Neumann's alternating comparison on a pair of
// scratch u-rands; the same scratch pair is shared with the caller's
// other rejection steps, which is safe because each step reinitializes
// the u-rand it draws on.
type halfBernoulli struct {
	y, z *urand.URand
}

// expHalf returns true with probability exp(-1/2).
func (r *halfBernoulli) expHalf(e engine.Engine) (bool, error) {
	lt, err := r.y.Init().LessThanHalf(e)
	if err != nil {
		return false, err
	}
	if !lt {
		return true, nil
	}
	for {
		lt, err = r.z.Init().LessThan(e, r.y)
		if err != nil {
			return false, err
		}
		if !lt {
			return false, nil
		}
		lt, err = r.y.Init().LessThan(e, r.z)
		if err != nil {
			return false, err
		}
		if !lt {
			return true, nil
		}
	}
}

// countHalves returns k >= 0 with probability exp(-k/2)*(1-exp(-1/2)).
func (r *halfBernoulli) countHalves(e engine.Engine) (int, error) {
	k := 0
	for {
		ok, err := r.expHalf(e)
		if err != nil {
			return 0, err
		}
		if !ok {
			return k, nil
		}
		k++
	}
}

// expNHalves returns true with probability exp(-n/2).
func (r *halfBernoulli) expNHalves(e engine.Engine, n int) (bool, error) {
	for ; n > 0; n-- {
		ok, err := r.expHalf(e)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
