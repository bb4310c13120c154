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
	"fmt"

	"github.com/pkg/errors"

	"github.com/fentec-project/exrand/digit"
	"github.com/fentec-project/exrand/engine"
)

// IRand is an integer sampled uniformly from [0, m) but not yet fully
// resolved: it represents a contiguous range [Min, Max] whose width is
// a power of the digit base, narrowed by one base-division per extra
// digit drawn.
//
// The sampling method is Lumbroso's algorithm (arXiv:1304.1916)
// generalized to an arbitrary digit base, with the extra property
// that Init stops drawing digits as soon as the remaining range is a
// power of the base. For base 2 and m = 9, right after Init the IRand
// holds
//
//	range prob
//	[0,8) 32/63
//	[0,2)  2/21
//	[2,6)  4/21
//	[6,8)  2/21
//	[8,9)  1/9
//
// Entropy reports how many further digits are needed to pin the value
// down; comparisons against a rational draw digits only while they
// cannot yet be decided.
type IRand struct {
	src digit.Source
	b   int64 // the base
	a   int64 // current range is a + [0, d)
	d   int64 // d = b^l
	l   int   // digits still needed to resolve
}

// NewIRand returns an IRand over src, initialized to the integer 0.
func NewIRand(src digit.Source) *IRand {
	b := int64(src.Base())
	if b == 0 {
		b = 1 << 32
	}
	return &IRand{src: src, b: b, a: 0, d: 1, l: 0}
}

// Init draws a new integer uniform in [0, m), consuming only as many
// digits as needed to narrow the range to a power of the base. An m
// less than 1 is treated as 1.
func (h *IRand) Init(e engine.Engine, m int64) error {
	if m <= 0 {
		m = 1
	}
	for v, c := int64(1), int64(0); ; {
		h.l = 0
		// Play out the algorithm without drawing digits, with w in the
		// role of v and c represented by the range [a, a+d). Stop once
		// both ends of the range map to the same return value;
		// otherwise draw another digit and retry.
		for w, a, d := v, c, int64(1); ; {
			if w >= m {
				j := (a / m) * m
				a -= j
				w -= j
				if w >= m {
					if a+d <= m {
						h.a, h.d = a, d
						return nil
					}
					break
				}
			}
			w *= h.b
			a *= h.b
			d *= h.b
			h.l++
		}
		j := (v / m) * m
		v -= j
		c -= j
		v *= h.b
		c *= h.b
		dg, err := h.src.Next(e)
		if err != nil {
			return errors.Wrap(err, "cannot draw digit")
		}
		c += int64(dg)
	}
}

// Value draws enough digits to resolve the integer and returns it.
func (h *IRand) Value(e engine.Engine) (int64, error) {
	for h.l > 0 {
		if err := h.Refine(e); err != nil {
			return 0, err
		}
	}
	return h.a, nil
}

// Min returns the current lower end of the closed range.
func (h *IRand) Min() int64 { return h.a }

// Max returns the current upper end of the closed range.
func (h *IRand) Max() int64 { return h.a + h.d - 1 }

// Entropy returns the number of digits still needed to resolve the
// value.
func (h *IRand) Entropy() int { return h.l }

// Negate negates the range in place.
func (h *IRand) Negate() { h.a = -h.Max() }

// Add shifts the range by the constant c.
func (h *IRand) Add(c int64) { h.a += c }

// Refine draws one digit, dividing the width of the range by the
// base. It is a no-op on a fully resolved value.
func (h *IRand) Refine(e engine.Engine) error {
	if h.l <= 0 {
		return nil
	}
	h.l--
	h.d /= h.b
	dg, err := h.src.Next(e)
	if err != nil {
		return errors.Wrap(err, "cannot draw digit")
	}
	h.a += int64(dg) * h.d
	return nil
}

// LessThan reports whether the sampled integer is less than m/n,
// refining the range only while the comparison is undecided. n must
// be positive.
func (h *IRand) LessThan(e engine.Engine, m, n int64) (bool, error) {
	for {
		if n*h.Max() < m {
			return true, nil
		}
		if n*h.Min() >= m {
			return false, nil
		}
		if err := h.Refine(e); err != nil {
			return false, err
		}
	}
}

// LessThanEqual reports whether the sampled integer is at most m/n.
func (h *IRand) LessThanEqual(e engine.Engine, m, n int64) (bool, error) {
	return h.LessThan(e, m+1, n)
}

// GreaterThan reports whether the sampled integer is greater than m/n.
func (h *IRand) GreaterThan(e engine.Engine, m, n int64) (bool, error) {
	le, err := h.LessThanEqual(e, m, n)
	if err != nil {
		return false, err
	}
	return !le, nil
}

// GreaterThanEqual reports whether the sampled integer is at least m/n.
func (h *IRand) GreaterThanEqual(e engine.Engine, m, n int64) (bool, error) {
	lt, err := h.LessThan(e, m, n)
	if err != nil {
		return false, err
	}
	return !lt, nil
}

// String formats the range as min+[0,width), or as the value itself
// once the entropy is zero.
func (h *IRand) String() string {
	if h.l > 0 {
		return fmt.Sprintf("%d+[0,%d)", h.Min(), h.Max()-h.Min()+1)
	}
	return fmt.Sprintf("%d", h.Min())
}
