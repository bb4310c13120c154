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

// Package urand implements u-rands and i-rands, the lazily generated
// arbitrary-precision random deviates the exact sampling algorithms
// are built on.
//
// A u-rand represents s*(n + sum_k d_k b^-k-1 + b^-K U) where s is a
// sign, n a non-negative integer, the d_k are the base-b fractional
// digits generated so far and U stands for the uniform, still
// ungenerated tail. Comparisons between u-rands, or between a u-rand
// and a rational, generate new digits only until the comparison is
// decided, so no draw ever consumes more randomness than its result
// requires. An i-rand plays the same role for integers sampled
// uniformly from [0, m).
//
// A u-rand borrows a digit source for its whole life and borrows an
// engine per operation; it never owns either.
package urand

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/fentec-project/exrand/digit"
	"github.com/fentec-project/exrand/engine"
)

// URand is a lazily generated random real deviate. A fresh or Init-ed
// URand represents a number uniform in (0, 1); samplers then set the
// sign and integer part and append digits as their protocols demand.
// Once generated, a digit is immutable and is never regenerated.
type URand struct {
	s   int    // the sign, +1 or -1
	n   uint32 // the non-negative integer part
	d   []uint32
	src digit.Source
	b   int64 // the base
}

// NewURand returns a URand over src representing a deviate uniform in
// (0, 1).
func NewURand(src digit.Source) *URand {
	b := int64(src.Base())
	if b == 0 {
		b = 1 << 32
	}
	return &URand{s: 1, n: 0, src: src, b: b}
}

// Init resets the URand to the uniform (0, 1) state. It returns the
// receiver so comparisons can be chained, as in
// y.Init().LessThanHalf(e).
func (x *URand) Init() *URand {
	x.s = 1
	x.n = 0
	x.d = x.d[:0]
	return x
}

// Sign returns the sign of the deviate, +1 or -1.
func (x *URand) Sign() int { return x.s }

// Negate flips the sign of the deviate.
func (x *URand) Negate() { x.s = -x.s }

// Integer returns the unsigned integer part.
func (x *URand) Integer() uint32 { return x.n }

// SetInteger sets the integer part.
func (x *URand) SetInteger(n uint32) { x.n = n }

// NDigits returns the number of fractional digits generated so far.
func (x *URand) NDigits() int { return len(x.d) }

// Digit returns the k'th fractional digit, generating it and any
// earlier missing digits if necessary.
func (x *URand) Digit(e engine.Engine, k int) (uint32, error) {
	for i := len(x.d); i <= k; i++ {
		dg, err := x.src.Next(e)
		if err != nil {
			return 0, errors.Wrap(err, "cannot draw digit")
		}
		x.d = append(x.d, dg)
	}
	return x.d[k], nil
}

// RawDigit returns the k'th fractional digit, which must already be
// generated.
func (x *URand) RawDigit(k int) uint32 { return x.d[k] }

// SetRawDigit overwrites the k'th fractional digit, which must
// already be generated. It exists for the bit-optimized exponential
// sampler, which folds the rejection-count parity into digit zero.
func (x *URand) SetRawDigit(k int, v uint32) { x.d[k] = v }

// Swap exchanges the values of x and t. The digit source is not part
// of the swap; both must draw from the same source.
func (x *URand) Swap(t *URand) {
	if x == t {
		return
	}
	x.s, t.s = t.s, x.s
	x.n, t.n = t.n, x.n
	x.d, t.d = t.d, x.d
}

// LessThan reports whether x < t, generating one digit from each side
// at a time until the first disagreement.
func (x *URand) LessThan(e engine.Engine, t *URand) (bool, error) {
	if x == t {
		return false, nil
	}
	if x.s != t.s {
		return x.s < t.s, nil
	}
	if x.n != t.n {
		return (x.s < 0) != (x.n < t.n), nil
	}
	for k := 0; ; k++ {
		a, err := x.Digit(e, k)
		if err != nil {
			return false, err
		}
		b, err := t.Digit(e, k)
		if err != nil {
			return false, err
		}
		if a != b {
			return (x.s < 0) != (a < b), nil
		}
	}
}

// LessThanHalf reports whether x < 1/2.
func (x *URand) LessThanHalf(e engine.Engine) (bool, error) {
	if x.s < 0 {
		return true, nil
	}
	if x.n > 0 {
		return false, nil
	}
	return x.TruncateP(e, 0)
}

// TruncateP looks at the k'th and subsequent digits to decide whether
// a result cut at digit k-1 should be truncated toward zero (true) or
// rounded away from zero (false). For an even base a single digit
// decides.
func (x *URand) TruncateP(e engine.Engine, k int) (bool, error) {
	bm1 := x.src.Max()
	for ; ; k++ {
		d, err := x.Digit(e, k)
		if err != nil {
			return false, err
		}
		if d <= (bm1-1)/2 {
			return true, nil
		}
		if d > bm1/2 {
			return false, nil
		}
	}
}

// Compare compares x with the rational interval [u1/v, u2/v]. It
// returns -1 if x < u1/v, +1 if x > u2/v, and 0 otherwise, drawing
// digits only while the comparison is undecided. It requires v > 0
// and u2 > u1.
func (x *URand) Compare(e engine.Engine, u1, u2, v int64) (int, error) {
	s := int64(x.s)
	u1 = s*u1 - int64(x.n)*v
	if u1 < 0 {
		u1 = 0
	}
	u2 = s*u2 - int64(x.n)*v
	if u2 > v {
		u2 = v
	}
	for k := 0; ; k++ {
		if u1 >= v {
			return -x.s, nil // u1/v >= 1, so x < u1/v
		}
		if u2 <= 0 {
			return x.s, nil // u2/v <= 0, so x > u2/v
		}
		if u1 <= 0 && u2 >= v {
			return 0, nil
		}
		dg, err := x.Digit(e, k)
		if err != nil {
			return 0, err
		}
		d := int64(dg)
		u1 = u1*x.b - d*v
		if u1 < 0 {
			u1 = 0
		}
		u2 = u2*x.b - d*v
		if u2 > v {
			u2 = v
		}
	}
}

// LessThanScaled reports whether x < (u0 + h*c)/v where h is a
// not-necessarily-resolved i-rand, refining h only when the current
// uncertainty of h leaves the comparison undecided. It requires v > 0
// and c > 0.
func (x *URand) LessThanScaled(e engine.Engine, u0, c, v int64, h *IRand) (bool, error) {
	for {
		r, err := x.Compare(e, u0+h.Min()*c, u0+h.Max()*c, v)
		if err != nil {
			return false, err
		}
		if r < 0 {
			return true, nil
		}
		if r > 0 {
			return false, nil
		}
		if err := h.Refine(e); err != nil {
			return false, err
		}
	}
}

// RawRational returns the lower end of the range represented by the
// first k (already generated) fractional digits, as a numerator and
// denominator. The fraction is not reduced; the upper end of the
// range is (num+1)/den. To keep int64 arithmetic from overflowing the
// base must not exceed 256.
func (x *URand) RawRational(k int) (int64, int64, error) {
	if x.src.Max() > 0xff {
		return 0, 0, errors.New("urand: rational requires base 256 or less")
	}
	num, den := int64(x.n), int64(1)
	for j := 0; j < k; j++ {
		num = x.b*num + int64(x.d[j])
		den *= x.b
	}
	if x.s < 0 {
		num = -num - 1
	}
	return num, den, nil
}

// Rational generates digits up to index k-1 if necessary and returns
// the rational lower bound on the first k digits, as RawRational.
func (x *URand) Rational(e engine.Engine, k int) (int64, int64, error) {
	if k > 0 {
		if _, err := x.Digit(e, k-1); err != nil {
			return 0, 0, err
		}
	}
	return x.RawRational(k)
}

// Range returns float64 approximations of the lower and upper bounds
// of the range the u-rand is currently known to lie in.
func (x *URand) Range() (float64, float64) {
	v := x.src.InvBase()
	lo, w := 0.0, 1.0
	for k := len(x.d); k > 0; {
		k--
		lo = (float64(x.d[k]) + lo) * v
		w *= v
	}
	lo += float64(x.n)
	if x.s > 0 {
		return lo, lo + w
	}
	return -(lo + w), -lo
}

// Midpoint generates at least k fractional digits and returns the
// midpoint of the resulting range as a float64.
func (x *URand) Midpoint(e engine.Engine, k int) (float64, error) {
	if k > 0 {
		if _, err := x.Digit(e, k-1); err != nil {
			return 0, err
		}
	}
	lo, hi := x.Range()
	return (lo + hi) / 2, nil
}

// String prints the deviate to the digits generated so far, followed
// by an ellipsis marking the unresolved tail: sign, integer part, and
// '.'-separated fractional digits. Digits are printed in hexadecimal
// for bases above 10.
func (x *URand) String() string {
	return x.barePrint() + "..."
}

// PrintFixed rounds to k fractional digits and prints the result in
// fixed-point form, with a trailing "(+)" if the true value is larger
// than printed or "(-)" if it is smaller.
func (x *URand) PrintFixed(e engine.Engine, k int) (string, error) {
	trunc, err := x.TruncateP(e, k)
	if err != nil {
		return "", err
	}
	y := &URand{s: x.s, n: x.n, src: x.src, b: x.b}
	y.d = append(y.d, x.d[:k]...)
	if !trunc {
		// Propagate the round-away carry through the kept digits.
		bm1 := x.src.Max()
		carried := true
		for j := k; j > 0; {
			j--
			if y.d[j] < bm1 {
				y.d[j]++
				carried = false
				break
			}
			y.d[j] = 0
		}
		if carried {
			y.n++
		}
	}
	mark := "(+)"
	if !trunc {
		mark = "(-)"
	}
	return y.barePrint() + mark, nil
}

func (x *URand) barePrint() string {
	var sb strings.Builder
	if x.s < 0 {
		sb.WriteByte('-')
	} else {
		sb.WriteByte('+')
	}
	bits := x.src.Bits()
	if x.n == 0 || bits >= 4 {
		fmt.Fprintf(&sb, "%x", x.n)
	} else {
		// Decompose the integer part into base digits.
		var rev []byte
		n := x.n
		for n != 0 {
			rev = append(rev, "0123456789abcdef"[n%uint32(x.b)])
			n /= uint32(x.b)
		}
		for i := len(rev) - 1; i >= 0; i-- {
			sb.WriteByte(rev[i])
		}
	}
	if len(x.d) > 0 {
		sb.WriteByte('.')
	}
	w := (bits + 3) / 4
	for _, dg := range x.d {
		fmt.Fprintf(&sb, "%0*x", w, dg)
	}
	return sb.String()
}
