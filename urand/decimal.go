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
	"math/big"

	"github.com/db47h/decimal"
	"github.com/pkg/errors"

	"github.com/fentec-project/exrand/engine"
)

// Decimal converts the u-rand to a *decimal.Decimal of the given
// precision in decimal digits, with the chosen rounding. The target
// radix is 10, so the u-rand must use base 10; each generated digit
// then maps to one decimal digit of the result. The returned flag has
// the same meaning as for Float64.
func (x *URand) Decimal(e engine.Engine, rnd Rounding, prec uint) (*decimal.Decimal, int, error) {
	if x.src.Base() != 10 {
		return nil, 0, errors.New("urand: decimal conversion requires base 10")
	}
	if prec == 0 {
		return nil, 0, errors.New("urand: precision must be positive")
	}

	flag := roundFlag(rnd, x.s)

	// Position of the leading decimal digit, counting so that 0.5
	// has position 0.
	var lead int
	if x.n != 0 {
		n := x.n
		for n != 0 {
			lead++
			n /= 10
		}
	} else {
		i := 0
		for {
			di, err := x.Digit(e, i)
			if err != nil {
				return nil, 0, err
			}
			if di != 0 || i >= scanLimit {
				break
			}
			i++
		}
		if x.d[i] != 0 {
			lead = 1
		}
		lead -= i + 1
	}

	trail := lead - int(prec)
	if flag == 0 {
		var dig uint32
		if trail > 0 {
			n := x.n
			for t := 1; t < trail; t++ {
				n /= 10
			}
			dig = n % 10
		} else {
			dk, err := x.Digit(e, -trail)
			if err != nil {
				return nil, 0, err
			}
			dig = dk
		}
		if dig < 5 {
			flag = -1
		} else {
			flag = 1
		}
	}

	// Assemble the kept digits into an exact integer coefficient m,
	// so the result is (m + carry) * 10^trail.
	m := new(big.Int)
	ten := big.NewInt(10)
	if trail >= 0 {
		n := x.n
		for t := 0; t < trail; t++ {
			n /= 10
		}
		m.SetUint64(uint64(n))
	} else {
		k := -trail - 1
		if _, err := x.Digit(e, k); err != nil {
			return nil, 0, err
		}
		m.SetUint64(uint64(x.n))
		w := new(big.Int)
		for j := 0; j <= k; j++ {
			m.Mul(m, ten)
			m.Add(m, w.SetUint64(uint64(x.d[j])))
		}
	}
	if flag > 0 {
		m.Add(m, big.NewInt(1))
	}

	z := new(decimal.Decimal).SetPrec(prec + 20).SetInt(m)
	z.SetMantExp(z, trail)
	z.SetPrec(prec)
	if x.s < 0 {
		z.Neg(z)
	}
	flag *= x.s
	return z, flag, nil
}
