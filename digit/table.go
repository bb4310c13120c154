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

package digit

import (
	"github.com/pkg/errors"

	"github.com/fentec-project/exrand/engine"
)

// Table is a base-10 digit source fed from a fixed string of decimal
// digits, e.g. digits transcribed from a published random number
// table. Unlike Gen it is exhaustible: once the string is consumed,
// Next returns ErrOutOfDigits.
type Table struct {
	digits string
	pos    int
	count  int64
}

// NewTable returns a tabulated source reading from digits, which must
// contain only the characters '0' through '9'.
func NewTable(digits string) (*Table, error) {
	t := &Table{}
	if err := t.Seed(digits); err != nil {
		return nil, err
	}
	return t, nil
}

// Seed replaces the digit string and rewinds the source. The digit
// count is not reset.
func (t *Table) Seed(digits string) error {
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return errors.Errorf("digit: invalid digit character %q", digits[i])
		}
	}
	t.digits = digits
	t.pos = 0
	return nil
}

// Next returns the next tabulated digit. The engine is ignored.
func (t *Table) Next(_ engine.Engine) (uint32, error) {
	if t.pos >= len(t.digits) {
		return 0, ErrOutOfDigits
	}
	d := uint32(t.digits[t.pos] - '0')
	t.pos++
	t.count++
	return d, nil
}

// Base returns 10.
func (t *Table) Base() uint32 { return 10 }

// Max returns 9.
func (t *Table) Max() uint32 { return 9 }

// Bits returns 4, the number of bits needed to hold a digit.
func (t *Table) Bits() int { return 4 }

// PowerOfTwo reports false.
func (t *Table) PowerOfTwo() bool { return false }

// Count returns the number of digits emitted so far.
func (t *Table) Count() int64 { return t.count }

// InvBase returns 0.1.
func (t *Table) InvBase() float64 { return 0.1 }

// Remaining returns the number of unread digits.
func (t *Table) Remaining() int { return len(t.digits) - t.pos }
