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

package engine

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/crypto/salsa20"
)

const salsa20BlockLen = 64

// Salsa20 is a deterministic engine producing the key stream of the
// salsa20 cipher for a fixed 32-byte key. Equal keys produce equal
// streams, which makes it suitable for reproducible sampling with
// cryptographic quality randomness.
type Salsa20 struct {
	key   [32]byte
	block uint64
	buf   [salsa20BlockLen]byte
	pos   int
}

// NewSalsa20 returns a deterministic engine keyed with key.
func NewSalsa20(key *[32]byte) *Salsa20 {
	e := &Salsa20{key: *key, pos: salsa20BlockLen}
	return e
}

// NewCrypto returns a Salsa20 engine keyed with 32 bytes drawn from
// crypto/rand, for callers that want a non-reproducible stream.
func NewCrypto() (*Salsa20, error) {
	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, errors.Wrap(err, "cannot generate engine key")
	}
	return NewSalsa20(&key), nil
}

// Uint32 returns the next word of the key stream.
func (e *Salsa20) Uint32() uint32 {
	if e.pos >= salsa20BlockLen {
		var nonce [8]byte
		binary.LittleEndian.PutUint64(nonce[:], e.block)
		for i := range e.buf {
			e.buf[i] = 0
		}
		salsa20.XORKeyStream(e.buf[:], e.buf[:], nonce[:], &e.key)
		e.block++
		e.pos = 0
	}
	v := binary.LittleEndian.Uint32(e.buf[e.pos:])
	e.pos += 4
	return v
}
