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

// Package engine provides sources of uniform random 32-bit words.
//
// An Engine is the only randomness a sampler ever consumes. Every
// implementation must return values uniformly and independently
// distributed over the full 32-bit range on each call. The digit
// package adapts an Engine to digits in an arbitrary base.
//
// Engines are not safe for concurrent use; a sampling session owns
// its engine and lends it out one operation at a time.
package engine

// Engine is a source of uniformly distributed 32-bit words.
type Engine interface {
	// Uint32 returns the next word, uniform over [0, 2^32).
	Uint32() uint32
}
