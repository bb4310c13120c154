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

// Package dist provides samplers that draw exactly from the unit
// uniform, unit exponential, unit normal and discrete normal
// distributions.
//
// Exactly means that the samplers consume random digits only until
// the deviate is pinned down to the requested precision, and that the
// distribution of results is the true distribution with no rounding
// bias. The continuous samplers produce lazy deviates of type
// urand.URand which can then be rounded in any direction to any
// precision; the discrete sampler produces a urand.IRand holding an
// integer. All samplers are deterministic functions of the digit
// stream, so two runs with the same engine seed yield the same
// deviates.
package dist
