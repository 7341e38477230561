/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package values

import (
	"math"
	"strings"
	"time"
)

// Compare orders two values. It returns -1 if a < b, 0 if equal and 1 if a > b.
//
// Null sorts before everything. Ints and floats compare numerically with each
// other and NaN sorts after all other numbers. Values of the same kind compare
// natively. Any other mix of kinds compares the text forms.
func Compare(a, b Value) int {
	if a.kind == KindNull || b.kind == KindNull {
		switch {
		case a.kind == b.kind:
			return 0
		case a.kind == KindNull:
			return -1
		default:
			return 1
		}
	}

	if a.kind == KindInt && b.kind == KindInt {
		return compareInts(a.i, b.i)
	}
	if a.IsNumeric() && b.IsNumeric() {
		return compareFloat64s(a.AsFloat(), b.AsFloat())
	}

	if a.kind == b.kind {
		switch a.kind {
		case KindString:
			return strings.Compare(a.s, b.s)
		case KindBool:
			return compareBools(a.b, b.b)
		case KindDatetime:
			return compareTimes(a.t, b.t)
		case KindDuration:
			return compareInts(a.i, b.i)
		}
	}

	return strings.Compare(a.Text(), b.Text())
}

// Equal reports whether two values compare equal.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

func compareInts(a, b int64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// compareTimes compares two time.Time values
func compareTimes(a, b time.Time) int {
	if a.Before(b) {
		return -1
	}
	if a.After(b) {
		return 1
	}
	return 0
}

// compareBools compares two bool values (false < true)
func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0
	}
	if aNaN {
		return 1
	}
	if bNaN {
		return -1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
