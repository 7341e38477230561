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

// Package values defines the cell value model shared by rows, columns and the
// table engine. A Value is a small sum type so that rows can carry typed data
// without reflection.
package values

import (
	"math"
	"strconv"
	"time"
)

// Kind identifies the dynamic type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindDatetime
	KindDuration
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDatetime:
		return "datetime"
	case KindDuration:
		return "duration"
	default:
		return "unknown"
	}
}

// Value is an immutable cell value. The zero Value is null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Datetime returns a point in time.
func Datetime(t time.Time) Value { return Value{kind: KindDatetime, t: t} }

// Duration returns a duration value, stored as nanoseconds.
func Duration(d time.Duration) Value { return Value{kind: KindDuration, i: int64(d)} }

// Of converts a Go value into a Value. Unsupported types fall back to their
// fmt representation through the Stringer interface when available, or null.
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return String(x)
	case []byte:
		return String(string(x))
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		if x > math.MaxInt64 {
			return Float(float64(x))
		}
		return Int(int64(x))
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case bool:
		return Bool(x)
	case time.Time:
		return Datetime(x)
	case time.Duration:
		return Duration(x)
	case interface{ String() string }:
		return String(x.String())
	}
	return Null()
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumeric reports whether the value is an int or a float.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// AsString returns the string payload, or "" for other kinds.
func (v Value) AsString() string { return v.s }

// AsInt returns the value as an int64. Floats are truncated.
func (v Value) AsInt() int64 {
	switch v.kind {
	case KindInt, KindDuration:
		return v.i
	case KindFloat:
		return int64(v.f)
	case KindBool:
		if v.b {
			return 1
		}
	}
	return 0
}

// AsFloat returns the value as a float64. Non numeric kinds return 0.
func (v Value) AsFloat() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	}
	return 0
}

// AsBool returns the boolean payload.
func (v Value) AsBool() bool { return v.kind == KindBool && v.b }

// AsTime returns the datetime payload.
func (v Value) AsTime() time.Time { return v.t }

// AsDuration returns the duration payload.
func (v Value) AsDuration() time.Duration { return time.Duration(v.i) }

// Text returns the textual form used for searching and raw export.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDatetime:
		if v.t.IsZero() {
			return ""
		}
		h, m, s := v.t.Clock()
		if h == 0 && m == 0 && s == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format(time.DateOnly)
		}
		return v.t.Format(time.DateTime)
	case KindDuration:
		return time.Duration(v.i).String()
	}
	return ""
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Text() }
