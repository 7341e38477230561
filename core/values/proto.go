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

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// FromProto converts a structpb.Value into a Value. Integral numbers within
// the int64 range become ints; nested lists and structs are kept as their
// compact JSON text.
func FromProto(pv *structpb.Value) Value {
	if pv == nil {
		return Null()
	}
	switch k := pv.GetKind().(type) {
	case *structpb.Value_NullValue:
		return Null()
	case *structpb.Value_StringValue:
		return String(k.StringValue)
	case *structpb.Value_BoolValue:
		return Bool(k.BoolValue)
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n == math.Trunc(n) && n >= math.MinInt64 && n <= math.MaxInt64 && !math.IsInf(n, 0) {
			return Int(int64(n))
		}
		return Float(n)
	case *structpb.Value_ListValue:
		return String(protojson.Format(k.ListValue))
	case *structpb.Value_StructValue:
		return String(protojson.Format(k.StructValue))
	}
	return Null()
}
