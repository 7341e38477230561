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

package columns

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/google/tabula/core/rows"
	"github.com/google/tabula/core/values"
)

// ErrUnknownFormat is returned by Named for an unregistered formatter name.
var ErrUnknownFormat = errors.New("unknown column format")

// Taka formats numbers as Bangladeshi Taka using lakh/crore grouping and two
// decimals, e.g. ৳12,34,567.50. Non numeric values are shown as is.
func Taka() Formatter {
	return FormatterFunc(func(v values.Value, _ rows.Row) string {
		if !v.IsNumeric() {
			return v.Text()
		}
		return FormatTaka(v.AsFloat())
	})
}

// FormatTaka formats an amount using the South Asian numbering system: after
// the rightmost 3 digits, digits are grouped in pairs.
func FormatTaka(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(raw, ".")

	result := "৳" + groupLakh(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

func groupLakh(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}

// Number formats numbers with the grouping and decimal separators of the
// given language.
func Number(tag language.Tag, decimals int) Formatter {
	verb := fmt.Sprintf("%%.%df", decimals)
	return FormatterFunc(func(v values.Value, _ rows.Row) string {
		if !v.IsNumeric() {
			return v.Text()
		}
		return message.NewPrinter(tag).Sprintf(verb, v.AsFloat())
	})
}

// Percent formats a number that already holds a percentage (12.5 -> "12.5%").
func Percent(decimals int) Formatter {
	return FormatterFunc(func(v values.Value, _ rows.Row) string {
		if !v.IsNumeric() {
			return v.Text()
		}
		return fmt.Sprintf("%.*f%%", decimals, v.AsFloat())
	})
}

// Date formats datetimes, and strings holding an ISO date, with layout.
func Date(layout string) Formatter {
	return FormatterFunc(func(v values.Value, _ rows.Row) string {
		switch v.Kind() {
		case values.KindDatetime:
			if v.AsTime().IsZero() {
				return ""
			}
			return v.AsTime().Format(layout)
		case values.KindString:
			for _, in := range []string{time.DateOnly, time.DateTime, time.RFC3339} {
				if t, err := time.Parse(in, v.AsString()); err == nil {
					return t.Format(layout)
				}
			}
		}
		return v.Text()
	})
}

// Labels maps raw values to display labels, falling back to the raw text.
func Labels(labels map[string]string) Formatter {
	return FormatterFunc(func(v values.Value, _ rows.Row) string {
		if l, ok := labels[v.Text()]; ok {
			return l
		}
		return v.Text()
	})
}

// YesNo shows booleans as Yes/No.
func YesNo() Formatter {
	return FormatterFunc(func(v values.Value, _ rows.Row) string {
		if v.Kind() != values.KindBool {
			return v.Text()
		}
		if v.AsBool() {
			return "Yes"
		}
		return "No"
	})
}

// Converted multiplies numbers by a static rate before handing them to inner,
// e.g. a SAR amount shown in Taka. A nil inner shows the converted number.
func Converted(rate float64, inner Formatter) Formatter {
	return FormatterFunc(func(v values.Value, row rows.Row) string {
		if v.IsNumeric() {
			v = values.Float(v.AsFloat() * rate)
		}
		if inner == nil {
			return v.Text()
		}
		return inner.Format(v, row)
	})
}

// Upper shows the value text in upper case.
func Upper() Formatter {
	caser := cases.Upper(language.Und)
	return FormatterFunc(func(v values.Value, _ rows.Row) string {
		return caser.String(v.Text())
	})
}

// Named resolves a formatter by the name used in configuration files. The
// empty name resolves to nil (raw value).
func Named(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "raw":
		return nil, nil
	case "taka", "bdt":
		return Taka(), nil
	case "number":
		return Number(language.English, 0), nil
	case "decimal":
		return Number(language.English, 2), nil
	case "percent":
		return Percent(1), nil
	case "date":
		return Date("02 Jan 2006"), nil
	case "datetime":
		return Date("02 Jan 2006 15:04"), nil
	case "upper":
		return Upper(), nil
	case "yesno":
		return YesNo(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}
