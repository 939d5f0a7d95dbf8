package ingredient

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// glyphs maps the two-digit remainder of an amount to its display suffix.
// Only quarters get a glyph; every other remainder stays a decimal.
var glyphs = map[string]string{
	"00": "",
	"25": " ¼",
	"50": " ½",
	"75": " ¾",
}

// Format scales the leading quantity of line and renders it back, converting
// the unit to metric when metric is set and the unit is known. Lines without a
// readable quantity are returned unchanged.
func Format(line string, scale float64, metric bool) string {
	q, ok := ParseQuantity(line)
	if !ok {
		return line
	}

	amount := q.Amount * scale

	if metric {
		unit, item := splitUnit(q.Rest)
		if conv, ok := LookupUnit(unit); ok {
			converted := roundHalfUp(amount * conv.Factor)
			return joinNonEmpty(formatWhole(converted), conv.Target, item)
		}
	}

	return joinNonEmpty(FormatAmount(amount), q.Rest)
}

// FormatAll formats every line with the same scale and unit system. The
// result has the same length and order as lines.
func FormatAll(lines []string, scale float64, metric bool) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line, scale, metric)
	}
	return out
}

// FormatAmount renders a quantity for display: whole numbers as integers,
// quarters with a fraction glyph ("1 ½", "¾") and anything else with two
// decimals.
func FormatAmount(amount float64) string {
	if amount == 0 {
		amount = 0 // drop the sign of -0
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount == math.Trunc(amount) {
		return formatWhole(amount)
	}

	// Round the exact binary value, not its shortest decimal form, so 2.675
	// (stored as 2.67499...) renders 2.67.
	s := decimal.NewFromFloatWithExponent(amount, exactExponent).StringFixed(2)
	if whole, frac, ok := strings.Cut(s, "."); ok {
		if glyph, ok := glyphs[frac]; ok {
			s = whole + glyph
		}
	}
	return strings.TrimPrefix(s, "0 ")
}

// exactExponent is below the smallest binary exponent of a float64, which
// makes NewFromFloatWithExponent keep every digit of the value.
const exactExponent = -1100

// formatWhole renders integral and non-finite values the way a browser would
// print the number: "Infinity", "NaN" and exponent notation from 1e21 up.
func formatWhole(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// roundHalfUp rounds to the nearest integer, ties toward +Inf.
func roundHalfUp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}
	return r
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
