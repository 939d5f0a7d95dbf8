// Package ingredient scales and re-renders free-form ingredient lines such as
// "1 1/2 cups flour". Nothing in this package returns an error: a line whose
// quantity cannot be read is handed back untouched.
package ingredient

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Quantity is the leading amount of an ingredient line and the text after it.
type Quantity struct {
	Amount float64
	Rest   string
}

// ParseQuantity splits line into its leading quantity and the remaining text.
// It reports false when the line does not start with a readable amount.
func ParseQuantity(line string) (Quantity, bool) {
	end := quantityPrefixLen(line)
	if end == 0 {
		return Quantity{}, false
	}

	amountStr := strings.TrimSpace(line[:end])
	rest := line[end:]

	var amount float64
	if strings.Contains(amountStr, "/") {
		amount = sumTokens(amountStr)
	} else {
		amount = parseLeadingFloat(amountStr)
	}
	if math.IsNaN(amount) {
		return Quantity{}, false
	}

	return Quantity{Amount: amount, Rest: rest}, true
}

// quantityPrefixLen returns the byte length of the leading run of digits,
// dots, slashes and whitespace.
func quantityPrefixLen(line string) int {
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if !isQuantityRune(r) {
			break
		}
		i += size
	}
	return i
}

func isQuantityRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.' || r == '/' || unicode.IsSpace(r)
}

// sumTokens adds up whitespace separated tokens, so "1 1/2" reads as 1.5 and
// "1/2 1/4" as 0.75. Tabs and non-breaking spaces separate tokens too. Tokens
// that cannot be read count as zero.
func sumTokens(amountStr string) float64 {
	var total float64
	for _, token := range strings.Fields(amountStr) {
		if strings.Contains(token, "/") {
			total += fraction(token)
			continue
		}
		if v := parseLeadingFloat(token); !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// fraction evaluates "a/b". A zero, missing or unreadable denominator, or an
// unreadable numerator, yields 0.
func fraction(token string) float64 {
	halves := strings.Split(token, "/")
	num, ok := strictFloat(halves[0])
	if !ok {
		return 0
	}
	den, ok := strictFloat(halves[1])
	if !ok || den == 0 {
		return 0
	}
	return num / den
}

// strictFloat parses the whole string as a decimal number. An empty string
// reads as zero.
func strictFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// parseLeadingFloat reads the longest decimal number at the start of s
// ("1.5.2" is 1.5, "2 3" is 2). It returns NaN when s holds no digits there.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end, digits, seenDot := 0, 0, false
scan:
	for ; end < len(s); end++ {
		switch c := s[end]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !seenDot:
			seenDot = true
		default:
			break scan
		}
	}
	if digits == 0 {
		return math.NaN()
	}

	// Overlong digit runs overflow to +Inf, which is kept.
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}
