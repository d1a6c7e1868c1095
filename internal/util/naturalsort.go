package util

import (
	"regexp"
	"sort"
	"strings"
)

var tokenizer = regexp.MustCompile(`(\d+|\D+)`)

type naturalSortToken struct {
	text  string
	isNum bool
}

// tokenize splits s into digit and non-digit runs. Digit runs keep their
// text without leading zeros so ids longer than an int still compare.
func tokenize(s string) []naturalSortToken {
	parts := tokenizer.FindAllString(s, -1)
	tokens := make([]naturalSortToken, len(parts))
	for i, p := range parts {
		if p[0] >= '0' && p[0] <= '9' {
			digits := strings.TrimLeft(p, "0")
			if digits == "" {
				digits = "0"
			}
			tokens[i] = naturalSortToken{text: digits, isNum: true}
		} else {
			tokens[i] = naturalSortToken{text: strings.ToLower(p)}
		}
	}
	return tokens
}

func compareNumeric(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// NaturalSortLess reports whether s1 sorts before s2 when digit runs are
// compared by value and everything else case-insensitively.
func NaturalSortLess(s1, s2 string) bool {
	t1 := tokenize(s1)
	t2 := tokenize(s2)

	for i := 0; i < min(len(t1), len(t2)); i++ {
		a, b := t1[i], t2[i]
		// A number sorts before text at the same position.
		if a.isNum != b.isNum {
			return a.isNum
		}
		var c int
		if a.isNum {
			c = compareNumeric(a.text, b.text)
		} else {
			c = strings.Compare(a.text, b.text)
		}
		if c != 0 {
			return c < 0
		}
	}
	return len(t1) < len(t2)
}

// SortNatural sorts names in place in natural order. Names that compare
// equal keep their relative order.
func SortNatural(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return NaturalSortLess(names[i], names[j])
	})
}
