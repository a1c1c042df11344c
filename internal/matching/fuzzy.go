package matching

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// tokenSetRatio returns a 0-100 similarity between two strings, ignoring
// token order and duplicated tokens. A string whose tokens are a subset of
// the other's scores 100.
func tokenSetRatio(a, b string) float64 {
	ta := tokenize(a)
	tb := tokenize(b)

	inter, onlyA, onlyB := partition(ta, tb)

	base := strings.Join(inter, " ")
	combinedA := joinNonEmpty(base, strings.Join(onlyA, " "))
	combinedB := joinNonEmpty(base, strings.Join(onlyB, " "))

	best := ratio(base, combinedA)
	if r := ratio(base, combinedB); r > best {
		best = r
	}
	if r := ratio(combinedA, combinedB); r > best {
		best = r
	}

	return best
}

// ratio is a plain edit-distance similarity over the longer of the two
// strings.
func ratio(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}

	distance := levenshtein.ComputeDistance(a, b)
	return (1 - float64(distance)/float64(longest)) * 100
}

// tokenize lowercases the input and splits it into a sorted, deduplicated
// token list.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if seen[field] {
			continue
		}
		seen[field] = true
		tokens = append(tokens, field)
	}

	sort.Strings(tokens)
	return tokens
}

func partition(a, b []string) (inter, onlyA, onlyB []string) {
	inB := make(map[string]bool, len(b))
	for _, token := range b {
		inB[token] = true
	}

	inInter := make(map[string]bool)
	for _, token := range a {
		if inB[token] {
			inter = append(inter, token)
			inInter[token] = true
		} else {
			onlyA = append(onlyA, token)
		}
	}

	for _, token := range b {
		if !inInter[token] {
			onlyB = append(onlyB, token)
		}
	}

	return inter, onlyA, onlyB
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}
