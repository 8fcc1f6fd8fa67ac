package analyzer

import "strings"

// isSnakeCase reports whether name is already valid snake_case, using
// the same (deliberately non-splitting) notion of "word boundary" as
// toSnakeCase below: a run of uppercase letters is treated as a single
// word, so `XMLParser` is considered one word and normalizes to
// `xmlparser`, not `xml_parser`. This differs from ToSnakeCase in
// internal/util/strings/case.go, which splits acronyms (`xml_parser`);
// the naming-warning check keeps the narrower rule since `type`
// declarations doing the reverse (PascalCase) need the same rule to stay
// consistent in both directions.
func isSnakeCase(name string) bool {
	return name == toSnakeCase(name)
}

// toSnakeCase lower-cases a name and inserts '_' only at a
// lowercase-to-uppercase or digit-to-letter transition, never splitting
// a run of consecutive uppercase letters. This is a narrower, simpler
// rule than a "proper" acronym-aware snake_case conversion; see above.
func toSnakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && isUpperRune(r) && !isUpperRune(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(toLowerRune(r))
	}
	return b.String()
}

// toPascalCase upper-cases the first letter of each '_'-delimited
// segment and joins them, the inverse of toSnakeCase for the common
// case (round-trips for any name that was already proper snake_case).
func toPascalCase(name string) string {
	segs := strings.Split(name, "_")
	var b strings.Builder
	for _, seg := range segs {
		if seg == "" {
			continue
		}
		r := []rune(seg)
		b.WriteRune(toUpperRune(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

func isPascalCase(name string) bool {
	if name == "" {
		return false
	}
	r := []rune(name)
	return isUpperRune(r[0]) && name == toPascalCase(toSnakeCase(name))
}

func isUpperRune(r rune) bool { return r >= 'A' && r <= 'Z' }
func toLowerRune(r rune) rune {
	if isUpperRune(r) {
		return r + ('a' - 'A')
	}
	return r
}
func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// levenshteinWithin1 reports whether a and b differ by at most one
// single-character edit (insertion, deletion, or substitution), the
// threshold used for "did you mean" hints.
func levenshteinWithin1(a, b string) bool {
	if a == b {
		return false
	}
	la, lb := len(a), len(b)
	if la > lb {
		a, b = b, a
		la, lb = lb, la
	}
	if lb-la > 1 {
		return false
	}
	i, j, edits := 0, 0, 0
	for i < la && j < lb {
		if a[i] == b[j] {
			i++
			j++
			continue
		}
		edits++
		if edits > 1 {
			return false
		}
		if la == lb {
			i++
			j++
		} else {
			j++
		}
	}
	if j < lb {
		edits += lb - j
	}
	return edits <= 1
}

// didYouMean scans candidates for one within edit distance 1 of name,
// returning it and true, or "" and false if none qualify.
func didYouMean(name string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if levenshteinWithin1(name, c) {
			return c, true
		}
	}
	return "", false
}
