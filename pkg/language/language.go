// Package language enumerates strings related to a word or an alphabet:
// substrings, prefixes, suffixes and bounded Kleene closures.
//
// Every function returns a lazy iter.Seq, so callers can stop early or
// stream very large closures without materializing them. Strings are
// handled rune by rune.
package language

import (
	"iter"
	"unicode"
)

// Substrings yields every non-empty contiguous substring of s, grouped by
// start position and then by increasing length. Repeated substrings are
// yielded each time they occur.
func Substrings(s string) iter.Seq[string] {
	runes := []rune(s)
	return func(yield func(string) bool) {
		for i := range runes {
			for j := i + 1; j <= len(runes); j++ {
				if !yield(string(runes[i:j])) {
					return
				}
			}
		}
	}
}

// Prefixes yields the len(s)+1 prefixes of s, from "" to s.
func Prefixes(s string) iter.Seq[string] {
	runes := []rune(s)
	return func(yield func(string) bool) {
		for i := 0; i <= len(runes); i++ {
			if !yield(string(runes[:i])) {
				return
			}
		}
	}
}

// Suffixes yields the len(s)+1 suffixes of s, from s to "".
func Suffixes(s string) iter.Seq[string] {
	runes := []rune(s)
	return func(yield func(string) bool) {
		for i := 0; i <= len(runes); i++ {
			if !yield(string(runes[i:])) {
				return
			}
		}
	}
}

// KleeneStar yields every word over alphabet of length 0 through maxLen.
// Words come in increasing length, and within one length in lexicographic
// order of the alphabet as given. A negative maxLen yields only "".
func KleeneStar(alphabet []string, maxLen int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield("") {
			return
		}
		for length := 1; length <= maxLen; length++ {
			if !words(alphabet, length, yield) {
				return
			}
		}
	}
}

// KleenePlus is KleeneStar without the empty word.
func KleenePlus(alphabet []string, maxLen int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for length := 1; length <= maxLen; length++ {
			if !words(alphabet, length, yield) {
				return
			}
		}
	}
}

// words yields all words of exactly length symbols using an odometer over
// symbol indexes. It reports false when the consumer stopped.
func words(alphabet []string, length int, yield func(string) bool) bool {
	if len(alphabet) == 0 {
		return true
	}

	idx := make([]int, length)
	buf := make([]byte, 0, length*4)
	for {
		buf = buf[:0]
		for _, i := range idx {
			buf = append(buf, alphabet[i]...)
		}
		if !yield(string(buf)) {
			return false
		}

		pos := length - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(alphabet) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return true
		}
	}
}

// ParseAlphabet turns free text into an alphabet: each distinct
// non-whitespace rune, in order of first appearance.
func ParseAlphabet(s string) []string {
	var out []string
	seen := make(map[rune]bool)
	for _, r := range s {
		if unicode.IsSpace(r) || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, string(r))
	}
	return out
}

// Count returns the number of words KleeneStar would yield, or -1 when the
// count overflows an int.
func Count(alphabetSize, maxLen int) int {
	if maxLen < 0 {
		return 1
	}
	total, term := 1, 1
	for i := 1; i <= maxLen; i++ {
		if alphabetSize != 0 && term > (int(^uint(0)>>1)-total)/alphabetSize {
			return -1
		}
		term *= alphabetSize
		total += term
	}
	return total
}
