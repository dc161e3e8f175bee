// Package fulltext splits raw text into index terms for scripts that don't
// tokenize on whitespace. It is a fallback for the common case, handled
// elsewhere, of English text with clean word boundaries: Han runs get
// split into overlapping character n-grams (bigrams, specifically, since
// that's what gives reasonable recall for Chinese without a dictionary),
// runs of ASCII letters and digits get size-n windows, and characters of
// any other script (kana, Hangul, accented Latin) are discarded as
// separators.
package fulltext

import "unicode"

// chineseNGramSize is fixed at 2 regardless of the n passed to NGram:
// Chinese words are mostly one or two characters, so bigrams already give
// good substring recall without a segmentation dictionary.
const chineseNGramSize = 2

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "will": true, "with": true,
}

type wordUnit struct {
	text    string
	chinese bool
}

// isEnglishChar reports whether r is an ASCII letter or digit.
func isEnglishChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// isChineseChar reports whether r is a Han ideograph.
func isChineseChar(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// extractWordUnits splits text into runs of English (letters/digits) or
// Chinese (Han) characters, discarding everything else as a separator.
// English runs are lower-cased and dropped entirely if they are a stop
// word.
func extractWordUnits(text string) []wordUnit {
	var units []wordUnit
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		switch {
		case isEnglishChar(runes[i]):
			start := i
			for i < len(runes) && isEnglishChar(runes[i]) {
				i++
			}
			word := toLowerASCII(string(runes[start:i]))
			if !stopWords[word] {
				units = append(units, wordUnit{text: word})
			}
		case isChineseChar(runes[i]):
			start := i
			for i < len(runes) && isChineseChar(runes[i]) {
				i++
			}
			units = append(units, wordUnit{text: string(runes[start:i]), chinese: true})
		default:
			i++
		}
	}
	return units
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// extractWords is extractWordUnits with the script classification dropped,
// useful when a caller just wants plain word tokens (English, lower-cased
// and stop-word filtered, interleaved with Chinese runs verbatim).
func extractWords(text string) []string {
	units := extractWordUnits(text)
	words := make([]string, len(units))
	for i, u := range units {
		words[i] = u.text
	}
	return words
}

// NGram splits input into overlapping character n-grams of size n for
// English words long enough to support them, word-length tokens for
// shorter English words, and fixed-size bigrams for Chinese runs
// regardless of n. Stop words are dropped as whole words before
// n-gramming; a window of a longer word can still equal a stop word
// ("other" yields "the").
func NGram(input string, n int) []string {
	if n <= 0 {
		return nil
	}
	var grams []string
	for _, u := range extractWordUnits(input) {
		size := n
		if u.chinese {
			size = chineseNGramSize
		}
		grams = append(grams, slidingWindows(u.text, size)...)
	}
	return grams
}

// slidingWindows returns every size-rune window of word, or word itself if
// it is shorter than size.
func slidingWindows(word string, size int) []string {
	runes := []rune(word)
	if len(runes) < size {
		return []string{word}
	}
	windows := make([]string, 0, len(runes)-size+1)
	for i := 0; i <= len(runes)-size; i++ {
		windows = append(windows, string(runes[i:i+size]))
	}
	return windows
}
