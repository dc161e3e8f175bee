// Package tokenizer implements index.Tokenizer over real HTML documents:
// goquery strips markup, golang.org/x/text folds accents away, and
// go-porterstemmer reduces English words to a common stem. Text with no
// ASCII letters (CJK scripts, mostly) falls back to the character n-gram
// splitter in tokenizer/fulltext.
package tokenizer

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/reiver/go-porterstemmer"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dannyswat/htmlidx/index"
	"github.com/dannyswat/htmlidx/tokenizer/fulltext"
)

// cjkNGramSize is the n passed to fulltext.NGram for words with no ASCII
// letters. NGram splits Han runs into bigrams whatever n is, so this size
// only applies to runs of ASCII digits inside such words.
const cjkNGramSize = 3

// accentFolder strips combining diacritical marks after Unicode
// decomposition: "café" becomes "cafe" so query and document forms match
// regardless of how a page happened to encode the accent.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Cleaner is the default Tokenizer: strip HTML, split on non-letter runes,
// fold accents, stem English words, and n-gram everything else.
type Cleaner struct{}

// NewCleaner returns a ready-to-use Cleaner. It holds no state, so one
// instance can be shared across goroutines or a new one made per call;
// either way it is passed explicitly rather than reached for as package
// state.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

var _ index.Tokenizer = (*Cleaner)(nil)

// Tokenize strips script/style content and markup from the raw document
// and splits its visible text into raw tokens. CJK runs (no ASCII
// letters, no word boundaries to split on) are n-grammed here rather
// than left whole, since that decision is about how to split the
// document, not about cleaning an individual token; Preprocess passes
// an n-gram through unchanged. A document goquery can't parse yields no
// tokens rather than an error, matching the Tokenizer contract.
func (c *Cleaner) Tokenize(document []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(document))
	if err != nil {
		return nil
	}
	doc.Find("script, style, noscript").Remove()

	// Collect each text node separately so that words in adjacent elements
	// ("<h1>Title</h1><p>Hello") are not glued together.
	var text strings.Builder
	doc.Find("*").Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			text.WriteString(s.Text())
			text.WriteByte(' ')
		}
	})

	var raw []string
	for _, word := range splitWords(text.String()) {
		if hasASCIILetter(strings.ToLower(word)) {
			raw = append(raw, word)
			continue
		}
		raw = append(raw, fulltext.NGram(strings.ToLower(word), cjkNGramSize)...)
	}
	return raw
}

// Preprocess lower-cases and accent-folds rawToken, then either stems it
// (English words, after stopword filtering) or passes it through as-is
// (n-grams from Tokenize's CJK fallback, which need no further cleaning).
func (c *Cleaner) Preprocess(rawToken string) (string, bool) {
	lower := strings.ToLower(foldAccents(rawToken))
	if lower == "" {
		return "", false
	}
	if !hasASCIILetter(lower) {
		return lower, true
	}
	if englishStopwords[lower] {
		return "", false
	}
	return porterstemmer.StemString(lower), true
}

// splitWords breaks text on runs of non-letter, non-digit runes. Script
// boundaries (Latin vs Han, say) are not split here; Tokenize decides per
// word whether to stem or n-gram it.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func foldAccents(word string) string {
	folded, _, err := transform.String(accentFolder, word)
	if err != nil {
		return word
	}
	return folded
}

// Terms runs a Tokenizer's full two-phase pipeline over document: Tokenize
// splits it into raw tokens, then Preprocess cleans or drops each one.
// Builder and evaluator both call this rather than invoking the two
// phases separately, so neither can accidentally skip one.
func Terms(tok index.Tokenizer, document []byte) []string {
	raw := tok.Tokenize(document)
	terms := make([]string, 0, len(raw))
	for _, r := range raw {
		if term, ok := tok.Preprocess(r); ok {
			terms = append(terms, term)
		}
	}
	return terms
}

// hasASCIILetter reports whether word contains at least one a-z letter,
// the signal used to route it to the stemmer instead of the n-gram
// fallback.
func hasASCIILetter(word string) bool {
	for _, r := range word {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}
