package index

// Tokenizer turns a raw document body into a normalized stream of index
// terms, in two phases. It is passed explicitly to whatever builds a
// corpus (a CLI command, a test) rather than held as shared package
// state, so two callers can index the same corpus differently without
// stepping on each other.
type Tokenizer interface {
	// Tokenize strips markup and boilerplate from document and splits
	// what remains into raw tokens: not yet lower-cased, stemmed, or
	// checked against a stopword list.
	Tokenize(document []byte) []string

	// Preprocess cleans or rejects a single raw token: lower-cases,
	// folds accents, stems it, and filters stopwords. ok is false when
	// the token should be dropped from the index entirely.
	Preprocess(rawToken string) (string, bool)
}
