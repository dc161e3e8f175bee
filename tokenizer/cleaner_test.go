package tokenizer

import (
	"testing"

	"github.com/reiver/go-porterstemmer"
	"github.com/stretchr/testify/assert"
)

func TestCleaner_TokenizeStripsMarkup(t *testing.T) {
	c := NewCleaner()
	html := []byte(`<html><head><style>body{color:red}</style></head>
<body><h1>Title</h1><p>Hello <b>world</b></p><script>alert(1)</script></body></html>`)

	raw := c.Tokenize(html)
	assert.Contains(t, raw, "Title")
	assert.Contains(t, raw, "Hello")
	assert.Contains(t, raw, "world")
	assert.NotContains(t, raw, "alert")
	assert.NotContains(t, raw, "color")
}

func TestCleaner_PreprocessStemsAndFiltersStopwords(t *testing.T) {
	c := NewCleaner()
	raw := c.Tokenize([]byte("The quick brown foxes are jumping"))

	var terms []string
	for _, r := range raw {
		if term, ok := c.Preprocess(r); ok {
			terms = append(terms, term)
		}
	}

	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "are")
	assert.Contains(t, terms, "quick")
	assert.Contains(t, terms, "fox", "foxes should stem down to fox")
	assert.Contains(t, terms, "jump", "jumping should stem down to jump")
}

func TestCleaner_PreprocessFoldsAccents(t *testing.T) {
	c := NewCleaner()
	term, ok := c.Preprocess("café")
	assert.True(t, ok)
	assert.Equal(t, porterstemmer.StemString("cafe"), term)
}

func TestCleaner_TokenizeFallsBackToNGramsForCJK(t *testing.T) {
	c := NewCleaner()
	raw := c.Tokenize([]byte("你好世界"))
	assert.NotEmpty(t, raw)
	for _, token := range raw {
		assert.False(t, hasASCIILetter(token))
		term, ok := c.Preprocess(token)
		assert.True(t, ok)
		assert.Equal(t, token, term, "n-grams pass through Preprocess unchanged")
	}
}

func TestCleaner_TokenizeEmptyDocument(t *testing.T) {
	c := NewCleaner()
	assert.Empty(t, c.Tokenize([]byte("")))
	assert.Empty(t, c.Tokenize([]byte("   ")))
}

func TestCleaner_PreprocessRejectsEmptyToken(t *testing.T) {
	c := NewCleaner()
	_, ok := c.Preprocess("")
	assert.False(t, ok)
}

func TestTerms_ComposesBothPhases(t *testing.T) {
	c := NewCleaner()
	terms := Terms(c, []byte("<p>The quick cat jumps</p>"))
	assert.NotContains(t, terms, "the")
	assert.Contains(t, terms, "quick")
	assert.Contains(t, terms, "cat")
	assert.Contains(t, terms, "jump")
}
