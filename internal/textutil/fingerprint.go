package textutil

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const minTokenRunes = 2

// Fingerprint represents a term-frequency vector for text similarity comparison.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint creates a fingerprint from the provided text.
// Returns nil if the text produces no valid tokens.
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return newFingerprint(counts)
}

func newFingerprint(weights map[string]float64) *Fingerprint {
	var norm float64
	for _, w := range weights {
		norm += w * w
	}
	return &Fingerprint{tokens: weights, norm: math.Sqrt(norm)}
}

// Tokenize case-folds text and splits it into letter/digit runs, dropping
// single-rune tokens.
func Tokenize(text string) []string {
	folded := cases.Fold().String(text)
	raw := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if utf8.RuneCountInString(token) < minTokenRunes {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// TokenCount returns the number of unique tokens in the fingerprint.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.tokens)
}

// WithIDF returns a new Fingerprint with TF-IDF weights applied.
// Terms absent from the IDF map retain their original weight.
func (f *Fingerprint) WithIDF(idf map[string]float64) *Fingerprint {
	if f == nil || len(idf) == 0 {
		return f
	}
	weighted := make(map[string]float64, len(f.tokens))
	for token, count := range f.tokens {
		w := count
		if idfVal, ok := idf[token]; ok {
			w *= idfVal
		}
		weighted[token] = w
	}
	return newFingerprint(weighted)
}

// Corpus collects document frequency statistics for IDF computation.
type Corpus struct {
	docCount int
	docFreq  map[string]int
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{docFreq: make(map[string]int)}
}

// Add registers a fingerprint's unique terms in the corpus.
func (c *Corpus) Add(fp *Fingerprint) {
	if c == nil || fp == nil {
		return
	}
	c.docCount++
	for token := range fp.tokens {
		c.docFreq[token]++
	}
}

// IDF computes smoothed inverse document frequency weights,
// 1 + log((N+1)/(1+df)), so a term present in every document keeps weight 1.
func (c *Corpus) IDF() map[string]float64 {
	if c == nil || c.docCount == 0 {
		return nil
	}
	idf := make(map[string]float64, len(c.docFreq))
	n := float64(c.docCount)
	for term, df := range c.docFreq {
		idf[term] = 1 + math.Log((n+1)/(1+float64(df)))
	}
	return idf
}
