// Package textutil scores free-text queries against catalog names.
//
// Text is case-folded and split on anything that is not a letter or digit.
// Tokens shorter than two runes are dropped. A Fingerprint is the resulting
// term-frequency vector; CosineSimilarity compares two of them, and a Corpus
// supplies IDF weights so common words such as "the" count for less.
package textutil
