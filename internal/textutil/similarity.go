package textutil

// CosineSimilarity scores how close two fingerprints are. Catalog search ranks
// artists, songs and playlists by this score against the query fingerprint.
// Weights are never negative, so the result lies in [0, 1]; it is 0 when
// either fingerprint is nil, empty or the two share no token.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, weight := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += weight * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}
