package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"tunevault/internal/model"
	"tunevault/internal/textutil"
)

// Match kinds returned by Search.
const (
	MatchArtist   = "artist"
	MatchSong     = "song"
	MatchPlayList = "playlist"
)

// Match is one search hit. Score is the cosine similarity in (0, 1].
type Match struct {
	Kind  string
	ID    uuid.UUID
	Name  string
	Score float64
}

type searchDoc struct {
	kind        string
	id          uuid.UUID
	name        string
	fingerprint *textutil.Fingerprint
}

// Search ranks artists, songs and playlists against query. Songs are matched
// on their name, album and artist names. At most limit matches are returned;
// a limit of zero or less returns every match.
func (c *Catalog) Search(query string, limit int) []Match {
	q := textutil.NewFingerprint(query)
	if q == nil {
		return nil
	}

	docs := make([]searchDoc, 0, len(c.artists)+len(c.songs)+len(c.playLists))
	for _, a := range c.artists {
		docs = append(docs, searchDoc{kind: MatchArtist, id: a.ID, name: a.Name, fingerprint: textutil.NewFingerprint(a.Name)})
	}
	for _, s := range c.songs {
		text := strings.Join([]string{s.Name, s.Album, joinArtistNames(s.Artists)}, " ")
		docs = append(docs, searchDoc{kind: MatchSong, id: s.ID, name: s.Name, fingerprint: textutil.NewFingerprint(text)})
	}
	for _, pl := range c.playLists {
		docs = append(docs, searchDoc{kind: MatchPlayList, id: pl.ID, name: pl.Name, fingerprint: textutil.NewFingerprint(pl.Name)})
	}

	corpus := textutil.NewCorpus()
	for _, doc := range docs {
		corpus.Add(doc.fingerprint)
	}
	idf := corpus.IDF()
	q = q.WithIDF(idf)

	var matches []Match
	for _, doc := range docs {
		score := textutil.CosineSimilarity(q, doc.fingerprint.WithIDF(idf))
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Kind: doc.kind, ID: doc.id, Name: doc.name, Score: score})
	}
	slices.SortStableFunc(matches, func(a, b Match) int { return cmp.Compare(b.Score, a.Score) })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func joinArtistNames(artists []*model.Artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, " ")
}
