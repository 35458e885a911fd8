package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"tunevault/internal/model"
)

// ArtistCount is the number of customers following artists with one name.
type ArtistCount struct {
	Name  string
	Count int
}

// SongCount is the number of playlist entries referencing a song.
type SongCount struct {
	Song  *model.Song
	Count int
}

// MostFollowedArtists counts follows by artist name, highest first. Ties
// are ordered by name.
func (c *Catalog) MostFollowedArtists() []ArtistCount {
	counts := make(map[string]int)
	for _, customer := range c.customers {
		for _, artist := range customer.Info().FollowedArtists() {
			counts[artist.Name]++
		}
	}
	out := make([]ArtistCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, ArtistCount{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b ArtistCount) int {
		if n := cmp.Compare(b.Count, a.Count); n != 0 {
			return n
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// MostAddedSongs counts playlist entries per song across every playlist,
// highest first. Ties keep first-seen order.
func (c *Catalog) MostAddedSongs() []SongCount {
	return countSongs(c.playLists, nil)
}

// TopSongOfArtist returns the artist's song with the most playlist entries.
func (c *Catalog) TopSongOfArtist(artistID uuid.UUID) (SongCount, error) {
	artist, err := c.ArtistByID(artistID)
	if err != nil {
		return SongCount{}, err
	}
	counts := countSongs(c.playLists, func(s *model.Song) bool { return s.HasArtist(artistID) })
	if len(counts) == 0 {
		return SongCount{}, model.Wrap(model.ErrNotFound, "catalog", "top song",
			fmt.Sprintf("no playlist contains a song by %s", artist.Name), nil)
	}
	return counts[0], nil
}

func countSongs(playLists []*model.PlayList, keep func(*model.Song) bool) []SongCount {
	index := make(map[uuid.UUID]int)
	var out []SongCount
	for _, pl := range playLists {
		for _, song := range pl.Songs {
			if keep != nil && !keep(song) {
				continue
			}
			if i, ok := index[song.ID]; ok {
				out[i].Count++
				continue
			}
			index[song.ID] = len(out)
			out = append(out, SongCount{Song: song, Count: 1})
		}
	}
	slices.SortStableFunc(out, func(a, b SongCount) int { return cmp.Compare(b.Count, a.Count) })
	return out
}
