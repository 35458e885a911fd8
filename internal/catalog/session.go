package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"tunevault/internal/logging"
	"tunevault/internal/model"
)

// Session carries the logged-in customer through customer actions.
type Session struct {
	catalog  *Catalog
	customer model.Customer
}

// Login authenticates a customer. Unknown usernames and wrong passwords both
// fail with ErrWrongCredentials.
func (c *Catalog) Login(username, password string) (*Session, error) {
	i := c.customerIndex(username)
	if i < 0 || !c.customers[i].Info().CheckPassword(password) {
		logging.WarnWithContext(c.logger, "login rejected", "login_failed",
			logging.String(logging.FieldUsername, username),
			logging.String(logging.FieldErrorHint, "check the username and password"),
			logging.String(logging.FieldImpact, "customer actions are unavailable"))
		return nil, model.Wrap(model.ErrWrongCredentials, "catalog", "login", "invalid username or password", nil)
	}
	c.logger.Debug("customer logged in", logging.String(logging.FieldUsername, username))
	return &Session{catalog: c, customer: c.customers[i]}, nil
}

// Customer returns the logged-in customer.
func (s *Session) Customer() (model.Customer, error) {
	if err := s.check("customer"); err != nil {
		return nil, err
	}
	return s.customer, nil
}

// Logout ends the session. Later calls fail with ErrNotLoggedIn.
func (s *Session) Logout() {
	s.customer = nil
}

// check fails when the session ended or its customer was deleted.
func (s *Session) check(operation string) error {
	if s == nil || s.customer == nil {
		return model.Wrap(model.ErrNotLoggedIn, "session", operation, "no customer is logged in", nil)
	}
	if s.catalog.customerIndex(s.customer.Info().Username) < 0 {
		s.customer = nil
		return model.Wrap(model.ErrNotLoggedIn, "session", operation, "the customer no longer exists", nil)
	}
	return nil
}

// NewPlayList creates a playlist owned by the customer. Regular customers
// already own their only playlist and get ErrPlayListLimit.
func (s *Session) NewPlayList(name string) (uuid.UUID, error) {
	if err := s.check("new playlist"); err != nil {
		return uuid.Nil, err
	}
	pl, err := model.NewPlayList(name)
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.customer.AddPlayList(pl); err != nil {
		return uuid.Nil, err
	}
	s.catalog.playLists = append(s.catalog.playLists, pl)
	s.catalog.logger.Info("playlist created",
		logging.String(logging.FieldUsername, s.customer.Info().Username),
		logging.Stringer(logging.FieldEntityID, pl.ID),
		logging.String("name", pl.Name))
	return pl.ID, nil
}

// ownPlayList returns the customer's playlist with id or ErrNotFound.
func (s *Session) ownPlayList(id uuid.UUID, operation string) (*model.PlayList, error) {
	for _, pl := range s.customer.PlayLists() {
		if pl.ID == id {
			return pl, nil
		}
	}
	return nil, model.Wrap(model.ErrNotFound, "session", operation,
		fmt.Sprintf("playlist %s is not owned by %s", id, s.customer.Info().Username), nil)
}

// AddSongToPlayList appends a catalog song to one of the customer's playlists.
func (s *Session) AddSongToPlayList(playListID, songID uuid.UUID) error {
	if err := s.check("add song"); err != nil {
		return err
	}
	pl, err := s.ownPlayList(playListID, "add song")
	if err != nil {
		return err
	}
	song, err := s.catalog.SongByID(songID)
	if err != nil {
		return err
	}
	pl.AddSong(song)
	s.catalog.logger.Info("song added to playlist",
		logging.Stringer(logging.FieldEntityID, pl.ID),
		logging.Stringer("song_id", song.ID))
	return nil
}

// RemoveSongFromPlayList removes every occurrence of the song from one of the
// customer's playlists.
func (s *Session) RemoveSongFromPlayList(playListID, songID uuid.UUID) error {
	if err := s.check("remove song"); err != nil {
		return err
	}
	pl, err := s.ownPlayList(playListID, "remove song")
	if err != nil {
		return err
	}
	if !pl.RemoveSong(songID) {
		return model.Wrap(model.ErrNotFound, "session", "remove song",
			fmt.Sprintf("song %s is not in playlist %s", songID, pl.Name), nil)
	}
	s.catalog.logger.Info("song removed from playlist",
		logging.Stringer(logging.FieldEntityID, pl.ID),
		logging.Stringer("song_id", songID))
	return nil
}

// Follow adds a catalog artist to the customer's followed set.
func (s *Session) Follow(artistID uuid.UUID) error {
	if err := s.check("follow"); err != nil {
		return err
	}
	artist, err := s.catalog.ArtistByID(artistID)
	if err != nil {
		return err
	}
	if !s.customer.Info().Follow(artist) {
		return model.Wrap(model.ErrAlreadyExists, "session", "follow",
			fmt.Sprintf("%s already follows %s", s.customer.Info().Username, artist.Name), nil)
	}
	s.catalog.logger.Info("artist followed",
		logging.String(logging.FieldUsername, s.customer.Info().Username),
		logging.Stringer(logging.FieldEntityID, artist.ID))
	return nil
}

// Unfollow removes an artist from the customer's followed set.
func (s *Session) Unfollow(artistID uuid.UUID) error {
	if err := s.check("unfollow"); err != nil {
		return err
	}
	if !s.customer.Info().Unfollow(artistID) {
		return model.Wrap(model.ErrNotFound, "session", "unfollow",
			fmt.Sprintf("%s does not follow %s", s.customer.Info().Username, artistID), nil)
	}
	return nil
}

func (s *Session) PlayLists() ([]*model.PlayList, error) {
	if err := s.check("playlists"); err != nil {
		return nil, err
	}
	return s.customer.PlayLists(), nil
}

func (s *Session) FollowedArtists() ([]*model.Artist, error) {
	if err := s.check("followed artists"); err != nil {
		return nil, err
	}
	return s.customer.Info().FollowedArtists(), nil
}

// Play returns the playback line of every song in one of the customer's
// playlists, in playlist order.
func (s *Session) Play(playListID uuid.UUID) ([]string, error) {
	if err := s.check("play"); err != nil {
		return nil, err
	}
	pl, err := s.ownPlayList(playListID, "play")
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(pl.Songs))
	for _, song := range pl.Songs {
		lines = append(lines, song.Play())
	}
	return lines, nil
}
