package catalog_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"tunevault/internal/model"
)

func TestLoginRejectsWrongCredentials(t *testing.T) {
	c, f := newFixtureCatalog(t)

	if _, err := c.Login(f.Premium.Username, "wrong"); !errors.Is(err, model.ErrWrongCredentials) {
		t.Fatalf("wrong password error = %v, want ErrWrongCredentials", err)
	}
	if _, err := c.Login("nobody_here", "Passw0rd!"); !errors.Is(err, model.ErrWrongCredentials) {
		t.Fatalf("unknown user error = %v, want ErrWrongCredentials", err)
	}
	s, err := c.Login(f.Premium.Username, "Passw0rd!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got, _ := s.Customer(); got != f.Premium {
		t.Fatalf("session customer = %v, want premium fixture", got)
	}
}

func TestSessionNewPlayListRespectsVariant(t *testing.T) {
	c, f := newFixtureCatalog(t)

	regular, err := c.Login(f.Regular.Username, "Passw0rd!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	before := len(c.PlayLists())
	if _, err := regular.NewPlayList("Another"); !errors.Is(err, model.ErrPlayListLimit) {
		t.Fatalf("regular NewPlayList error = %v, want ErrPlayListLimit", err)
	}
	if len(c.PlayLists()) != before {
		t.Fatal("rejected playlist must not be registered")
	}

	premium, _ := c.Login(f.Premium.Username, "Passw0rd!")
	id, err := premium.NewPlayList("Road trip")
	if err != nil {
		t.Fatalf("premium NewPlayList: %v", err)
	}
	pl, err := c.PlayListByID(id)
	if err != nil {
		t.Fatalf("new playlist not registered: %v", err)
	}
	owned, _ := premium.PlayLists()
	if len(owned) != 2 || owned[1] != pl {
		t.Fatalf("premium playlists = %v", owned)
	}
}

func TestSessionEditsOnlyOwnPlayLists(t *testing.T) {
	c, f := newFixtureCatalog(t)
	regular, _ := c.Login(f.Regular.Username, "Passw0rd!")
	own := f.Regular.PlayListIDs()[0]

	if err := regular.AddSongToPlayList(f.Mix.ID, f.KarmaPolice.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("foreign playlist error = %v, want ErrNotFound", err)
	}
	if err := regular.AddSongToPlayList(own, uuid.New()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("unknown song error = %v, want ErrNotFound", err)
	}
	if err := regular.AddSongToPlayList(own, f.KarmaPolice.ID); err != nil {
		t.Fatalf("AddSongToPlayList: %v", err)
	}

	lines, err := regular.Play(own)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	want := []string{f.NoSurprises.Play(), f.KarmaPolice.Play()}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("Play = %v, want %v", lines, want)
	}
	if _, err := regular.Play(f.Mix.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Play foreign playlist error = %v, want ErrNotFound", err)
	}

	if err := regular.RemoveSongFromPlayList(own, f.NoSurprises.ID); err != nil {
		t.Fatalf("RemoveSongFromPlayList: %v", err)
	}
	if err := regular.RemoveSongFromPlayList(own, f.NoSurprises.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("second remove error = %v, want ErrNotFound", err)
	}
}

func TestSessionFollow(t *testing.T) {
	c, f := newFixtureCatalog(t)
	s, _ := c.Login(f.Regular.Username, "Passw0rd!")

	if err := s.Follow(f.Radiohead.ID); !errors.Is(err, model.ErrAlreadyExists) {
		t.Fatalf("repeat follow error = %v, want ErrAlreadyExists", err)
	}
	if err := s.Follow(uuid.New()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("unknown artist error = %v, want ErrNotFound", err)
	}
	if err := s.Follow(f.Bjork.ID); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	followed, _ := s.FollowedArtists()
	if len(followed) != 2 || followed[1] != f.Bjork {
		t.Fatalf("followed = %v", followed)
	}
	if err := s.Unfollow(f.Bjork.ID); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	if err := s.Unfollow(f.Bjork.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("second Unfollow error = %v, want ErrNotFound", err)
	}
}

func TestSessionEndsOnLogoutOrDeletion(t *testing.T) {
	c, f := newFixtureCatalog(t)

	s, _ := c.Login(f.Premium.Username, "Passw0rd!")
	s.Logout()
	if _, err := s.PlayLists(); !errors.Is(err, model.ErrNotLoggedIn) {
		t.Fatalf("after logout error = %v, want ErrNotLoggedIn", err)
	}

	s, _ = c.Login(f.Premium.Username, "Passw0rd!")
	if err := c.DeleteCustomer(f.Premium.Username); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	if err := s.Follow(f.Bjork.ID); !errors.Is(err, model.ErrNotLoggedIn) {
		t.Fatalf("after delete error = %v, want ErrNotLoggedIn", err)
	}
}
