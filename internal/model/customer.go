package model

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// MinimumAge is the youngest age accepted for a customer account.
const MinimumAge = 14

// DefaultRegularPlayListName prefixes the playlist created for every regular customer.
const DefaultRegularPlayListName = "PlayListRegular"

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{7,30}$`)

// Variant discriminates the two customer kinds.
type Variant string

const (
	VariantRegular Variant = "Regular"
	VariantPremium Variant = "Premium"
)

var variantFolder = cases.Fold()

// ParseVariant maps a discriminator string onto a Variant, ignoring case.
func ParseVariant(value string) (Variant, error) {
	folded := variantFolder.String(strings.TrimSpace(value))
	for _, v := range []Variant{VariantRegular, VariantPremium} {
		if folded == variantFolder.String(string(v)) {
			return v, nil
		}
	}
	return "", Wrap(ErrUnsupportedType, "customer", "parse variant", fmt.Sprintf("unsupported customer type %q", value), nil)
}

// Customer is implemented only by *RegularCustomer and *PremiumCustomer.
// Playlist cardinality is enforced by each variant.
type Customer interface {
	Info() *Profile
	Variant() Variant
	PlayLists() []*PlayList
	PlayListIDs() []uuid.UUID
	AddPlayList(*PlayList) error
	String() string

	sealed()
}

// Profile carries the fields shared by both customer variants.
type Profile struct {
	ID       uuid.UUID
	Username string
	Password string
	Name     string
	LastName string
	Age      int

	followed []*Artist
}

// Info returns the shared customer fields.
func (p *Profile) Info() *Profile { return p }

// Follow adds the artist to the followed set. It returns false when the artist
// is already followed.
func (p *Profile) Follow(artist *Artist) bool {
	if artist == nil || p.Follows(artist.ID) {
		return false
	}
	p.followed = append(p.followed, artist)
	return true
}

// Unfollow removes the artist from the followed set.
func (p *Profile) Unfollow(id uuid.UUID) bool {
	for i, artist := range p.followed {
		if artist.ID == id {
			p.followed = append(p.followed[:i], p.followed[i+1:]...)
			return true
		}
	}
	return false
}

// Follows reports whether the artist is followed.
func (p *Profile) Follows(id uuid.UUID) bool {
	for _, artist := range p.followed {
		if artist.ID == id {
			return true
		}
	}
	return false
}

// FollowedArtists returns a copy of the followed artists in follow order.
func (p *Profile) FollowedArtists() []*Artist {
	out := make([]*Artist, len(p.followed))
	copy(out, p.followed)
	return out
}

// FollowedArtistIDs returns the followed artist identifiers in follow order.
func (p *Profile) FollowedArtistIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.followed))
	for _, artist := range p.followed {
		ids = append(ids, artist.ID)
	}
	return ids
}

// CheckPassword compares the stored password with the supplied one.
func (p *Profile) CheckPassword(password string) bool {
	return p.Password == password
}

func (p *Profile) describe(playLists int) string {
	return fmt.Sprintf("Full name: %s %s - username: %s - age: %d - followed artists: %d - playlists: %d",
		p.Name, p.LastName, p.Username, p.Age, len(p.followed), playLists)
}

// RegularCustomer owns exactly one playlist for its whole lifetime.
type RegularCustomer struct {
	Profile
	playList *PlayList
}

func (*RegularCustomer) sealed() {}

func (*RegularCustomer) Variant() Variant { return VariantRegular }

func (c *RegularCustomer) PlayLists() []*PlayList {
	return []*PlayList{c.playList}
}

func (c *RegularCustomer) PlayListIDs() []uuid.UUID {
	return []uuid.UUID{c.playList.ID}
}

// AddPlayList always fails: the single playlist is created with the customer.
func (c *RegularCustomer) AddPlayList(*PlayList) error {
	return Wrap(ErrPlayListLimit, "customer", "add playlist", "a regular customer can only own one playlist", nil)
}

func (c *RegularCustomer) String() string {
	return "[Regular] " + c.describe(1)
}

// PremiumCustomer owns any number of playlists.
type PremiumCustomer struct {
	Profile
	playLists []*PlayList
}

func (*PremiumCustomer) sealed() {}

func (*PremiumCustomer) Variant() Variant { return VariantPremium }

func (c *PremiumCustomer) PlayLists() []*PlayList {
	out := make([]*PlayList, len(c.playLists))
	copy(out, c.playLists)
	return out
}

func (c *PremiumCustomer) PlayListIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.playLists))
	for _, pl := range c.playLists {
		ids = append(ids, pl.ID)
	}
	return ids
}

func (c *PremiumCustomer) AddPlayList(pl *PlayList) error {
	if pl == nil {
		return Wrap(ErrValidation, "customer", "add playlist", "playlist must not be nil", nil)
	}
	c.playLists = append(c.playLists, pl)
	return nil
}

func (c *PremiumCustomer) String() string {
	return "[Premium] " + c.describe(len(c.playLists))
}

// NewCustomer validates the account fields and creates a customer of the
// requested variant with a fresh identifier. Regular customers receive their
// default playlist here.
func NewCustomer(variant, username, password, name, lastName string, age int) (Customer, error) {
	v, err := ParseVariant(variant)
	if err != nil {
		return nil, err
	}
	if err := validateAccount(username, password, name, lastName, age); err != nil {
		return nil, err
	}
	profile := Profile{
		ID:       uuid.New(),
		Username: username,
		Password: password,
		Name:     strings.TrimSpace(name),
		LastName: strings.TrimSpace(lastName),
		Age:      age,
	}
	if v == VariantRegular {
		pl, err := NewPlayList(fmt.Sprintf("%s%d", DefaultRegularPlayListName, rand.IntN(1000)))
		if err != nil {
			return nil, err
		}
		return &RegularCustomer{Profile: profile, playList: pl}, nil
	}
	return &PremiumCustomer{Profile: profile}, nil
}

// RestoreCustomer rebuilds a customer read back from storage. A regular
// customer must come back with exactly one playlist.
func RestoreCustomer(variant string, id uuid.UUID, username, password, name, lastName string, age int, followed []*Artist, playLists []*PlayList) (Customer, error) {
	v, err := ParseVariant(variant)
	if err != nil {
		return nil, err
	}
	profile := Profile{
		ID:       id,
		Username: username,
		Password: password,
		Name:     name,
		LastName: lastName,
		Age:      age,
	}
	for _, artist := range followed {
		profile.Follow(artist)
	}
	if v == VariantRegular {
		if len(playLists) != 1 {
			return nil, &FormatError{
				Field:  "playlists",
				Reason: fmt.Sprintf("regular customer %s must own exactly one playlist, found %d", username, len(playLists)),
			}
		}
		return &RegularCustomer{Profile: profile, playList: playLists[0]}, nil
	}
	owned := make([]*PlayList, len(playLists))
	copy(owned, playLists)
	return &PremiumCustomer{Profile: profile, playLists: owned}, nil
}

func validateAccount(username, password, name, lastName string, age int) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(lastName) == "" {
		return Wrap(ErrValidation, "customer", "create", "name and last name must not be empty", nil)
	}
	if !usernamePattern.MatchString(username) {
		return Wrap(ErrValidation, "customer", "create", "username must start with a letter and contain 8 to 31 letters, digits or underscores", nil)
	}
	if !validPassword(password) {
		return Wrap(ErrValidation, "customer", "create", "password needs an upper case letter, a lower case letter, a digit, a special character and at least 8 characters", nil)
	}
	if age < MinimumAge {
		return Wrap(ErrValidation, "customer", "create", fmt.Sprintf("age must be at least %d", MinimumAge), nil)
	}
	return nil
}

func validPassword(password string) bool {
	if len([]rune(password)) < minPasswordLength {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("#?!@$ %^&*-", r):
			special = true
		}
	}
	return upper && lower && digit && special
}
