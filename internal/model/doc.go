// Package model defines the catalog entities shared by every other package.
//
// # Entities
//
// Artist, Song and PlayList are plain records identified by a UUID. Songs
// reference artists and playlists reference songs by pointer, so a single
// in-memory instance can be shared by many owners:
//
//	artist, _ := model.NewArtist("Radiohead")
//	song, _ := model.NewSong("Karma Police", "Rock", 258, "OK Computer")
//	song.AddArtists(artist)
//
// # Customers
//
// Customer is a closed union of RegularCustomer (exactly one playlist, created
// with the account) and PremiumCustomer (any number of playlists). The variant
// is chosen from a case-insensitive discriminator:
//
//	c, err := model.NewCustomer("premium", "listener01", "Secr3t!pw", "Ada", "Lovelace", 30)
//
// # Unknown entities
//
// UnknownArtist, UnknownSong and UnknownPlayList build placeholders for
// references that cannot be resolved while loading a snapshot. They keep the
// unresolved ID and answer true from IsUnknown.
package model
