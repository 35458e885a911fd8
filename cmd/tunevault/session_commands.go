package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tunevault/internal/catalog"
)

type sessionFlags struct {
	username string
	password string
}

func newSessionCommand(ctx *commandContext) *cobra.Command {
	flags := &sessionFlags{}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Act as a logged-in customer",
	}
	sessionCmd.PersistentFlags().StringVarP(&flags.username, "username", "u", "", "Customer username")
	sessionCmd.PersistentFlags().StringVarP(&flags.password, "password", "p", "", "Customer password")
	_ = sessionCmd.MarkPersistentFlagRequired("username")
	_ = sessionCmd.MarkPersistentFlagRequired("password")

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "follow <artist-id>",
		Short: "Follow an artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("artist", args[0])
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, flags, true, func(s *catalog.Session) error {
				if err := s.Follow(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Now following %s\n", id)
				return nil
			})
		},
	})

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "following",
		Short: "List followed artists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, flags, false, func(s *catalog.Session) error {
				artists, err := s.FollowedArtists()
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(artists))
				for _, a := range artists {
					rows = append(rows, []string{a.ID.String(), a.Name})
				}
				printTable(cmd, []string{"ID", "Name"}, rows, nil, "Not following any artist")
				return nil
			})
		},
	})

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "playlists",
		Short: "List the customer's playlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, flags, false, func(s *catalog.Session) error {
				playLists, err := s.PlayLists()
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(playLists))
				for _, pl := range playLists {
					rows = append(rows, []string{pl.ID.String(), pl.Name, strconv.Itoa(len(pl.Songs))})
				}
				printTable(cmd, []string{"ID", "Name", "Songs"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight}, "No playlists")
				return nil
			})
		},
	})

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "playlist-new <name>",
		Short: "Create a playlist (premium customers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, flags, true, func(s *catalog.Session) error {
				id, err := s.NewPlayList(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created playlist %s\n", id)
				return nil
			})
		},
	})

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "playlist-add-song <playlist-id> <song-id>",
		Short: "Append a song to one of the customer's playlists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			playListID, songID, err := parsePlayListSong(args)
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, flags, true, func(s *catalog.Session) error {
				if err := s.AddSongToPlayList(playListID, songID); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Song added")
				return nil
			})
		},
	})

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "playlist-remove-song <playlist-id> <song-id>",
		Short: "Remove a song from one of the customer's playlists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			playListID, songID, err := parsePlayListSong(args)
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, flags, true, func(s *catalog.Session) error {
				if err := s.RemoveSongFromPlayList(playListID, songID); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Song removed")
				return nil
			})
		},
	})

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "play <playlist-id>",
		Short: "Play one of the customer's playlists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("playlist", args[0])
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, flags, false, func(s *catalog.Session) error {
				lines, err := s.Play(id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(lines) == 0 {
					fmt.Fprintln(out, "Playlist is empty")
				}
				for _, line := range lines {
					fmt.Fprintln(out, line)
				}
				return nil
			})
		},
	})

	return sessionCmd
}

// withSession logs in and runs fn. The catalog is saved afterwards when save is set.
func (c *commandContext) withSession(cmd *cobra.Command, flags *sessionFlags, save bool, fn func(*catalog.Session) error) error {
	run := func(cat *catalog.Catalog) error {
		session, err := cat.Login(flags.username, flags.password)
		if err != nil {
			return err
		}
		defer session.Logout()
		return fn(session)
	}
	if save {
		return c.mutate(cmd, run)
	}
	return c.view(cmd, run)
}

func parsePlayListSong(args []string) (uuid.UUID, uuid.UUID, error) {
	playListID, err := parseID("playlist", args[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	songID, err := parseID("song", args[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return playListID, songID, nil
}
