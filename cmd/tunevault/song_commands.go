package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tunevault/internal/catalog"
	"tunevault/internal/model"
)

func newSongCommand(ctx *commandContext) *cobra.Command {
	songCmd := &cobra.Command{
		Use:   "song",
		Short: "Manage songs",
	}

	songCmd.AddCommand(newSongAddCommand(ctx))

	songCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List songs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.view(cmd, func(c *catalog.Catalog) error {
				rows := make([][]string, 0)
				for _, s := range c.Songs() {
					rows = append(rows, []string{
						s.ID.String(),
						s.Name,
						joinNames(s.Artists, func(a *model.Artist) string { return a.Name }),
						s.Genre,
						strconv.Itoa(s.DurationInSeconds),
						s.Album,
					})
				}
				printTable(cmd, []string{"ID", "Name", "Artists", "Genre", "Seconds", "Album"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}, "No songs")
				return nil
			})
		},
	})

	songCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a song and remove it from every playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("song", args[0])
			if err != nil {
				return err
			}
			return ctx.mutate(cmd, func(c *catalog.Catalog) error {
				if err := c.DeleteSong(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted song %s\n", id)
				return nil
			})
		},
	})

	return songCmd
}

func newSongAddCommand(ctx *commandContext) *cobra.Command {
	var (
		name     string
		genre    string
		duration int
		album    string
		artists  []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a song credited to existing artists",
		RunE: func(cmd *cobra.Command, args []string) error {
			artistIDs, err := parseIDs("artist", artists)
			if err != nil {
				return err
			}
			return ctx.mutate(cmd, func(c *catalog.Catalog) error {
				id, err := c.AddSong(name, genre, duration, album, artistIDs)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added song %s\n", id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Song name")
	cmd.Flags().StringVar(&genre, "genre", "", "Genre")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in seconds")
	cmd.Flags().StringVar(&album, "album", "", "Album name")
	cmd.Flags().StringArrayVar(&artists, "artist", nil, "Artist ID (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("genre")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("artist")
	return cmd
}
