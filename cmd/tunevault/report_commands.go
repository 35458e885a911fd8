package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"tunevault/internal/catalog"
	"tunevault/internal/model"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Catalog statistics",
	}

	reportCmd.AddCommand(&cobra.Command{
		Use:   "followed",
		Short: "Artists by number of followers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.view(cmd, func(c *catalog.Catalog) error {
				counts := c.MostFollowedArtists()
				rows := make([][]string, 0, len(counts))
				for _, entry := range counts {
					rows = append(rows, []string{entry.Name, strconv.Itoa(entry.Count)})
				}
				printTable(cmd, []string{"Artist", "Followers"}, rows, []columnAlignment{alignLeft, alignRight}, "No followed artists")
				return nil
			})
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "songs",
		Short: "Songs by number of playlist entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.view(cmd, func(c *catalog.Catalog) error {
				printSongCounts(cmd, c.MostAddedSongs())
				return nil
			})
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "artist-top <artist-id>",
		Short: "The artist's song with the most playlist entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("artist", args[0])
			if err != nil {
				return err
			}
			return ctx.view(cmd, func(c *catalog.Catalog) error {
				top, err := c.TopSongOfArtist(id)
				if err != nil {
					return err
				}
				printSongCounts(cmd, []catalog.SongCount{top})
				return nil
			})
		},
	})

	return reportCmd
}

func printSongCounts(cmd *cobra.Command, counts []catalog.SongCount) {
	rows := make([][]string, 0, len(counts))
	for _, entry := range counts {
		rows = append(rows, []string{
			entry.Song.Name,
			joinNames(entry.Song.Artists, func(a *model.Artist) string { return a.Name }),
			strconv.Itoa(entry.Count),
		})
	}
	printTable(cmd, []string{"Song", "Artists", "Entries"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}, "No songs in playlists")
}
