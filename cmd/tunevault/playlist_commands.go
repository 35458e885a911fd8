package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tunevault/internal/catalog"
)

func newPlayListCommand(ctx *commandContext) *cobra.Command {
	playListCmd := &cobra.Command{
		Use:     "playlist",
		Aliases: []string{"playlists"},
		Short:   "Manage playlists",
	}

	playListCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a playlist owned by no customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.mutate(cmd, func(c *catalog.Catalog) error {
				id, err := c.AddPlayList(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added playlist %s\n", id)
				return nil
			})
		},
	})

	playListCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List playlists with their owners",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.view(cmd, func(c *catalog.Catalog) error {
				owners := make(map[uuid.UUID]string)
				for _, customer := range c.Customers() {
					for _, id := range customer.PlayListIDs() {
						owners[id] = customer.Info().Username
					}
				}
				rows := make([][]string, 0)
				for _, pl := range c.PlayLists() {
					rows = append(rows, []string{pl.ID.String(), pl.Name, owners[pl.ID], strconv.Itoa(len(pl.Songs))})
				}
				printTable(cmd, []string{"ID", "Name", "Owner", "Songs"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}, "No playlists")
				return nil
			})
		},
	})

	return playListCmd
}
