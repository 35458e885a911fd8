package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tunevault/internal/catalog"
)

func newArtistCommand(ctx *commandContext) *cobra.Command {
	artistCmd := &cobra.Command{
		Use:   "artist",
		Short: "Manage artists",
	}

	artistCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add an artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.mutate(cmd, func(c *catalog.Catalog) error {
				id, err := c.AddArtist(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added artist %s\n", id)
				return nil
			})
		},
	})

	artistCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List artists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.view(cmd, func(c *catalog.Catalog) error {
				rows := make([][]string, 0)
				for _, a := range c.Artists() {
					rows = append(rows, []string{a.ID.String(), a.Name, strconv.Itoa(len(c.SongsByArtist(a.ID)))})
				}
				printTable(cmd, []string{"ID", "Name", "Songs"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}, "No artists")
				return nil
			})
		},
	})

	artistCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an artist with its songs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("artist", args[0])
			if err != nil {
				return err
			}
			return ctx.mutate(cmd, func(c *catalog.Catalog) error {
				if err := c.DeleteArtist(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted artist %s\n", id)
				return nil
			})
		},
	})

	return artistCmd
}
