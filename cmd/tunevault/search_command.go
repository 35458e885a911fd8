package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tunevault/internal/catalog"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Find artists, songs and playlists by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.view(cmd, func(c *catalog.Catalog) error {
				matches := c.Search(strings.Join(args, " "), limit)
				rows := make([][]string, 0, len(matches))
				for _, m := range matches {
					rows = append(rows, []string{m.Kind, m.Name, m.ID.String(), fmt.Sprintf("%.2f", m.Score)})
				}
				printTable(cmd, []string{"Kind", "Name", "ID", "Score"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}, "No matches")
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of matches (0 for all)")
	return cmd
}
