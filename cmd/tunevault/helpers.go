package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tunevault/internal/model"
)

func parseID(kind, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, model.Wrap(model.ErrValidation, "cli", "parse "+kind+" id", fmt.Sprintf("%q is not a valid id", value), err)
	}
	return id, nil
}

func parseIDs(kind string, values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := parseID(kind, value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// printTable writes a table, or placeholder when there are no rows.
func printTable(cmd *cobra.Command, headers []string, rows [][]string, aligns []columnAlignment, placeholder string) {
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, placeholder)
		return
	}
	fmt.Fprintln(out, renderTable(headers, rows, aligns, shouldColorize(out)))
}

func joinNames[T any](items []T, name func(T) string) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, name(item))
	}
	return strings.Join(names, ", ")
}
