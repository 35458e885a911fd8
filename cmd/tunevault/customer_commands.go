package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tunevault/internal/catalog"
	"tunevault/internal/model"
)

func newCustomerCommand(ctx *commandContext) *cobra.Command {
	customerCmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}

	customerCmd.AddCommand(newCustomerAddCommand(ctx))

	customerCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.view(cmd, func(c *catalog.Catalog) error {
				rows := make([][]string, 0)
				for _, customer := range c.Customers() {
					p := customer.Info()
					rows = append(rows, []string{
						p.Username,
						string(customer.Variant()),
						p.Name + " " + p.LastName,
						strconv.Itoa(p.Age),
						joinNames(p.FollowedArtists(), func(a *model.Artist) string { return a.Name }),
						strconv.Itoa(len(customer.PlayListIDs())),
					})
				}
				printTable(cmd, []string{"Username", "Type", "Name", "Age", "Follows", "Playlists"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight}, "No customers")
				return nil
			})
		},
	})

	customerCmd.AddCommand(&cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a customer and the playlists it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.mutate(cmd, func(c *catalog.Catalog) error {
				if err := c.DeleteCustomer(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted customer %s\n", args[0])
				return nil
			})
		},
	})

	return customerCmd
}

func newCustomerAddCommand(ctx *commandContext) *cobra.Command {
	var (
		variant  string
		username string
		password string
		name     string
		lastName string
		age      int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a regular or premium customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.mutate(cmd, func(c *catalog.Catalog) error {
				id, err := c.AddCustomer(variant, username, password, name, lastName, age)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added customer %s (%s)\n", username, id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&variant, "type", string(model.VariantRegular), "Customer type: Regular or Premium")
	cmd.Flags().StringVar(&username, "username", "", "Unique username")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&name, "name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().IntVar(&age, "age", 0, "Age in years")
	for _, flag := range []string{"username", "password", "name", "last-name", "age"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}
