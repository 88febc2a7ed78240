package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/bakery/internal/ports/primary"
	"github.com/example/bakery/internal/wire"
)

var chefCmd = &cobra.Command{
	Use:   "chef",
	Short: "Manage chefs",
	Long:  "Create, list, update, and delete the chefs working in bakeries",
}

var chefCreateCmd = &cobra.Command{
	Use:   "create [bakery-id] [name...]",
	Short: "Create one or more chefs in a bakery",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bakeryID, err := parseID("bakery", args[0])
		if err != nil {
			return err
		}
		_, err = wire.ChefAdapter().Create(cmd.Context(), bakeryID, args[1:])
		return err
	},
}

var chefListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chefs",
	RunE: func(cmd *cobra.Command, args []string) error {
		bakeryID, _ := cmd.Flags().GetInt64("bakery")
		_, err := wire.ChefAdapter().List(cmd.Context(), bakeryID)
		return err
	},
}

var chefUpdateCmd = &cobra.Command{
	Use:   "update [chef-id]",
	Short: "Update a chef (only the flags given are changed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("chef", args[0])
		if err != nil {
			return err
		}

		req := primary.UpdateChefRequest{ChefID: id}
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			req.Name = &name
		}
		if cmd.Flags().Changed("bakery") {
			bakeryID, _ := cmd.Flags().GetInt64("bakery")
			req.BakeryID = &bakeryID
		}

		_, err = wire.ChefAdapter().Update(cmd.Context(), req)
		return err
	},
}

var chefDeleteCmd = &cobra.Command{
	Use:   "delete [chef-id]",
	Short: "Delete a chef",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all {
			if len(args) > 0 {
				return fmt.Errorf("--all does not take a chef id")
			}
			_, err := wire.ChefAdapter().DeleteAll(cmd.Context())
			return err
		}

		if len(args) == 0 {
			return fmt.Errorf("chef id required (or --all)")
		}
		id, err := parseID("chef", args[0])
		if err != nil {
			return err
		}
		return wire.ChefAdapter().Delete(cmd.Context(), id)
	},
}

func init() {
	// chef list flags
	chefListCmd.Flags().Int64P("bakery", "b", 0, "Only chefs of this bakery")

	// chef update flags
	chefUpdateCmd.Flags().StringP("name", "n", "", "New name")
	chefUpdateCmd.Flags().Int64P("bakery", "b", 0, "Move the chef to this bakery")

	// chef delete flags
	chefDeleteCmd.Flags().Bool("all", false, "Delete every chef")

	// Register subcommands
	chefCmd.AddCommand(chefCreateCmd)
	chefCmd.AddCommand(chefListCmd)
	chefCmd.AddCommand(chefUpdateCmd)
	chefCmd.AddCommand(chefDeleteCmd)
}

// ChefCmd returns the chef command
func ChefCmd() *cobra.Command {
	return chefCmd
}
