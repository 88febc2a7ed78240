package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/bakery/internal/ports/primary"
	"github.com/example/bakery/internal/wire"
)

var bakeryCmd = &cobra.Command{
	Use:   "bakery",
	Short: "Manage bakeries",
	Long:  "Create, list, show, update, and delete bakeries",
}

var bakeryCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new bakery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		margin, _ := cmd.Flags().GetFloat64("margin")
		_, err := wire.BakeryAdapter().Create(cmd.Context(), args[0], margin)
		return err
	},
}

var bakeryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bakeries",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		_, err := wire.BakeryAdapter().List(cmd.Context(), name)
		return err
	},
}

var bakeryShowCmd = &cobra.Command{
	Use:   "show [bakery-id]",
	Short: "Show a bakery and its chefs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("bakery", args[0])
		if err != nil {
			return err
		}
		_, err = wire.BakeryAdapter().Show(cmd.Context(), id)
		return err
	},
}

var bakeryUpdateCmd = &cobra.Command{
	Use:   "update [bakery-id]",
	Short: "Update a bakery (only the flags given are changed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("bakery", args[0])
		if err != nil {
			return err
		}

		req := primary.UpdateBakeryRequest{BakeryID: id}
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			req.Name = &name
		}
		if cmd.Flags().Changed("margin") {
			margin, _ := cmd.Flags().GetFloat64("margin")
			req.ProfitMargin = &margin
		}

		_, err = wire.BakeryAdapter().Update(cmd.Context(), req)
		return err
	},
}

var bakeryDeleteCmd = &cobra.Command{
	Use:   "delete [bakery-id]",
	Short: "Delete a bakery and its chefs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all {
			if len(args) > 0 {
				return fmt.Errorf("--all does not take a bakery id")
			}
			_, err := wire.BakeryAdapter().DeleteAll(cmd.Context())
			return err
		}

		if len(args) == 0 {
			return fmt.Errorf("bakery id required (or --all)")
		}
		id, err := parseID("bakery", args[0])
		if err != nil {
			return err
		}
		return wire.BakeryAdapter().Delete(cmd.Context(), id)
	},
}

var bakeryChefsCmd = &cobra.Command{
	Use:   "chefs [bakery-id...]",
	Short: "List the chefs of one or more bakeries",
	Long:  "List the chefs of the given bakeries. All chefs are fetched in one query and shown per bakery in the order given.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs("bakery", args)
		if err != nil {
			return err
		}
		_, err = wire.BakeryAdapter().Chefs(cmd.Context(), ids)
		return err
	},
}

func init() {
	// bakery create flags
	bakeryCreateCmd.Flags().Float64P("margin", "m", 0, "Profit margin")

	// bakery list flags
	bakeryListCmd.Flags().StringP("name", "n", "", "Only bakeries with exactly this name")

	// bakery update flags
	bakeryUpdateCmd.Flags().StringP("name", "n", "", "New name")
	bakeryUpdateCmd.Flags().Float64P("margin", "m", 0, "New profit margin")

	// bakery delete flags
	bakeryDeleteCmd.Flags().Bool("all", false, "Delete every bakery")

	// Register subcommands
	bakeryCmd.AddCommand(bakeryCreateCmd)
	bakeryCmd.AddCommand(bakeryListCmd)
	bakeryCmd.AddCommand(bakeryShowCmd)
	bakeryCmd.AddCommand(bakeryUpdateCmd)
	bakeryCmd.AddCommand(bakeryDeleteCmd)
	bakeryCmd.AddCommand(bakeryChefsCmd)
}

// BakeryCmd returns the bakery command
func BakeryCmd() *cobra.Command {
	return bakeryCmd
}
