package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/bakery/internal/db"
	"github.com/example/bakery/internal/wire"
)

var databaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Create, drop, or seed the database",
	Long: `Create or drop the database named by DB_NAME on the server at DATABASE_URL.
On Postgres, create drops an existing database of the same name first.
SQLite files need neither step.`,
}

var databaseCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := wire.Config()
		if err := cfg.RequireName(); err != nil {
			return err
		}
		if err := db.CreateDatabase(cmd.Context(), cfg.Database, wire.Logger(), db.Options{TraceSQL: cfg.Log.SQL}); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		fmt.Printf("✓ Database %s ready\n", cfg.Database.Name)
		return nil
	},
}

var databaseDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the database if it exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := wire.Config()
		if err := cfg.RequireName(); err != nil {
			return err
		}
		if err := db.DropDatabase(cmd.Context(), cfg.Database, wire.Logger(), db.Options{TraceSQL: cfg.Log.SQL}); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}
		fmt.Printf("✓ Database %s dropped\n", cfg.Database.Name)
		return nil
	},
}

var databaseSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample bakeries and chefs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := wire.Migrator().Up(ctx, 0); err != nil {
			return err
		}

		bakeries, err := db.SeedFixtures(ctx, wire.Conn().DB)
		if err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		for _, b := range bakeries {
			fmt.Printf("✓ Bakery %d %s (%d chefs)\n", b.ID, b.Name, len(b.Chefs))
		}
		return nil
	},
}

func init() {
	databaseCmd.AddCommand(databaseCreateCmd)
	databaseCmd.AddCommand(databaseDropCmd)
	databaseCmd.AddCommand(databaseSeedCmd)
}

// DatabaseCmd returns the database command
func DatabaseCmd() *cobra.Command {
	return databaseCmd
}
