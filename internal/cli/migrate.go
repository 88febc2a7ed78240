package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/bakery/internal/db"
	"github.com/example/bakery/internal/wire"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back schema migrations",
	Long:  "Manage the versioned schema. Applied versions are recorded in the schema_version table.",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		return runMigration(cmd.Context(), "Applied", func(ctx context.Context, m *db.Migrator) ([]int, error) {
			return m.Up(ctx, steps)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations (the last one by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		return runMigration(cmd.Context(), "Rolled back", func(ctx context.Context, m *db.Migrator) ([]int, error) {
			return m.Down(ctx, steps)
		})
	},
}

var migrateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Roll back all applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd.Context(), "Rolled back", func(ctx context.Context, m *db.Migrator) ([]int, error) {
			return m.Reset(ctx)
		})
	},
}

var migrateRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Roll back all migrations, then apply them again",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd.Context(), "Applied", func(ctx context.Context, m *db.Migrator) ([]int, error) {
			return m.Refresh(ctx)
		})
	},
}

var migrateFreshCmd = &cobra.Command{
	Use:   "fresh",
	Short: "Drop every table, then apply all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd.Context(), "Applied", func(ctx context.Context, m *db.Migrator) ([]int, error) {
			return m.Fresh(ctx)
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations are applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		statuses, err := wire.Migrator().Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "VERSION\tNAME\tSTATUS\tAPPLIED AT")
		fmt.Fprintln(w, "-------\t----\t------\t----------")
		for _, s := range statuses {
			status := color.New(color.FgYellow).Sprint("pending")
			appliedAt := "-"
			if s.Applied {
				status = color.New(color.FgGreen).Sprint("applied")
				appliedAt = s.AppliedAt.Local().Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Version, s.Name, status, appliedAt)
		}
		return w.Flush()
	},
}

func runMigration(ctx context.Context, verb string, fn func(context.Context, *db.Migrator) ([]int, error)) error {
	versions, err := fn(ctx, wire.Migrator())
	if err != nil {
		return err
	}

	if len(versions) == 0 {
		fmt.Println("Nothing to do")
		return nil
	}
	fmt.Printf("✓ %s %d migration(s): %v\n", verb, len(versions), versions)
	return nil
}

func init() {
	// migrate flags
	migrateUpCmd.Flags().IntP("steps", "n", 0, "Number of migrations to apply (0 means all)")
	migrateDownCmd.Flags().IntP("steps", "n", 1, "Number of migrations to roll back")

	// Register subcommands
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateResetCmd)
	migrateCmd.AddCommand(migrateRefreshCmd)
	migrateCmd.AddCommand(migrateFreshCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	return migrateCmd
}
