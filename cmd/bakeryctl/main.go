package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/example/bakery/internal/cli"
	"github.com/example/bakery/internal/version"
	"github.com/example/bakery/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "bakeryctl",
		Short:   "bakeryctl - bakeries and their chefs on SQLite, Postgres, or MySQL",
		Version: version.String(),
		Long: `bakeryctl manages bakeries and the chefs who work in them.
It connects to the database named by DATABASE_URL (and DB_NAME on servers),
applies pending schema migrations, and runs queries through the ORM.`,
		SilenceUsage: true,
	}
	cli.AddGlobalFlags(rootCmd)

	// Entity commands
	rootCmd.AddCommand(cli.BakeryCmd())
	rootCmd.AddCommand(cli.ChefCmd())

	// Schema and database lifecycle
	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.DatabaseCmd())

	// Example scenario
	rootCmd.AddCommand(cli.WalkthroughCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
