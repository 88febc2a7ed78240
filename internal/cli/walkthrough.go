package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/bakery/internal/wire"
)

var walkthroughCmd = &cobra.Command{
	Use:   "walkthrough",
	Short: "Run the end-to-end example against an empty database",
	Long: `Insert, update, query, batch-load, and delete bakeries and chefs step by
step, checking each result. The bakery table must be empty; the walkthrough
deletes everything it created when it finishes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.WalkthroughAdapter().Run(cmd.Context())
		return err
	},
}

// WalkthroughCmd returns the walkthrough command
func WalkthroughCmd() *cobra.Command {
	return walkthroughCmd
}
