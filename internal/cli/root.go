package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/bakery/internal/config"
	"github.com/example/bakery/internal/wire"
)

// AddGlobalFlags registers the connection and logging flags on the root
// command. Set flags take precedence over the environment.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("database-url", "", "Database server URL (overrides "+config.EnvDatabaseURL+")")
	flags.String("db-name", "", "Database name (overrides "+config.EnvDBName+")")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error (overrides "+config.EnvLogLevel+")")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		url, _ := cmd.Flags().GetString("database-url")
		name, _ := cmd.Flags().GetString("db-name")
		level, _ := cmd.Flags().GetString("log-level")
		wire.Configure(config.Overrides{
			DatabaseURL: url,
			DBName:      name,
			LogLevel:    level,
		})
	}
}

// parseID parses a positive numeric id argument.
func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}

func parseIDs(kind string, args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(kind, arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
