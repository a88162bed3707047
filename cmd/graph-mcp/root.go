package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/graph-mcp/graph-mcp/internal/logging"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "graph-mcp",
	Short:         "graph-mcp exposes Microsoft Graph directory accessors as MCP tools.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		structured := commandUsesStructuredLogging(cmd)
		setCommandExecutionContext(commandExecutionContext{
			CommandPath:       cmd.CommandPath(),
			UsesStructuredLog: structured,
		})
		if !structured {
			return nil
		}
		_, err := logging.BootstrapFromEnv(logging.BootstrapOptions{
			Command: cmd.CommandPath(),
			Writer:  os.Stderr,
		})
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// commandUsesStructuredLogging reports whether a command emits structured
// logs; the version command stays plain for scripting.
func commandUsesStructuredLogging(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "serve":
		return true
	default:
		return false
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, versionCmd)
}
