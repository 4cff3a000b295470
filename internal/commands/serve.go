package commands

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/michelgermain/gnucash-expenses/internal/buildinfo"
	"github.com/michelgermain/gnucash-expenses/tools"
)

func newServeCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [ledger]",
		Short: "Serve the expense report as MCP tools over stdio",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(*g, args)
			if err != nil {
				return err
			}

			s := server.NewMCPServer(
				"gnucash-expenses",
				buildinfo.Version,
				server.WithToolCapabilities(false),
			)
			tools.RegisterTools(s, svc)

			slog.InfoContext(cmd.Context(), "serving MCP over stdio")
			if err := server.ServeStdio(s); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}
