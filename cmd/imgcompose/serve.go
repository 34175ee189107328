package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-compose-mcp/internal/logger"
	"github.com/ironsheep/image-compose-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MCP tools over stdin/stdout",
	Long: `Start the MCP server. Requests are read from stdin as JSON-RPC 2.0, one per
line, and responses are written to stdout. Logs go to stderr.

Configure it in your MCP client with the command "imgcompose serve".`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := *logger.Get()
	log.Info().
		Str("version", Version).
		Str("commit", GitCommit).
		Msg("MCP server starting")

	srv := server.New(cfg, log)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info().Msg("MCP server stopped")
	return nil
}
