package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/easyeda2kicad/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve convert_footprint and convert_symbol as MCP tools on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return mcpserver.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
