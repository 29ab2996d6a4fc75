package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// RootCmd is the base command. Run without a subcommand it compiles.
var RootCmd = &cobra.Command{
	Use:   "promptcompile",
	Short: "promptcompile merges a folder of system prompts into one document",
	Long: `promptcompile scans a directory for Markdown prompt files, merges them in
name order into "LLM System Prompts.md" with a heading per prompt, and opens
the result with the platform's default viewer.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runCompile,
}

func init() {
	bindCompileFlags(RootCmd)
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}
