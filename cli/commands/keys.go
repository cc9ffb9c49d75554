package commands

import (
	"github.com/spf13/cobra"
)

// NewKeysCommand creates a new keys command
func NewKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys [pattern]",
		Short: "List keys matching a glob pattern (default *)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			pattern := "*"
			if len(args) == 1 {
				pattern = args[0]
			}
			sendAndPrint("KEYS", pattern)
		},
	}
}
