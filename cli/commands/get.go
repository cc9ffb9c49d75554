package commands

import (
	"fmt"

	"github.com/himakhaitan/redis-lite/cli/output"
	"github.com/himakhaitan/redis-lite/protocol"
	"github.com/spf13/cobra"
)

// NewGetCommand creates a new get command
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a value by key",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			key := args[0]
			reply, err := send("GET", key)
			if err != nil {
				output.Error(fmt.Sprintf("Failed to connect to server at %s\n %v", serverAddr(), err))
				return
			}
			if bulk, ok := reply.(protocol.BulkString); ok && bulk.Null {
				output.Warn(fmt.Sprintf("Key '%s' not found", key))
				return
			}
			output.Reply(reply)
		},
	}
}
