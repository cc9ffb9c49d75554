package commands

import (
	"fmt"
	"strings"

	"github.com/himakhaitan/redis-lite/cli/output"
	"github.com/himakhaitan/redis-lite/protocol"
	"github.com/spf13/cobra"
)

// NewInfoCommand creates a new info command
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [section]",
		Short: "Show server information",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			reply, err := send(append([]string{"INFO"}, args...)...)
			if err != nil {
				output.Error(fmt.Sprintf("Failed to connect to server at %s\n %v", serverAddr(), err))
				return
			}

			bulk, ok := reply.(protocol.BulkString)
			if !ok {
				output.Reply(reply)
				return
			}
			if bulk.Text == "" {
				output.Warn("No information for this section")
				return
			}
			fmt.Fprint(cmd.OutOrStdout(), strings.ReplaceAll(bulk.Text, "\r\n", "\n"))
		},
	}
}
