package commands

import (
	"fmt"
	"strconv"

	"github.com/himakhaitan/redis-lite/cli/output"
	"github.com/spf13/cobra"
)

// NewSetCommand creates a new set command
func NewSetCommand() *cobra.Command {
	var ex, px uint64

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a key-value pair",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			key, value := args[0], args[1]

			request := []string{"SET", key, value}
			if cmd.Flags().Changed("ex") {
				request = append(request, "EX", strconv.FormatUint(ex, 10))
			}
			if cmd.Flags().Changed("px") {
				request = append(request, "PX", strconv.FormatUint(px, 10))
			}

			reply, err := send(request...)
			if err != nil {
				output.Error(fmt.Sprintf("Failed to connect to server at %s\n %v", serverAddr(), err))
				return
			}
			output.Reply(reply)
		},
	}

	cmd.Flags().Uint64Var(&ex, "ex", 0, "expire the key after this many seconds")
	cmd.Flags().Uint64Var(&px, "px", 0, "expire the key after this many milliseconds")
	cmd.MarkFlagsMutuallyExclusive("ex", "px")
	return cmd
}
