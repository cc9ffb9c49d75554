package commands

import (
	"github.com/spf13/cobra"
)

// NewPingCommand creates a new ping command
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping [message]",
		Short: "Check that the server is alive",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sendAndPrint(append([]string{"PING"}, args...)...)
		},
	}
}
