package commands

import (
	"github.com/spf13/cobra"
)

// NewEchoCommand creates a new echo command
func NewEchoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "echo <message>",
		Short: "Ask the server to echo a message",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sendAndPrint("ECHO", args[0])
		},
	}
}
