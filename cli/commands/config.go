package commands

import (
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect server configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get <parameter>",
		Short: "Read one configuration parameter",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sendAndPrint("CONFIG", "GET", args[0])
		},
	})
	return cmd
}
