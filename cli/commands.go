package cli

import (
	"fmt"

	"github.com/himakhaitan/redis-lite/cli/commands"
	"github.com/spf13/cobra"
)

type CLI struct {
	root *cobra.Command
	addr string
}

func NewCLI() *CLI {
	cli := &CLI{}

	rootCmd := &cobra.Command{
		Use:   "redislite-cli",
		Short: "A RESP client for the redis-lite server",
		Long: fmt.Sprintf("redislite-cli sends commands to a redis-lite server over TCP and prints the replies.\n"+
			"The server address is taken from --addr, then $%s, then %s.", commands.AddrEnv, commands.DefaultAddr),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commands.SetServerAddr(cli.addr)
		},
	}
	rootCmd.PersistentFlags().StringVar(&cli.addr, "addr", "", "server address as host:port")

	// Create command registry and register all commands
	registry := commands.NewCommandRegistry()
	registry.RegisterCommands(rootCmd)

	cli.root = rootCmd

	return cli
}

func (c *CLI) Run() error {
	return c.root.Execute()
}
