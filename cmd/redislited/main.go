package main

import (
	"fmt"
	"os"

	"github.com/himakhaitan/redis-lite/pkg/config"
	"github.com/himakhaitan/redis-lite/pkg/logger"
	"github.com/himakhaitan/redis-lite/pkg/metrics"
	"github.com/himakhaitan/redis-lite/server"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var flags config.Config

	cmd := &cobra.Command{
		Use:          "redislited",
		Short:        "Run the redis-lite server",
		Long:         "redislited serves a subset of the Redis protocol over TCP, optionally preloaded from an RDB snapshot",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg, &flags)
			if err := cfg.Validate(); err != nil {
				return err
			}

			app := fx.New(
				fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
					return &fxevent.ZapLogger{Logger: log.Named("fx")}
				}),
				config.Module(cfg),
				logger.Module("redislited"),
				metrics.Module(),
				server.Module(),
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.Port, "port", 0, "port for the RESP listener")
	f.StringVar(&flags.Dir, "dir", "", "directory holding the snapshot file")
	f.StringVar(&flags.DBFilename, "dbfilename", "", "snapshot file name inside --dir")
	f.StringVar(&flags.ReplicaOf, "replicaof", "", `"<host> <port>" of the master; makes this server a replica`)
	f.StringVar(&flags.LogLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&flags.AdminAddr, "admin-addr", "", "address for the admin HTTP server, disabled when empty")
	return cmd
}

// applyFlags copies only the flags given on the command line over cfg
func applyFlags(cmd *cobra.Command, cfg, flags *config.Config) {
	changed := cmd.Flags().Changed
	if changed("port") {
		cfg.Port = flags.Port
	}
	if changed("dir") {
		cfg.Dir = flags.Dir
	}
	if changed("dbfilename") {
		cfg.DBFilename = flags.DBFilename
	}
	if changed("replicaof") {
		cfg.ReplicaOf = flags.ReplicaOf
	}
	if changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if changed("admin-addr") {
		cfg.AdminAddr = flags.AdminAddr
	}
}
