package main

import (
	"testing"

	"github.com/himakhaitan/redis-lite/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags_OnlyChangedFlagsOverride(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--port", "6380", "--replicaof", "localhost 6379"}))

	cfg := config.Default()
	cfg.Dir = "/data"

	var flags config.Config
	flags.Port, _ = cmd.Flags().GetInt("port")
	flags.ReplicaOf, _ = cmd.Flags().GetString("replicaof")
	applyFlags(cmd, cfg, &flags)

	assert.Equal(t, 6380, cfg.Port)
	assert.Equal(t, "localhost 6379", cfg.ReplicaOf)
	assert.Equal(t, "/data", cfg.Dir, "Unset flags keep the loaded value")
	assert.Equal(t, "dump.rdb", cfg.DBFilename)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"port", "dir", "dbfilename", "replicaof", "log-level", "admin-addr"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s should be registered", name)
	}
}
