package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/himakhaitan/redis-lite/pkg/config"
	"github.com/himakhaitan/redis-lite/pkg/metrics"
	"github.com/himakhaitan/redis-lite/protocol"
	"github.com/himakhaitan/redis-lite/store"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DB dispatches decoded commands against the shared store and settings
type DB struct {
	Store    *store.Store
	settings *config.Settings
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewDB(s *store.Store, settings *config.Settings, m *metrics.Metrics, logger *zap.Logger) *DB {
	return &DB{Store: s, settings: settings, metrics: m, logger: logger}
}

// Handle decodes one request frame and executes it. Malformed frames are
// answered with an error reply; they never fail the caller.
func (db *DB) Handle(frame []byte) protocol.Value {
	cmd, err := protocol.Parse(frame)
	if err != nil {
		db.metrics.ProtocolError()
		db.logger.Debug("Rejected malformed request", zap.Error(err))
		return protocol.Error("ERR " + err.Error())
	}
	return db.Execute(cmd)
}

// Execute runs a single command and returns its reply
func (db *DB) Execute(cmd protocol.Command) protocol.Value {
	start := time.Now()
	reply := db.execute(cmd)

	_, unknown := cmd.(protocol.Unknown)
	db.metrics.ObserveCommand(cmd.Name(), !unknown, time.Since(start))
	return reply
}

func (db *DB) execute(cmd protocol.Command) protocol.Value {
	switch c := cmd.(type) {
	case protocol.Ping:
		if c.Message != nil {
			return protocol.Bulk(*c.Message)
		}
		return protocol.SimpleString("PONG")

	case protocol.Echo:
		return protocol.Bulk(c.Message)

	case protocol.Set:
		opts := lo.Map(c.Options, func(o protocol.SetOption, _ int) store.Option {
			return store.Option{Name: o.Name, Value: o.Value}
		})
		db.Store.Set(c.Key, c.Value, opts)
		return protocol.SimpleString("OK")

	case protocol.Get:
		value, err := db.Store.Get(c.Key)
		if errors.Is(err, store.ErrKeyNotFound) {
			return protocol.NullBulk()
		}
		if err != nil {
			return protocol.Error("ERR " + err.Error())
		}
		return protocol.Bulk(value)

	case protocol.ConfigGet:
		value, _ := db.settings.Get(strings.ToLower(c.Parameter))
		return protocol.Array{c.Parameter, value}

	case protocol.Info:
		section := ""
		if c.Section != nil {
			section = *c.Section
		}
		return protocol.Bulk(db.Info(section))

	case protocol.Keys:
		keys, err := db.Store.Keys(c.Pattern)
		if err != nil {
			return protocol.Error("ERR " + err.Error())
		}
		return protocol.Array(keys)

	case protocol.Unknown:
		return protocol.Error(fmt.Sprintf("ERR unknown command '%s'", c.Command))

	default:
		return protocol.Error(fmt.Sprintf("ERR unhandled command %T", cmd))
	}
}

// Settings exposes the shared configuration store
func (db *DB) Settings() *config.Settings {
	return db.settings
}

// Metrics exposes the server counters
func (db *DB) Metrics() *metrics.Metrics {
	return db.metrics
}
