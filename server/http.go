package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/himakhaitan/redis-lite/engine"
	"github.com/himakhaitan/redis-lite/pkg/config"
	"github.com/himakhaitan/redis-lite/store"
	"github.com/himakhaitan/redis-lite/types"
	"go.uber.org/zap"
)

// NewAdminMux constructs the read-only admin mux. It never writes to the store.
func NewAdminMux(db *engine.DB, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// Health Check Route
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// GET /metrics
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, failure("method not allowed"))
			return
		}
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		db.Metrics().WritePrometheus(w)
	})

	// GET /v1/info
	mux.HandleFunc("/v1/info", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, failure("method not allowed"))
			return
		}
		writeJSON(w, http.StatusOK, buildInfo(db))
	})

	// GET /v1/kv/{key}
	mux.HandleFunc("/v1/kv/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, failure("method not allowed"))
			return
		}

		key := strings.TrimPrefix(r.URL.Path, "/v1/kv/")
		if key == "" {
			writeJSON(w, http.StatusBadRequest, failure("missing key"))
			return
		}

		entry, err := db.Store.Lookup(key)
		if errors.Is(err, store.ErrKeyNotFound) {
			writeJSON(w, http.StatusNotFound, failure(err.Error()))
			return
		}
		if err != nil {
			logger.Error("Admin lookup failed", zap.String("key", key), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, failure("internal server error"))
			return
		}

		ttl := int64(-1)
		if entry.HasExpiry() {
			ttl = int64(entry.TTL(db.Store.Now()) / time.Second)
		}
		writeJSON(w, http.StatusOK, types.GetResponse{
			BaseResponse: success("key fetched successfully"),
			Key:          key,
			Value:        entry.Value,
			TTL:          ttl,
		})
	})

	// GET /v1/keys?pattern=
	mux.HandleFunc("/v1/keys", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, failure("method not allowed"))
			return
		}

		pattern := r.URL.Query().Get("pattern")
		if pattern == "" {
			pattern = "*"
		}
		keys, err := db.Store.Keys(pattern)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, failure(err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, types.ListKeysResponse{
			BaseResponse: success("keys fetched successfully"),
			Pattern:      pattern,
			Keys:         keys,
		})
	})

	return mux
}

func buildInfo(db *engine.DB) types.InfoResponse {
	settings := db.Settings()
	id, _ := settings.Get(config.KeyReplicationID)
	offset, _ := settings.Get(config.KeyReplicationOffset)
	stats := db.Store.Stats()

	return types.InfoResponse{
		BaseResponse:      success("info fetched successfully"),
		Role:              db.Role(),
		ReplicationID:     id,
		ReplicationOffset: offset,
		Keys:              stats.Keys,
		ValueBytes:        stats.ValueBytes,
		Stats:             db.Metrics().Stats(),
		Commands:          db.Metrics().CommandStats(),
		Config:            settings.All(),
	}
}

func success(message string) types.BaseResponse {
	return types.BaseResponse{Success: true, Message: message, Timestamp: time.Now().Unix()}
}

func failure(message string) types.BaseResponse {
	return types.BaseResponse{Success: false, Message: message, Timestamp: time.Now().Unix()}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// AdminServer serves the admin mux when an admin address is configured
type AdminServer struct {
	server   *http.Server
	listener net.Listener
	logger   *zap.Logger
}

// NewAdminServer returns nil when cfg.AdminAddr is empty
func NewAdminServer(cfg *config.Config, mux *http.ServeMux, logger *zap.Logger) *AdminServer {
	if cfg.AdminAddr == "" {
		return nil
	}
	return &AdminServer{
		server: &http.Server{Addr: cfg.AdminAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		logger: logger,
	}
}

// Start binds the admin address and serves in the background
func (a *AdminServer) Start() error {
	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return err
	}
	a.listener = listener

	a.logger.Info("Starting admin HTTP server", zap.String("addr", listener.Addr().String()))
	go func() {
		if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Admin server failed", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address, or nil before Start
func (a *AdminServer) Addr() net.Addr {
	if a.listener == nil {
		return nil
	}
	return a.listener.Addr()
}

func (a *AdminServer) Stop(ctx context.Context) error {
	a.logger.Info("Stopping admin HTTP server")
	return a.server.Shutdown(ctx)
}
