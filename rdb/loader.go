package rdb

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/himakhaitan/redis-lite/store"
	"go.uber.org/zap"
)

// Setter is the store surface the loader writes into
type Setter interface {
	Set(key, value string, opts []store.Option) []store.OptionResult
}

// LoadResult summarizes a completed load
type LoadResult struct {
	Path       string
	Version    int
	Persistent int
	Expiring   int
	Aux        map[string]AuxValue
}

// Loader reads snapshot files into a store
type Loader struct {
	logger *zap.Logger
	now    func() time.Time
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithLoaderClock replaces the time source used to compute remaining TTLs
func WithLoaderClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		l.now = now
	}
}

// NewLoader creates a Loader
func NewLoader(logger *zap.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// PopulateStore reads dir/filename, decodes it and writes every entry into s.
// Nothing is written unless the whole file decodes. Expiring entries are set
// with EX rounded up to whole seconds; entries already expired are set with
// EX 0 so the next read evicts them. An empty file loads nothing.
func (l *Loader) PopulateStore(s Setter, dir, filename string) (*LoadResult, error) {
	path := filepath.Join(dir, filename)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	data := normalize(content)
	if len(data) == 0 {
		l.logger.Info("Snapshot is empty", zap.String("path", path))
		return &LoadResult{Path: path, Aux: map[string]AuxValue{}}, nil
	}

	snapshot, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}

	result := &LoadResult{Path: path, Version: snapshot.Version, Aux: snapshot.Aux}
	now := l.now()
	for _, entry := range snapshot.Entries {
		if !entry.HasExpiry() {
			s.Set(entry.Key, entry.Value, nil)
			result.Persistent++
			continue
		}

		ttl := remainingSeconds(entry.ExpiresAt, now)
		s.Set(entry.Key, entry.Value, []store.Option{{Name: store.OptionEX, Value: strconv.FormatInt(ttl, 10)}})
		result.Expiring++
	}

	l.logger.Info("Loaded snapshot",
		zap.String("path", path),
		zap.Int("version", result.Version),
		zap.Int("persistent", result.Persistent),
		zap.Int("expiring", result.Expiring),
		zap.Int("aux_fields", len(result.Aux)))

	return result, nil
}

// normalize accepts binary snapshots as-is and hex text snapshots decoded.
// Content that is neither is returned untouched so Parse reports it.
func normalize(content []byte) []byte {
	if bytes.HasPrefix(content, []byte(MagicString)) {
		return content
	}

	text := bytes.TrimSpace(content)
	if len(text) == 0 {
		return nil
	}

	decoded := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(decoded, text); err != nil {
		return content
	}
	return decoded
}

// remainingSeconds rounds the time left up to whole seconds, clamped at zero
func remainingSeconds(expiresAt, now time.Time) int64 {
	left := expiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int64(math.Ceil(left.Seconds()))
}
