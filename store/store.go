package store

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Recognized SET option names
const (
	OptionEX = "EX"
	OptionPX = "PX"
)

// Option is a raw (name, value) SET option as received from a client
type Option struct {
	Name  string
	Value string
}

// OptionResult records how a single SET option was handled
type OptionResult struct {
	Name    string
	Value   string
	Applied bool
	Reason  string
}

// Stats summarizes the keyspace
type Stats struct {
	Keys       int   `json:"keys"`
	ValueBytes int64 `json:"value_bytes"`
}

// Store is an in-memory key-value store with per-key TTLs and lazy expiry
type Store struct {
	mu        sync.Mutex
	hashTable *HashTable
	logger    *zap.Logger
	now       func() time.Time
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock replaces the time source used for creation and expiry checks
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty store
func New(logger *zap.Logger, opts ...StoreOption) *Store {
	s := &Store{
		hashTable: NewHashTable(),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set stores a key-value pair, replacing any previous entry in full.
// Options are applied in order; a later EX/PX overrides an earlier one.
// Options that cannot be applied are skipped and reported in the results.
func (s *Store) Set(key, value string, opts []Option) []OptionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &Entry{
		Value:     value,
		CreatedAt: s.now(),
	}

	results := make([]OptionResult, 0, len(opts))
	for _, opt := range opts {
		result := OptionResult{Name: opt.Name, Value: opt.Value}

		switch opt.Name {
		case OptionEX, OptionPX:
			n, err := strconv.ParseUint(opt.Value, 10, 64)
			if err != nil {
				result.Reason = fmt.Sprintf("value is not an integer: %q", opt.Value)
				break
			}
			unit := time.Second
			if opt.Name == OptionPX {
				unit = time.Millisecond
			}
			entry.ExpiresAt = entry.CreatedAt.Add(scaleDuration(n, unit))
			result.Applied = true
		default:
			result.Reason = "unsupported option"
		}

		if !result.Applied {
			s.logger.Warn("Skipping SET option",
				zap.String("key", key),
				zap.String("option", opt.Name),
				zap.String("value", opt.Value),
				zap.String("reason", result.Reason))
		}
		results = append(results, result)
	}

	s.hashTable.Put(key, entry)
	return results
}

// Get retrieves a value by key. An expired entry is evicted by the lookup.
func (s *Store) Get(key string) (string, error) {
	entry, err := s.Lookup(key)
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// Lookup returns a copy of the live entry held for key, evicting it if expired
func (s *Store) Lookup(key string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.hashTable.Get(key)
	if !exists {
		return Entry{}, ErrKeyNotFound
	}

	if entry.IsExpired(s.now()) {
		s.hashTable.Delete(key)
		s.logger.Debug("Evicted expired key", zap.String("key", key))
		return Entry{}, ErrKeyNotFound
	}

	return *entry, nil
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.now()
}

// Remove deletes a key. Removing a missing key is a no-op.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hashTable.Delete(key)
}

// Keys returns the held keys matching a glob pattern, sorted.
// Expired keys not yet evicted by a read may still be listed.
func (s *Store) Keys(pattern string) ([]string, error) {
	g, err := compilePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}

	s.mu.Lock()
	all := s.hashTable.List()
	s.mu.Unlock()

	matched := make([]string, 0, len(all))
	for _, key := range all {
		if g.Match(key) {
			matched = append(matched, key)
		}
	}
	sort.Strings(matched)
	return matched, nil
}

// Len returns the number of held keys
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hashTable.Len()
}

// Stats returns keyspace statistics
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, size := s.hashTable.Stats()
	return Stats{Keys: keys, ValueBytes: size}
}

// scaleDuration converts n units into a Duration, saturating instead of overflowing
func scaleDuration(n uint64, unit time.Duration) time.Duration {
	if n > uint64(math.MaxInt64/int64(unit)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(n) * unit
}
