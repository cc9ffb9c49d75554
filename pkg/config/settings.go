package config

import (
	"sort"
	"strconv"
	"sync"

	"github.com/samber/lo"
)

// Keys seeded into Settings
const (
	KeyDir               = "dir"
	KeyDBFilename        = "dbfilename"
	KeyPort              = "port"
	KeyReplicaOf         = "replicaof"
	KeyReplicationID     = "replication_id"
	KeyReplicationOffset = "replication_offset"
)

const replicationIDLength = 40

// Settings is the shared string-keyed configuration read by CONFIG GET and INFO
type Settings struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSettings seeds Settings from cfg. A primary also gets a random
// replication id and a zero offset.
func NewSettings(cfg *Config) *Settings {
	s := &Settings{
		values: map[string]string{
			KeyDir:        cfg.Dir,
			KeyDBFilename: cfg.DBFilename,
			KeyPort:       strconv.Itoa(cfg.Port),
			KeyReplicaOf:  cfg.ReplicaOf,
		},
	}

	if cfg.ReplicaOf == "" {
		s.values[KeyReplicationID] = lo.RandomString(replicationIDLength, lo.AlphanumericCharset)
		s.values[KeyReplicationOffset] = "0"
	}
	return s
}

func (s *Settings) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

func (s *Settings) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
}

// All returns a copy of every setting
func (s *Settings) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Keys returns the setting names, sorted
func (s *Settings) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := lo.Keys(s.values)
	sort.Strings(keys)
	return keys
}

// IsReplica reports whether this node was started as a replica
func (s *Settings) IsReplica() bool {
	v, _ := s.Get(KeyReplicaOf)
	return v != ""
}
