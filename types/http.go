package types

import "github.com/himakhaitan/redis-lite/pkg/metrics"

type BaseResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type GetResponse struct {
	BaseResponse
	Key   string `json:"key"`
	Value string `json:"value"`
	// TTL is the remaining lifetime in seconds, -1 when the key never expires
	TTL int64 `json:"ttl"`
}

type ListKeysResponse struct {
	BaseResponse
	Pattern string   `json:"pattern"`
	Keys    []string `json:"keys"`
}

// InfoResponse is the JSON form of INFO plus the configuration snapshot
type InfoResponse struct {
	BaseResponse
	Role              string                `json:"role"`
	ReplicationID     string                `json:"master_replid,omitempty"`
	ReplicationOffset string                `json:"master_repl_offset,omitempty"`
	Keys              int                   `json:"keys"`
	ValueBytes        int64                 `json:"value_bytes"`
	Stats             metrics.Stats         `json:"stats"`
	Commands          []metrics.CommandStat `json:"commands"`
	Config            map[string]string     `json:"config"`
}
