package store

import "time"

// Entry represents a single value held in the keyspace
type Entry struct {
	Value     string
	CreatedAt time.Time
	ExpiresAt time.Time // zero when the entry never expires
}

// HasExpiry reports whether a TTL was applied to the entry
func (e *Entry) HasExpiry() bool {
	return !e.ExpiresAt.IsZero()
}

// IsExpired checks whether the entry is dead at the given instant.
// An entry expires at ExpiresAt, not after it.
func (e *Entry) IsExpired(now time.Time) bool {
	return e.HasExpiry() && !now.Before(e.ExpiresAt)
}

// TTL returns the time left before expiry, or -1 when the entry has no expiry
func (e *Entry) TTL(now time.Time) time.Duration {
	if !e.HasExpiry() {
		return -1
	}
	if left := e.ExpiresAt.Sub(now); left > 0 {
		return left
	}
	return 0
}

// Size returns the payload size of the entry in bytes
func (e *Entry) Size() int {
	return len(e.Value)
}
