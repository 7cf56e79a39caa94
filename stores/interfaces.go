package stores

import (
	"context"
	"errors"
	"time"
)

// Turn roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged message in a conversation.
type Turn struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ErrUnsupportedStore is returned by the factory for unknown store types.
var ErrUnsupportedStore = errors.New("unsupported store type")

// ConversationStore keeps the ordered turn history for chat sessions.
// Get returns an empty slice for an unknown session key. Append must be safe
// under concurrent calls for the same key: two interleaved turns may land in
// either order, but neither may be lost.
type ConversationStore interface {
	Get(ctx context.Context, sessionKey string) ([]Turn, error)
	Append(ctx context.Context, sessionKey string, turn Turn) error
	Expire(ctx context.Context, sessionKey string) error

	Ping(ctx context.Context) error
	Close() error
}

// IdleExpirer is implemented by stores that cannot lean on a native TTL and
// need a periodic sweep instead. Returns the number of sessions removed.
type IdleExpirer interface {
	ExpireIdle(ctx context.Context, olderThan time.Duration) (int, error)
}

// StoreConfig holds configuration for conversation stores.
type StoreConfig struct {
	Type       string        `json:"type"`       // "memory", "redis", "sqlite", "postgres"
	Connection string        `json:"connection"` // DSN, file path, or redis address
	TTL        time.Duration `json:"ttl"`        // session idle lifetime (0 = never expire)
}

// NewStoreConfig creates a new store configuration.
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
	}
}

// WithTTL sets the session idle lifetime.
func (c *StoreConfig) WithTTL(ttl time.Duration) *StoreConfig {
	c.TTL = ttl
	return c
}
