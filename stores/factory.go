package stores

import (
	"fmt"
)

// NewStore creates a conversation store from configuration.
func NewStore(config *StoreConfig) (ConversationStore, error) {
	switch config.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(config.Connection, config.TTL), nil
	case "sqlite":
		return NewSQLiteStore(config.Connection)
	case "postgres":
		return NewPostgresStore(config.Connection)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStore, config.Type)
	}
}
