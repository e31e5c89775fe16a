package repository

import "time"

// RedisOption applies a configuration option to the RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix shared by every key the store writes.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL expires stored jobs after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}
