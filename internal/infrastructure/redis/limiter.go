package redisinfra

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/panchhi-sarees/storefront-api/internal/config"
)

// NewClient returns a Redis client, or nil when no address is configured.
// A nil client disables per-contact send limiting entirely.
func NewClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

const allowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

// SendLimiter caps how many signup codes one contact can request per window.
// It fails open: a Redis outage must never block registrations.
type SendLimiter struct {
	client evaler
	window time.Duration
	max    int
	prefix string
}

type evaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewSendLimiter(client *redis.Client, window time.Duration, max int) *SendLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &SendLimiter{client: client, window: window, max: max, prefix: "signup:rl:"}
}

// Allow reports whether another code may be sent to contact now.
func (l *SendLimiter) Allow(ctx context.Context, contact string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key := strings.ToLower(strings.TrimSpace(contact))
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	count, err := l.client.Eval(ctx, allowScript, []string{l.prefix + key}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
