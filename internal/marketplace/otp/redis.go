package otp

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces ledger keys.
const DefaultRedisPrefix = "otp:"

// Each key is a hash {digest, created_at, expires_at} with unix millisecond
// timestamps, and a PEXPIREAT at expires_at so Redis reclaims it on its own.

var issueScript = redis.NewScript(`
local created = redis.call('HGET', KEYS[1], 'created_at')
local expires = redis.call('HGET', KEYS[1], 'expires_at')
local now = tonumber(ARGV[2])
if created and expires and tonumber(expires) > now and now - tonumber(created) < tonumber(ARGV[4]) then
  return 0
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], 'digest', ARGV[1], 'created_at', ARGV[2], 'expires_at', ARGV[3])
redis.call('PEXPIREAT', KEYS[1], ARGV[3])
return 1
`)

var redeemScript = redis.NewScript(`
local v = redis.call('HMGET', KEYS[1], 'digest', 'expires_at')
if not v[1] or not v[2] or tonumber(v[2]) <= tonumber(ARGV[2]) then
  return 0
end
if v[1] ~= ARGV[1] then
  return -1
end
redis.call('DEL', KEYS[1])
return 1
`)

var deleteIfExpiredScript = redis.NewScript(`
local e = redis.call('HGET', KEYS[1], 'expires_at')
if e and tonumber(e) <= tonumber(ARGV[1]) then
  redis.call('DEL', KEYS[1])
  return 1
end
return 0
`)

// Redis is a Backend shared by every instance pointing at the same
// server, which lets the API scale past one process.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(phone string) string { return r.prefix + phone }

func (r *Redis) Issue(ctx context.Context, phone string, e Entry, minGap time.Duration) error {
	ok, err := issueScript.Run(ctx, r.client, []string{r.key(phone)},
		e.Digest, e.CreatedAt.UnixMilli(), e.ExpiresAt.UnixMilli(), minGap.Milliseconds(),
	).Int()
	if err != nil {
		return err
	}
	if ok == 0 {
		return ErrRateLimited
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, phone string) (Entry, error) {
	h, err := r.client.HGetAll(ctx, r.key(phone)).Result()
	if err != nil {
		return Entry{}, err
	}
	if len(h) == 0 {
		return Entry{}, ErrNoEntry
	}

	created, err := strconv.ParseInt(h["created_at"], 10, 64)
	if err != nil {
		return Entry{}, err
	}
	expires, err := strconv.ParseInt(h["expires_at"], 10, 64)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Digest:    h["digest"],
		CreatedAt: time.UnixMilli(created),
		ExpiresAt: time.UnixMilli(expires),
	}, nil
}

func (r *Redis) Redeem(ctx context.Context, phone, digest string, now time.Time) error {
	res, err := redeemScript.Run(ctx, r.client, []string{r.key(phone)}, digest, now.UnixMilli()).Int()
	if err != nil {
		return err
	}
	switch res {
	case 1:
		return nil
	case -1:
		return ErrMismatch
	default:
		return ErrNoEntry
	}
}

func (r *Redis) Delete(ctx context.Context, phone string) error {
	return r.client.Del(ctx, r.key(phone)).Err()
}

// DeleteExpired walks the prefix with SCAN. Redis normally expires keys
// itself; this catches entries whose deadline passed by the ledger's
// clock before the server's.
func (r *Redis) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", 256).Result()
		if err != nil {
			return deleted, err
		}
		for _, k := range keys {
			n, err := deleteIfExpiredScript.Run(ctx, r.client, []string{k}, now.UnixMilli()).Int()
			if err != nil && !errors.Is(err, redis.Nil) {
				return deleted, err
			}
			deleted += n
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
