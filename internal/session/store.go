// Package session implements the server-side session store. A login
// issues an opaque random token that travels in an HttpOnly cookie;
// Redis holds the matching {role, id} record keyed by the SHA-256 hash
// of the token, bounded by a TTL. Logging out deletes the record.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bestbartenders/bartender-booking/internal/auth"
	"github.com/bestbartenders/bartender-booking/internal/utils"
)

// CookieName is the name of the session cookie.
const CookieName = "bb_session"

const keyPrefix = "sess:"

// ErrNoSession is returned when a token does not resolve to an active session.
var ErrNoSession = errors.New("session not found")

// record is the JSON document stored in Redis per session.
type record struct {
	Role auth.Role `json:"role"`
	ID   string    `json:"id"`
}

// Store persists sessions in Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a Store bound to the given Redis client. The ttl
// bounds the lifetime of every session it creates.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create opens a session for the given actor and returns the raw token
// to set as the cookie value. The anonymous actor cannot hold a session.
func (s *Store) Create(ctx context.Context, actor auth.Actor) (string, error) {
	if actor.IsAnonymous() {
		return "", errors.New("cannot create session for anonymous actor")
	}
	raw, err := utils.NewSessionToken()
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(record{Role: actor.Role(), ID: actor.ID()})
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, keyPrefix+utils.HashToken(raw), body, s.ttl).Err(); err != nil {
		return "", err
	}
	return raw, nil
}

// Resolve maps a raw cookie token to the actor it belongs to. It
// returns ErrNoSession for unknown or expired tokens.
func (s *Store) Resolve(ctx context.Context, raw string) (auth.Actor, error) {
	if raw == "" {
		return auth.Anonymous, ErrNoSession
	}
	body, err := s.rdb.Get(ctx, keyPrefix+utils.HashToken(raw)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.Anonymous, ErrNoSession
		}
		return auth.Anonymous, err
	}
	var rec record
	if err := json.Unmarshal(body, &rec); err != nil {
		return auth.Anonymous, ErrNoSession
	}
	switch rec.Role {
	case auth.RoleCustomer:
		return auth.CustomerActor(rec.ID), nil
	case auth.RoleBartender:
		return auth.BartenderActor(rec.ID), nil
	}
	return auth.Anonymous, ErrNoSession
}

// Delete terminates the session for the given raw token. Deleting a
// token that is already gone is not an error.
func (s *Store) Delete(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	return s.rdb.Del(ctx, keyPrefix+utils.HashToken(raw)).Err()
}
