package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/session"
)

const (
	sessionKeyPrefix    = "session:"
	accountSessionsKey  = "account_sessions:"
	accountIndexPadding = 24 * time.Hour
)

// RedisSessionStore keeps one key per session plus a per-account set so all
// of an account's sessions can be revoked when it is deleted.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Create(ctx context.Context, accountID uuid.UUID) (session.Session, error) {
	if s == nil || s.client == nil {
		return session.Session{}, errors.New("session store unavailable")
	}

	sess := session.Session{ID: uuid.New(), AccountID: accountID}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(sess.ID), accountID.String(), s.ttl)
	pipe.SAdd(ctx, accountKey(accountID), sess.ID.String())
	// The index outlives the sessions slightly so revocation never misses one.
	pipe.Expire(ctx, accountKey(accountID), s.ttl+accountIndexPadding)
	if _, err := pipe.Exec(ctx); err != nil {
		return session.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id uuid.UUID) (session.Session, error) {
	if s == nil || s.client == nil {
		return session.Session{}, errors.New("session store unavailable")
	}

	raw, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, err
	}

	accountID, err := uuid.Parse(raw)
	if err != nil {
		return session.Session{}, session.ErrNotFound
	}
	return session.Session{ID: id, AccountID: accountID}, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if s == nil || s.client == nil {
		return errors.New("session store unavailable")
	}

	raw, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	if accountID, parseErr := uuid.Parse(raw); parseErr == nil {
		pipe.SRem(ctx, accountKey(accountID), id.String())
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisSessionStore) DeleteForAccount(ctx context.Context, accountID uuid.UUID) error {
	if s == nil || s.client == nil {
		return errors.New("session store unavailable")
	}

	ids, err := s.client.SMembers(ctx, accountKey(accountID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.client.TxPipeline()
	for _, raw := range ids {
		if id, parseErr := uuid.Parse(raw); parseErr == nil {
			pipe.Del(ctx, sessionKey(id))
		}
	}
	pipe.Del(ctx, accountKey(accountID))
	_, err = pipe.Exec(ctx)
	return err
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func accountKey(accountID uuid.UUID) string {
	return accountSessionsKey + accountID.String()
}
