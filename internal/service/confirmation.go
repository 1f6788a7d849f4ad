package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidConfirmationCode covers missing, expired, reused and plain
// wrong codes alike; callers must not be able to tell these apart.
var ErrInvalidConfirmationCode = errors.New("invalid confirmation code")

// ConfirmationStore keeps single-use, time-bounded confirmation codes.
// Storing a new code for a username invalidates the previous one.
type ConfirmationStore interface {
	Store(ctx context.Context, username, code string) error
	Consume(ctx context.Context, username, code string) error
}

type redisConfirmationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisConfirmationStore(client *redis.Client, ttl time.Duration) ConfirmationStore {
	return &redisConfirmationStore{client: client, ttl: ttl}
}

func confirmationKey(username string) string {
	return "confirmation_code:" + username
}

// Store saves a bcrypt hash of the code under the username with the
// configured TTL. Only the hash ever reaches redis.
func (s *redisConfirmationStore) Store(ctx context.Context, username, code string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, confirmationKey(username), string(hash), s.ttl).Err()
}

// Consume verifies the code and deletes it on success, so a code can
// be exchanged for a token exactly once.
func (s *redisConfirmationStore) Consume(ctx context.Context, username, code string) error {
	hash, err := s.client.Get(ctx, confirmationKey(username)).Result()
	if err == redis.Nil {
		return ErrInvalidConfirmationCode
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return ErrInvalidConfirmationCode
	}
	return s.client.Del(ctx, confirmationKey(username)).Err()
}
