package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"boardman-api/internal/domain"
)

// ErrCodeNotFound is returned when no pending code exists for an email
var ErrCodeNotFound = errors.New("pending code not found")

// CodeRepository defines the interface for pending verification code storage.
// A save replaces any previous code for the same email.
type CodeRepository interface {
	Save(ctx context.Context, code *domain.PendingCode, ttl time.Duration) error
	Find(ctx context.Context, email string) (*domain.PendingCode, error)
	Delete(ctx context.Context, email string) error
}

// codeRepositoryImpl is the Redis implementation of CodeRepository.
// Keys expire with the TTL; the epoch-ms expiration inside the value is
// still checked by the caller so the validity boundary is exact.
type codeRepositoryImpl struct {
	client *redis.Client
}

// NewCodeRepository creates a new instance of CodeRepository
func NewCodeRepository(client *redis.Client) CodeRepository {
	return &codeRepositoryImpl{client: client}
}

func codeKey(email string) string {
	return "code:" + email
}

// Save stores the pending code, superseding any previous one for the email
func (r *codeRepositoryImpl) Save(ctx context.Context, code *domain.PendingCode, ttl time.Duration) error {
	data, err := json.Marshal(code)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, codeKey(code.Email), data, ttl).Err()
}

// Find retrieves the pending code for an email
func (r *codeRepositoryImpl) Find(ctx context.Context, email string) (*domain.PendingCode, error) {
	data, err := r.client.Get(ctx, codeKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	var code domain.PendingCode
	if err := json.Unmarshal(data, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

// Delete removes the pending code for an email
func (r *codeRepositoryImpl) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, codeKey(email)).Err()
}
