package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"civicdesk/internal/models"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps refresh-token sessions in Redis with a TTL, so a
// restart of the service does not log anyone out.
type SessionStore struct {
	Client *redis.Client
}

func (s *SessionStore) SaveSession(ctx context.Context, token string, session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, sessionKeyPrefix+token, data, ttl).Err()
}

func (s *SessionStore) GetSession(ctx context.Context, token string) (models.Session, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return models.Session{}, models.ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	return s.Client.Del(ctx, sessionKeyPrefix+token).Err()
}
