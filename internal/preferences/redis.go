package preferences

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	VisitorCookieName = "rd_visitor"
	redisTTL          = 365 * 24 * time.Hour
)

type redisStorage struct {
	redis     *redis.Client
	visitorID string
}

func NewRedisStorage(redisClient *redis.Client, visitorID string) *redisStorage {
	return &redisStorage{
		redis:     redisClient,
		visitorID: visitorID,
	}
}

func (s *redisStorage) key() string {
	return "prefs:" + s.visitorID
}

func (s *redisStorage) Get(ctx context.Context, key Key) (string, bool, error) {
	value, err := s.redis.HGet(ctx, s.key(), string(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

func (s *redisStorage) Set(ctx context.Context, key Key, value string) error {
	if err := s.redis.HSet(ctx, s.key(), string(key), value).Err(); err != nil {
		return err
	}

	return s.redis.Expire(ctx, s.key(), redisTTL).Err()
}

// VisitorID returns the visitor cookie, issuing a fresh one when absent or malformed.
func VisitorID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(VisitorCookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	visitorID := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookieName,
		Value:    visitorID,
		Path:     "/",
		MaxAge:   int(redisTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}
