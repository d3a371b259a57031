package grouping

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/realdreams/travel-site/internal/tools/caching"
	"bitbucket.org/realdreams/travel-site/internal/tools/slowlog"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const lockTTL = 1 * time.Minute

type CachedValue struct {
	Code    int                 `json:"code"`
	Headers map[string][]string `json:"headers"`
	Body    string              `json:"body"`
}

type storage struct {
	redis   *redis.Client
	log     *zerolog.Logger
	slowLog slowlog.Logger
}

func (s *storage) AcquireLock(ctx context.Context, cacheKey string) (bool, error) {
	return s.redis.SetNX(ctx, cacheKey, "", lockTTL).Result()
}

func (s *storage) ReleaseLock(_ context.Context, cacheKey string) {
	s.redis.Del(context.Background(), cacheKey)
}

func (s *storage) StoreResponse(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
	defer s.slowLog.Track("grouping:compress")()

	compressed, err := caching.Compress(CachedValue{
		Code:    response.Code,
		Body:    response.Body,
		Headers: response.Headers,
	})
	if err != nil {
		s.log.Err(err).Msg("Unable to compress the response body")
		return
	}

	s.redis.Set(ctx, responseKey, compressed, duration)
}

// FetchResponse returns nil without error on a cache miss.
func (s *storage) FetchResponse(ctx context.Context, responseKey string) (*CachedValue, error) {
	response, err := s.redis.Get(ctx, responseKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	defer s.slowLog.Track("grouping:decompress")()

	value := CachedValue{}
	if err := caching.Decompress(response, &value); err != nil {
		return nil, err
	}

	return &value, nil
}
