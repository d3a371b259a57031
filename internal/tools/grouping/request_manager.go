package grouping

import (
	"context"
	"time"

	"bitbucket.org/realdreams/travel-site/internal/tools/slowlog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const pollInterval = 400 * time.Millisecond

type Response struct {
	Code    int
	Headers map[string][]string
	Body    string
}

type Storage interface {
	AcquireLock(ctx context.Context, cacheKey string) (bool, error)
	ReleaseLock(ctx context.Context, cacheKey string)
	StoreResponse(ctx context.Context, responseKey string, response *Response, duration time.Duration)
	FetchResponse(ctx context.Context, responseKey string) (*CachedValue, error)
}

// TTLs of a grouped answer: successful ones live longer than failed ones.
type TTLs struct {
	Success time.Duration
	Failure time.Duration
}

type requestManager struct {
	cache    Storage
	log      *zerolog.Logger
	slowLog  slowlog.Logger
	cacheKey string
	ttls     TTLs
}

func isStatusCodeAcceptable(code int) bool {
	return code >= 200 && code < 300
}

func (m *requestManager) requestAndStore(responseKey string, requester func() (*Response, error)) (*Response, error) {
	defer m.slowLog.Track("grouping:requestAndStore")()

	response, err := requester()
	if err != nil {
		m.cache.ReleaseLock(context.Background(), m.cacheKey)
		m.log.Err(err).Msg("Unable to request the remote service")
		return nil, err
	}

	duration := m.ttls.Success
	if !isStatusCodeAcceptable(response.Code) {
		duration = m.ttls.Failure
	}

	m.cache.StoreResponse(context.Background(), responseKey, &Response{
		Code:    response.Code,
		Body:    response.Body,
		Headers: response.Headers,
	}, duration)

	m.cache.ReleaseLock(context.Background(), m.cacheKey)

	return response, nil
}

func (m *requestManager) requestOrWait(ctx context.Context, requester func() (*Response, error)) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, context.Canceled
	}

	responseKey := "res:" + m.cacheKey

	stop := m.slowLog.Track("grouping:fetchFromCache")
	response, err := m.cache.FetchResponse(ctx, responseKey)
	stop()

	if err != nil {
		m.log.Err(err).
			Str("label", "cache").
			Bool("hit", false).
			Str("key", responseKey).
			Msg("Error fetching from cache")

		return requester()
	}

	if response != nil {
		m.log.Info().
			Str("label", "cache").
			Bool("hit", true).
			Str("key", m.cacheKey).
			Msg("Used cache response")

		if response.Headers == nil {
			response.Headers = make(map[string][]string)
		}
		response.Headers["x-grouping-hit"] = []string{"hit"}

		return &Response{
			Code:    response.Code,
			Body:    response.Body,
			Headers: response.Headers,
		}, nil
	}

	canMakeTheRequest, err := m.cache.AcquireLock(ctx, m.cacheKey)
	if err != nil || canMakeTheRequest {
		return m.requestAndStore(responseKey, requester)
	}

	select {
	case <-ctx.Done():
		return nil, context.Canceled
	case <-time.After(pollInterval):
	}

	return m.requestOrWait(ctx, requester)
}

func (m *requestManager) HandleRequest(ctx context.Context, requester func() (*Response, error)) (*Response, error) {
	defer m.slowLog.Track("grouping:HandleRequest")()
	return m.requestOrWait(ctx, requester)
}

// NewManagerFactory builds redis backed managers keeping answers for the given TTLs.
func NewManagerFactory(ttls TTLs) func(redis *redis.Client, log *zerolog.Logger, cacheKey string) RequestManager {
	return func(redisClient *redis.Client, log *zerolog.Logger, cacheKey string) RequestManager {
		logWithGroupingId := log.With().Str("groupingId", uuid.New().String()).Logger()
		slowLog := slowlog.CreateLogger(&logWithGroupingId)

		return &requestManager{
			cacheKey: cacheKey,
			ttls:     ttls,
			cache: &storage{
				redis:   redisClient,
				log:     &logWithGroupingId,
				slowLog: slowLog,
			},
			log:     &logWithGroupingId,
			slowLog: slowLog,
		}
	}
}
