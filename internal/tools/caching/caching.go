package caching

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "travel-site:"

type Engine interface {
	Store(ctx context.Context, key string, value any, ttl time.Duration) error
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Cacher stores JSON values deflated. A Cacher without an engine never hits.
type Cacher struct {
	engine Engine
}

func NewRedisCache(redisClient *redis.Client) *Cacher {
	if redisClient == nil {
		return &Cacher{}
	}

	return &Cacher{
		engine: &redisCache{
			redis: redisClient,
		},
	}
}

func Key(parts ...string) string {
	var key bytes.Buffer
	key.WriteString(keyPrefix)
	for i, part := range parts {
		if i > 0 {
			key.WriteByte(':')
		}
		key.WriteString(part)
	}
	return key.String()
}

func deflate(uncompressed []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, _ := flate.NewWriter(&buffer, flate.BestSpeed)

	_, err := writer.Write(uncompressed)
	if err != nil {
		return nil, err
	}

	err = writer.Close()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func inflate(compressed []byte) ([]byte, error) {
	buffer := bytes.NewReader(compressed)
	reader := flate.NewReader(buffer)
	defer reader.Close()

	var out bytes.Buffer
	_, err := out.ReadFrom(reader)
	if err != nil {
		return []byte{}, err
	}

	return out.Bytes(), nil
}

func (c *Cacher) Enabled() bool {
	return c != nil && c.engine != nil
}

func (c *Cacher) Store(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}

	compressed, err := Compress(value)
	if err != nil {
		return err
	}

	return c.engine.Store(ctx, key, compressed, ttl)
}

func (c *Cacher) Fetch(ctx context.Context, key string, destination any) bool {
	if !c.Enabled() {
		return false
	}

	value, err := c.engine.Fetch(ctx, key)
	if err != nil {
		return false
	}

	if value == nil {
		return false
	}

	return Decompress(value, destination) == nil
}

// Compress encodes value as deflated JSON.
func Compress(value any) ([]byte, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	return deflate(encoded)
}

func Decompress(compressed []byte, destination any) error {
	uncompressed, err := inflate(compressed)
	if err != nil {
		return err
	}

	return json.Unmarshal(uncompressed, destination)
}
