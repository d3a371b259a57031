package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath          = "config.yaml"
	DefaultAPIBaseURL    = "http://185.191.141.85:8080"
	DefaultBypassHeader  = "ngrok-skip-browser-warning: any"
	DefaultPort          = "8080"
	PreferencesCookie    = "cookie"
	PreferencesRedis     = "redis"
	defaultAPITimeout    = 5000
	defaultTopCacheTTL   = 60
	defaultBookingPerMin = 10
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	API         APIConfig         `yaml:"api"`
	Redis       RedisConfig       `yaml:"redis"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Kafka       KafkaConfig       `yaml:"kafka"`
	Booking     BookingConfig     `yaml:"booking"`
}

type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           string   `yaml:"port"`
	Env            string   `yaml:"env"`
	LogLevel       string   `yaml:"log_level"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type APIConfig struct {
	BaseURL         string `yaml:"base_url"`
	TimeoutMs       int    `yaml:"timeout_ms"`
	BypassHeader    string `yaml:"bypass_header"`
	TopCacheSeconds int    `yaml:"top_cache_ttl_seconds"`
}

type RedisConfig struct {
	ResponsesCacheURI string `yaml:"responses_cache_uri"`
	PreferencesURI    string `yaml:"preferences_uri"`
}

type PreferencesConfig struct {
	Engine string `yaml:"engine"`
	Secret string `yaml:"secret"`
}

type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	BookingTopic string   `yaml:"booking_topic"`
}

type BookingConfig struct {
	RatePerMinute int `yaml:"rate_per_minute"`
}

// Load reads the yaml file at path when it exists and applies environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()

	return cfg, nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) {
	str := func(name string, target *string) {
		if value, ok := lookup(name); ok && value != "" {
			*target = value
		}
	}
	num := func(name string, target *int) {
		if value, ok := lookup(name); ok {
			if parsed, err := strconv.Atoi(value); err == nil {
				*target = parsed
			}
		}
	}
	list := func(name string, target *[]string) {
		if value, ok := lookup(name); ok && value != "" {
			*target = splitList(value)
		}
	}

	str("HOST", &c.Server.Host)
	str("PORT", &c.Server.Port)
	str("ENV", &c.Server.Env)
	str("LOG_LEVEL", &c.Server.LogLevel)
	list("CORS_ALLOWED_ORIGINS", &c.Server.AllowedOrigins)

	str("API_BASE_URL", &c.API.BaseURL)
	num("API_TIMEOUT_MS", &c.API.TimeoutMs)
	str("API_BYPASS_HEADER", &c.API.BypassHeader)
	num("TOP_CACHE_TTL_SECONDS", &c.API.TopCacheSeconds)

	str("RESPONSES_CACHE_REDIS_URI", &c.Redis.ResponsesCacheURI)
	str("PREFERENCES_REDIS_URI", &c.Redis.PreferencesURI)

	str("PREFERENCES_ENGINE", &c.Preferences.Engine)
	str("PREFERENCES_SECRET", &c.Preferences.Secret)

	list("KAFKA_BROKERS", &c.Kafka.Brokers)
	str("KAFKA_BOOKING_TOPIC", &c.Kafka.BookingTopic)

	num("BOOKING_RATE_PER_MINUTE", &c.Booking.RatePerMinute)
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if c.API.TimeoutMs <= 0 {
		c.API.TimeoutMs = defaultAPITimeout
	}
	if c.API.BypassHeader == "" {
		c.API.BypassHeader = DefaultBypassHeader
	}
	if c.API.TopCacheSeconds <= 0 {
		c.API.TopCacheSeconds = defaultTopCacheTTL
	}
	if c.Preferences.Engine != PreferencesRedis {
		c.Preferences.Engine = PreferencesCookie
	}
	if c.Booking.RatePerMinute <= 0 {
		c.Booking.RatePerMinute = defaultBookingPerMin
	}
	if c.Kafka.BookingTopic == "" {
		c.Kafka.BookingTopic = "bookings"
	}
}

func (c *Config) Production() bool {
	return c.Server.Env == "production"
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMs) * time.Millisecond
}

func (a APIConfig) TopCacheTTL() time.Duration {
	return time.Duration(a.TopCacheSeconds) * time.Second
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
