package web

import (
	"bitbucket.org/realdreams/travel-site/internal/config"
	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"bitbucket.org/realdreams/travel-site/internal/preferences"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	preferencesKey = "preferences"
	translatorKey  = "translator"
)

// Preferences hydrates the visitor's preferences and the matching translator for the request.
// The redis engine falls back to per-request memory when no redis is configured.
func Preferences(cfg config.PreferencesConfig, redisClient *redis.Client, catalog *i18n.Catalog) gin.HandlerFunc {
	secret := []byte(cfg.Secret)

	return func(c *gin.Context) {
		log := loggerFrom(c)

		var storage preferences.Storage
		switch {
		case cfg.Engine == config.PreferencesRedis && redisClient != nil:
			storage = preferences.NewRedisStorage(redisClient, preferences.VisitorID(c.Writer, c.Request))
		case cfg.Engine == config.PreferencesRedis:
			storage = preferences.NewMemoryStorage()
		default:
			storage = preferences.NewCookieStorage(c.Writer, c.Request, secret)
		}

		state := preferences.NewState(log)
		state.Hydrate(c.Request.Context(), storage, c.GetHeader("Accept-Language"))

		c.Set(preferencesKey, state)
		c.Set(translatorKey, catalog.For(state.Language()))
	}
}

func preferencesFrom(c *gin.Context) *preferences.State {
	return c.MustGet(preferencesKey).(*preferences.State)
}

func translatorFrom(c *gin.Context) i18n.Translator {
	return c.MustGet(translatorKey).(i18n.Translator)
}
