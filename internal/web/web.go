package web

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"bitbucket.org/realdreams/travel-site/internal/booking"
	"bitbucket.org/realdreams/travel-site/internal/config"
	"bitbucket.org/realdreams/travel-site/internal/events"
	"bitbucket.org/realdreams/travel-site/internal/i18n"
	"bitbucket.org/realdreams/travel-site/internal/remote"
	"bitbucket.org/realdreams/travel-site/internal/search"
	"bitbucket.org/realdreams/travel-site/internal/tools/caching"
	"bitbucket.org/realdreams/travel-site/internal/tools/client"
	"bitbucket.org/realdreams/travel-site/internal/tools/grouping"
	"bitbucket.org/realdreams/travel-site/internal/tools/redisfactory"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed static
var staticFiles embed.FS

var searchGroupingTTLs = grouping.TTLs{
	Success: 30 * time.Second,
	Failure: 5 * time.Second,
}

type handlers struct {
	remote    *remote.Client
	publisher events.Publisher
	now       func() time.Time
}

// client is the remote client logging on the request logger.
func (h *handlers) client(c *gin.Context) *remote.Client {
	return h.remote.WithLogger(loggerFrom(c))
}

func (h *handlers) submitter(c *gin.Context) booking.Submitter {
	return booking.NewPublishingSubmitter(h.client(c), h.publisher, loggerFrom(c))
}

// searchGroupingKey identifies searches by their canonical browse URL.
func searchGroupingKey(c *gin.Context) string {
	return caching.Key("search", search.FromQuery(c.Request.URL.Query()).URL())
}

func SetupRouter(log *zerolog.Logger, cfg *config.Config, redisFactory *redisfactory.Factory, publisher events.Publisher) (*gin.Engine, error) {
	startTime := time.Now()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	catalog, err := i18n.Load()
	if err != nil {
		return nil, err
	}

	openapiValidator, err := OpenapiValidator(openapiContent)
	if err != nil {
		return nil, err
	}

	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}

	preferencesConfig := cfg.Preferences
	if preferencesConfig.Secret == "" {
		preferencesConfig.Secret = uuid.New().String()
		log.Warn().Msg("PREFERENCES_SECRET is not set, preference cookies will not survive a restart")
	}

	h := &handlers{
		remote: remote.New(
			log,
			caching.NewRedisCache(redisFactory.ResponsesCacheClient()),
			cfg.API.TopCacheTTL(),
			client.WithBaseURL(cfg.API.BaseURL),
			client.WithTimeout(cfg.API.Timeout()),
			client.WithHeader(cfg.API.BypassHeader),
		),
		publisher: publisher,
		now:       time.Now,
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)

	router.
		Use(StartRequest).
		Use(CorrelationId).
		Use(RegisterLogger(log)).
		Use(TraceLog).
		Use(PanicRecovery)

	router.GET("/status", func(c *gin.Context) {
		response := struct {
			Uptime float64 `json:"uptime"`
		}{
			Uptime: time.Since(startTime).Seconds(),
		}

		c.JSON(http.StatusOK, response)
	})

	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", openapiContent)
	})

	router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))

	pprof.Register(router)

	router.StaticFS("/static", http.FS(assets))
	router.GET("/mock-img.png", func(c *gin.Context) {
		c.FileFromFS("mock-img.png", http.FS(assets))
	})

	limiter := booking.NewLimiter(cfg.Booking.RatePerMinute)

	site := router.Group("", Preferences(preferencesConfig, redisFactory.PreferencesClient(), catalog))
	{
		site.GET("/", h.home)
		site.GET("/browse", h.browse)
		site.GET("/tour/:id", h.tour)

		site.POST("/browse/search", h.submitSearch)
		site.POST("/browse/reset", h.resetSearch)
		site.POST("/browse/tab", h.switchTab)
		site.POST("/top/select", h.selectTop)
		site.POST("/language", h.selectLanguage)
		site.POST("/tour/:id/book", RateLimit(limiter, h.refuseTourBooking), h.bookTour)
		site.POST("/cars/:id/book", RateLimit(limiter, h.refuseCarBooking), h.bookCar)
	}

	api := site.Group("/api", Cors(cfg.Server.AllowedOrigins), openapiValidator)
	{
		api.OPTIONS("/*path", func(c *gin.Context) {})

		api.POST("/bookings/tours", RateLimit(limiter, nil), h.apiBookTour)
		api.POST("/bookings/cars", RateLimit(limiter, nil), h.apiBookCar)
		api.PUT("/preferences/language", h.apiSetLanguage)
		api.PUT("/preferences/category", h.apiSetCategory)
		api.GET("/search", grouping.Middleware(grouping.MiddlewareOptions{
			CreateManager: grouping.NewManagerFactory(searchGroupingTTLs),
			RedisClient:   redisFactory.ResponsesCacheClient(),
			CacheKey:      searchGroupingKey,
			HandleError:   HandleError,
		}), h.apiSearch)
	}

	return router, nil
}
