// Package server exposes the processed-book library, the user
// vocabulary and dictionary lookups over HTTP.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/lexibook/lexibook/internal/dict"
	"github.com/lexibook/lexibook/internal/vocab"
)

// Config holds the server's collaborators and data locations.
type Config struct {
	// DataDir is the root directory of processed book outputs.
	DataDir string
	// Vocab is the user vocabulary store.
	Vocab *vocab.Store
	// Dict is the preloaded dictionary.
	Dict *dict.Dictionary
	// TranslateRPM bounds translate requests per client IP per minute.
	// Zero selects the default.
	TranslateRPM int64
}

const defaultTranslateRPM = 120

// New builds the HTTP engine with all routes registered.
func New(cfg Config) *gin.Engine {
	h := &handlers{
		dataDir: cfg.DataDir,
		vocab:   cfg.Vocab,
		dict:    cfg.Dict,
	}

	router := gin.Default()
	router.Use(cors.Default())

	rpm := cfg.TranslateRPM
	if rpm <= 0 {
		rpm = defaultTranslateRPM
	}
	translateLimit := mgin.NewMiddleware(limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  rpm,
	}))

	api := router.Group("/api")
	{
		api.GET("/books", h.listBooks)
		api.GET("/:book/metadata", h.bookMetadata)
		api.GET("/:book/pages/:index", h.bookPage)

		api.GET("/user/vocab", h.vocabList)
		api.POST("/user/vocab", h.vocabToggle)

		translate := api.Group("/translate", translateLimit)
		{
			translate.GET("/:word", h.translateWord)
			translate.POST("/batch", h.translateBatch)
		}
	}

	router.GET("/books/:book/images/*file", h.bookImage)

	return router
}
