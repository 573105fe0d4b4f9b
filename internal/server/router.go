package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/velore/contactbook/internal/http/handlers"
	"github.com/velore/contactbook/internal/http/middleware"
	"github.com/velore/contactbook/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowOrigins   []string
	ContactHandler *handlers.ContactHandler
	PageHandler    *handlers.PageHandler
	EventsHandler  *handlers.EventsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("contactbook"))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Contacts page + JSON collection
	router.GET("/contacts", cfg.PageHandler.Contacts)
	router.GET("/contacts.json", cfg.ContactHandler.List)
	router.POST("/contacts.json", cfg.ContactHandler.Create)
	router.PUT("/contacts/:id", cfg.ContactHandler.Update)
	router.DELETE("/contacts/:id", cfg.ContactHandler.Delete)

	// Realtime
	router.GET("/contacts/events", cfg.EventsHandler.Stream)

	return router
}
