package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"rentcrm/internal/avito"
	"rentcrm/internal/booking"
	"rentcrm/internal/client"
	"rentcrm/internal/config"
	"rentcrm/internal/finance"
	"rentcrm/internal/fleet"
	"rentcrm/internal/handover"
	"rentcrm/internal/integrations"
	"rentcrm/internal/lead"
	"rentcrm/internal/partner"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config
}

func New(db *sqlx.DB, cfg *config.Config) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(50, 100))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(405, gin.H{"error": "Method not allowed"})
	})

	bookingHandler := booking.NewHandler(db)
	clientHandler := client.NewHandler(db)
	fleetHandler := fleet.NewHandler(db)
	partnerHandler := partner.NewHandler(db)
	leadHandler := lead.NewHandler(db)
	financeHandler := finance.NewHandler(db)
	handoverHandler := handover.NewHandler(db)
	avitoHandler := avito.NewHandler(cfg.Avito)
	integrationsHandler := integrations.NewHandler(db, cfg)

	router.GET("/bookings", bookingHandler.Get)
	router.POST("/bookings", bookingHandler.Create)
	router.PUT("/bookings", bookingHandler.Update)
	router.DELETE("/bookings", bookingHandler.Delete)

	router.GET("/clients", clientHandler.List)
	router.POST("/clients", clientHandler.Create)
	router.PUT("/clients", clientHandler.Update)
	router.DELETE("/clients", clientHandler.Delete)

	router.GET("/vehicles", fleetHandler.Get)
	router.POST("/vehicles", fleetHandler.Create)
	router.PUT("/vehicles", fleetHandler.Update)
	router.DELETE("/vehicles", fleetHandler.Deactivate)
	router.Any("/vehicles/admin", fleetHandler.Admin)

	router.GET("/partners", partnerHandler.Get)
	router.POST("/partners", partnerHandler.Create)
	router.PUT("/partners", partnerHandler.Update)
	router.DELETE("/partners", partnerHandler.Delete)

	router.GET("/leads", leadHandler.Get)
	router.POST("/leads", leadHandler.Create)
	router.PUT("/leads", leadHandler.Update)
	router.DELETE("/leads", leadHandler.Delete)

	router.GET("/finances", financeHandler.Get)
	router.POST("/finances", financeHandler.Create)
	router.PUT("/finances", financeHandler.Update)
	router.DELETE("/finances", financeHandler.Delete)

	router.GET("/handovers", handoverHandler.Get)
	router.POST("/handovers", handoverHandler.Create)

	router.GET("/avito/messages", avitoHandler.Messages)
	router.GET("/avito/oauth/callback", avitoHandler.OAuthCallback)

	router.GET("/integrations", integrationsHandler.Dispatch)
	router.POST("/integrations", integrationsHandler.Dispatch)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// corsMiddleware opens the API to the browser frontend. Preflights are
// answered 200 with an empty body.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Authorization, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}
