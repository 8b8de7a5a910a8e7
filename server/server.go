package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/example/giftstore/pkg/catalog"
	"github.com/example/giftstore/pkg/config"
	"github.com/example/giftstore/pkg/models"
	"github.com/example/giftstore/pkg/orders"
	"github.com/example/giftstore/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusStore is what the diagnostic endpoint needs beyond the plain
// document operations: the retained init error and the database name.
type StatusStore interface {
	repository.DocumentStore
	InitError() error
	DatabaseName() string
}

type Server struct {
	config  *config.Config
	logger  *zap.Logger
	router  *gin.Engine
	store   StatusStore
	catalog *catalog.Service
	orders  *orders.Service
}

func NewServer(cfg *config.Config, logger *zap.Logger, store StatusStore, catalogSvc *catalog.Service, orderSvc *orders.Service) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))
	router.Use(corsMiddleware())

	return &Server{
		config:  cfg,
		logger:  logger,
		router:  router,
		store:   store,
		catalog: catalogSvc,
		orders:  orderSvc,
	}
}

func (s *Server) SetupRoutes() {
	s.router.GET("/", s.root)
	s.router.GET("/test", s.diagnostics)

	api := s.router.Group("/api")
	{
		api.GET("/gifts", s.listGifts)
		api.GET("/testimonials", s.listTestimonials)
		api.POST("/orders", s.submitOrder)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("API server starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "E-Gifts API running"})
}

// diagnostics reports storage availability without ever failing the
// request. The three states are reported verbatim so "never configured"
// and "configured but broken" stay distinguishable.
func (s *Server) diagnostics(c *gin.Context) {
	resp := gin.H{
		"backend":       "running",
		"storage":       s.store.State().String(),
		"database_url":  setOrNot(s.config.Storage.URI),
		"database_name": setOrNot(s.config.Storage.Database),
		"collections":   []string{},
	}

	switch s.store.State() {
	case repository.StateErrored:
		resp["error"] = truncateError(s.store.InitError())
	case repository.StateConnected:
		resp["database_name"] = s.store.DatabaseName()
		names, err := s.store.ListCollectionNames(c.Request.Context())
		if err != nil {
			resp["storage"] = "error"
			resp["error"] = truncateError(err)
			break
		}
		if len(names) > 10 {
			names = names[:10]
		}
		resp["collections"] = names
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) listGifts(c *gin.Context) {
	gifts, err := s.catalog.ListGifts(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list gifts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gifts)
}

func (s *Server) listTestimonials(c *gin.Context) {
	testimonials, err := s.catalog.ListTestimonials(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list testimonials", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, testimonials)
}

func (s *Server) submitOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid order payload: " + err.Error()})
		return
	}

	receipt, err := s.orders.SubmitOrder(c.Request.Context(), &order)
	if err != nil {
		var verr *models.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "validation failed", "fields": verr.Fields})
		case errors.Is(err, orders.ErrTotalMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Total mismatch"})
		default:
			s.logger.Error("Order submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store order"})
		}
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func setOrNot(v string) string {
	if v == "" {
		return "not set"
	}
	return "set"
}

func truncateError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if len(msg) > 80 {
		msg = msg[:80]
	}
	return msg
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// corsMiddleware mirrors the permissive policy of the original storefront:
// any origin may call the public API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
