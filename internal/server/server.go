package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agenthands/travelmate/internal/core"
	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/logger"
)

const requestIDHeader = "X-Request-ID"

type Server struct {
	TravelMate   *core.TravelMate
	AllowOrigins []string
	log          *logger.Logger
}

func NewServer(tm *core.TravelMate, allowOrigins []string, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{TravelMate: tm, AllowOrigins: allowOrigins, log: log}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	corsCfg := cors.DefaultConfig()
	if len(s.AllowOrigins) == 0 || (len(s.AllowOrigins) == 1 && s.AllowOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.AllowOrigins
	}
	corsCfg.AddAllowHeaders(requestIDHeader)
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/places", s.ListPlaces)
	api.POST("/top-places", s.TopPlaces)
	api.POST("/event-planner", s.EventPlanner)

	return r
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString("request_id"),
		)
	}
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var malformed *model.MalformedInputError
	switch {
	case errors.Is(err, model.ErrExtraction),
		errors.Is(err, model.ErrUpstream),
		errors.As(err, &malformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
