package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Natnat0905/GeoChat/internal/config"
	"github.com/Natnat0905/GeoChat/internal/geometry"
	"github.com/Natnat0905/GeoChat/internal/guardrails"
	"github.com/Natnat0905/GeoChat/internal/metrics"
	"github.com/Natnat0905/GeoChat/internal/render"
)

const (
	serviceName     = "GeoChat Geometry Tutor API"
	robotsTxt       = "User-agent: *\nDisallow: /\n"
	shutdownTimeout = 10 * time.Second
)

// Tutor answers a chat message. Implementations never fail; degraded
// answers are returned as ordinary text.
type Tutor interface {
	Respond(ctx context.Context, message string) string
}

type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	tutor    Tutor
	provider string
	guards   *guardrails.Guardrails
	renderer *render.Renderer
	usage    *metrics.Usage
	log      *slog.Logger
}

type chatRequest struct {
	UserMessage string `json:"user_message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type circleRequest struct {
	Radius        *float64 `json:"radius"`
	Diameter      *float64 `json:"diameter"`
	Circumference *float64 `json:"circumference"`
}

type diagramResponse struct {
	Type       string             `json:"type"`
	Image      string             `json:"image"`
	Caption    string             `json:"caption"`
	Parameters map[string]float64 `json:"parameters"`
}

func New(cfg *config.Config, tutor Tutor, providerName string, usage *metrics.Usage, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if usage == nil {
		usage = &metrics.Usage{}
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(logger), allowAllOrigins())
	srv := &Server{
		cfg:      cfg,
		engine:   r,
		tutor:    tutor,
		provider: providerName,
		guards:   guardrails.New(cfg.MaxMessageLength),
		renderer: render.New(render.WithSize(cfg.DiagramSize)),
		usage:    usage,
		log:      logger,
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.root)
	s.engine.GET("/health", s.health)
	s.engine.POST("/chat", s.chat)
	s.engine.POST("/diagram/circle", s.circleDiagram)
	s.engine.GET("/favicon.ico", s.favicon)
	s.engine.GET("/robots.txt", s.robots)
	s.engine.NoRoute(s.notFound)
}

// Handler exposes the instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.engine, "geochat")
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	s.log.Info("listening", "addr", srv.Addr, "provider", s.provider)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the GeoChat geometry tutor. POST your question to /chat.",
		"status":  "active",
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "active",
		"service":  serviceName,
		"provider": s.provider,
		"usage":    s.usage.Snapshot(),
	})
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := s.guards.CheckInput(req.UserMessage); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.log.InfoContext(c.Request.Context(), "tutoring request", "chars", len(req.UserMessage))
	reply := s.tutor.Respond(c.Request.Context(), req.UserMessage)
	c.JSON(http.StatusOK, chatResponse{Response: reply})
}

func (s *Server) circleDiagram(c *gin.Context) {
	var req circleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"type": "error", "content": "invalid request"})
		return
	}
	params := geometry.NormalizeCircle(map[string]*float64{
		geometry.KeyRadius:        req.Radius,
		geometry.KeyDiameter:      req.Diameter,
		geometry.KeyCircumference: req.Circumference,
	})

	var verr *geometry.ValidationError
	radius, err := params.Radius()
	if err != nil {
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"type": "error", "content": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"type": "error", "content": "Error generating image."})
		return
	}

	d, err := s.renderer.Circle(radius)
	if err != nil {
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"type": "error", "content": verr.Error()})
			return
		}
		s.log.ErrorContext(c.Request.Context(), "circle render failed", "radius", radius, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"type": "error", "content": "Error generating image."})
		return
	}
	c.JSON(http.StatusOK, diagramResponse{
		Type:       "visual",
		Image:      d.DataURI,
		Caption:    d.Caption,
		Parameters: d.Measurements,
	})
}

func (s *Server) favicon(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (s *Server) robots(c *gin.Context) {
	c.String(http.StatusOK, robotsTxt)
}

func (s *Server) notFound(c *gin.Context) {
	s.log.WarnContext(c.Request.Context(), "route not found", "method", c.Request.Method, "path", c.Request.URL.Path)
	c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
}
