package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/skim"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ShutdownTimeout is the time given for outstanding requests to finish before shutdown.
const ShutdownTimeout = 5 * time.Second

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// Server exposes the extraction and summarization stages as a JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *gin.Engine

	// Bind address for the server's listener.
	Addr string

	// Services used by the HTTP routes.
	Extractor  skim.ArticleExtractor
	Summarizer skim.Summarizer

	Logger *slog.Logger
}

// NewServer returns a new instance of Server.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		server: &http.Server{},
		router: gin.New(),
		Logger: logger,
	}
	s.server.Handler = s.router

	s.router.Use(gin.Recovery(), s.requestID, s.logRequest)

	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.POST("/extract", s.handleExtract)
	api.POST("/summarize", s.handleSummarize)

	return s
}

// Open begins listening on the bind address.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	go func() {
		_ = s.server.Serve(s.ln)
	}()

	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP routes a request. Used by tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

func (s *Server) logRequest(c *gin.Context) {
	begin := time.Now()
	c.Next()
	s.Logger.Info("http request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(begin),
		"request_id", c.GetString("request_id"),
	)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
