package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/steveyiyo/speechcoach-backend/internal/config"
	"github.com/steveyiyo/speechcoach-backend/internal/core/coach"
	"github.com/steveyiyo/speechcoach-backend/internal/core/gemini"
	"github.com/steveyiyo/speechcoach-backend/internal/http/handlers"
	"github.com/steveyiyo/speechcoach-backend/pkg/ws"
)

// NewRouter wires the analyze pipeline for cfg. The hub is returned so the
// caller can close open streams on shutdown.
func NewRouter(cfg config.Config) (*gin.Engine, *ws.Hub, error) {
	tmpl, err := coach.LookupTemplate(cfg.PromptTemplate)
	if err != nil {
		return nil, nil, err
	}

	configured := cfg.APIKeyConfigured()
	var analyzer handlers.Analyzer
	if configured {
		gen, err := newGenerator(cfg)
		if err != nil {
			return nil, nil, err
		}
		analyzer = coach.NewService(gen, tmpl, cfg.AnalyzeTimeout)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestID(), cors())
	r.HandleMethodNotAllowed = true
	r.NoMethod(handlers.MethodNotAllowed)
	r.NoRoute(staticOrNotFound(cfg.StaticDir))

	hub := ws.NewHub()
	ah := handlers.NewAnalyzeHandler(analyzer, configured)
	hh := handlers.NewHealthHandler(configured)
	sh := handlers.NewStreamHandler(hub, analyzer, configured, cfg.MaxBodyBytes, cfg.AnalyzeTimeout)

	api := r.Group("/api")
	api.POST("/analyze", limitBody(cfg.MaxBodyBytes), ah.Analyze)
	api.GET("/analyze/stream", sh.WS)
	api.GET("/health", hh.Health)
	return r, hub, nil
}

func newGenerator(cfg config.Config) (coach.Generator, error) {
	opts := gemini.Options{BaseURL: cfg.GeminiBaseURL, Model: cfg.GeminiModel, Timeout: cfg.AnalyzeTimeout}
	switch cfg.Transport {
	case "rest":
		return gemini.New(cfg.GeminiAPIKey, opts), nil
	case "sdk":
		c, err := gemini.NewSDK(context.Background(), cfg.GeminiAPIKey, opts)
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown GEMINI_TRANSPORT %q (want rest or sdk)", cfg.Transport)
	}
}

// staticOrNotFound serves the front-end from dir when one is configured.
// API paths never fall through to files.
func staticOrNotFound(dir string) gin.HandlerFunc {
	if dir == "" {
		return handlers.NotFound
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		log.Printf("[static] STATIC_DIR %q is not a directory, static serving disabled", dir)
		return handlers.NotFound
	}
	fs := http.FileServer(http.Dir(filepath.Clean(dir)))
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			handlers.NotFound(c)
			return
		}
		fs.ServeHTTP(c.Writer, c.Request)
	}
}
