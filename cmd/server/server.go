package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/steveyiyo/speechcoach-backend/internal/config"
	h "github.com/steveyiyo/speechcoach-backend/internal/http"
	"github.com/steveyiyo/speechcoach-backend/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()
	logCloser := logging.Setup(cfg)
	defer logCloser.Close()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	if !cfg.APIKeyConfigured() {
		log.Println("WARNING: GEMINI_API_KEY is not set; /api/analyze will answer 500 until it is")
		log.Println("Copy .env.example to .env and replace 'your_api_key_here' with a real key")
	}

	r, hub, err := h.NewRouter(cfg)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Speech coach backend on :%s (model=%s transport=%s prompt=%s)", cfg.Port, cfg.GeminiModel, cfg.Transport, cfg.PromptTemplate)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down, closing %d open streams", hub.Len())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AnalyzeTimeout+5*time.Second)
	defer cancel()
	hub.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
