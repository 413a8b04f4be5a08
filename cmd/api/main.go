package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stixify/internal/extract"
	"stixify/internal/gateway/config"
	"stixify/internal/gateway/handler"
	"stixify/internal/gateway/jobs"
	"stixify/internal/gateway/repository/blob"
	"stixify/internal/gateway/repository/document"
	"stixify/internal/gateway/server"
	"stixify/internal/gateway/usecase/extraction"
	"stixify/internal/llm"
	"stixify/internal/prompt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	catalog, err := prompt.Load()
	if err != nil {
		log.Fatalf("load prompt catalog: %v", err)
	}

	blobs, err := blob.New(blob.Config{
		Endpoint:  cfg.Blob.Endpoint,
		Region:    cfg.Blob.Region,
		AccessKey: cfg.Blob.AccessKey,
		SecretKey: cfg.Blob.SecretKey,
		Bucket:    cfg.Blob.Bucket,
		UseSSL:    cfg.Blob.UseSSL,
	})
	if err != nil {
		log.Fatalf("init blob store: %v", err)
	}

	records, err := document.NewFromDSN(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("init document store: %v", err)
	}
	defer records.Close()

	extractor := extract.New(catalog, buildProviders(cfg)...)
	jobStore := jobs.NewStore()
	svc := extraction.New(records, blobs, extractor, jobStore)

	srv := server.New(cfg.Port, server.NewRouter(handler.New(svc, jobStore)))

	go func() {
		log.Printf("Starting metrics server on %s", cfg.MetricsAddr)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// buildProviders assembles the fallback chain from configuration. A backend
// with missing credentials logs and drops out; the other one still runs.
func buildProviders(cfg *config.Config) []extract.Provider {
	var providers []extract.Provider

	if or, err := llm.NewOpenRouterClient(cfg.LLM.OpenRouterKey, cfg.LLM.OpenRouterModel); err != nil {
		log.Printf("openrouter disabled: %v", err)
	} else {
		providers = append(providers, extract.Provider{Client: or, Flavor: "openrouter"})
	}

	if cfg.LLM.GeminiKey == "" {
		log.Printf("gemini disabled: missing API key")
	} else if gm, err := llm.NewGeminiClient(context.Background(), cfg.LLM.GeminiKey, cfg.LLM.GeminiModel); err != nil {
		log.Printf("gemini disabled: %v", err)
	} else {
		providers = append(providers, extract.Provider{Client: gm, Flavor: "gemini"})
	}

	if len(providers) == 0 {
		log.Printf("warning: no LLM providers configured, every extraction will be empty")
	}
	return providers
}
