package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/trustmesh/newsverify/src/api/config"
	"github.com/trustmesh/newsverify/src/api/webserver"
	"github.com/trustmesh/newsverify/src/shared/ai"
	"github.com/trustmesh/newsverify/src/shared/data"
	"github.com/trustmesh/newsverify/src/shared/httpx"
	"github.com/trustmesh/newsverify/src/shared/search"
	"github.com/trustmesh/newsverify/src/verifier"
	"github.com/trustmesh/newsverify/src/verifier/registry"
)

func main() {
	var db *gorm.DB
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		db = data.MustMySQL(dsn)
	}

	cfg := config.Load(db)
	if cfg.TavilyKey == "" {
		log.Fatalf("TAVILY_API_KEY is not configured")
	}

	reg := registry.Builtin()
	if db != nil {
		if loaded, err := registry.Load(db); err == nil {
			reg = loaded
		} else {
			log.Printf("Using builtin trusted-source registry: %v", err)
		}
	}
	log.Printf("Trusted-source registry: %d outlets", reg.Len())

	ctx := context.Background()
	oracle, err := ai.NewClient(ctx, ai.FactoryConfig{
		Provider:  cfg.AIProvider,
		GeminiKey: cfg.GeminiKey,
		OpenAIKey: cfg.OpenAIKey,
		Model:     cfg.AIModel,
	})
	if err != nil {
		log.Fatalf("ai client: %v", err)
	}
	if closer, ok := oracle.(io.Closer); ok {
		defer closer.Close()
	}

	searchClient := search.NewTavilyClient(cfg.TavilyKey, 60*time.Second, httpx.DefaultRetry)
	pipe := verifier.New(oracle, searchClient, reg, verifier.Config{})

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = data.MustRedis(cfg.RedisURL)
	}

	router := webserver.New(cfg, pipe, rdb)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
