package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/trustmesh/newsverify/src/newsbot/bot"
	"github.com/trustmesh/newsverify/src/newsbot/config"
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
	if cfg.Token == "" {
		log.Fatalf("DISCORD_TOKEN is not configured")
	}
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

	oracle, err := ai.NewClient(context.Background(), ai.FactoryConfig{
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

	b, err := bot.New(&cfg, pipe)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}
	if err := b.Start(); err != nil {
		log.Fatalf("bot: %v", err)
	}
	log.Printf("News verification bot running")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	b.Stop()
}
