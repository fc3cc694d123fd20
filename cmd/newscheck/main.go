package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/trustmesh/newsverify/src/shared/ai"
	"github.com/trustmesh/newsverify/src/shared/httpx"
	"github.com/trustmesh/newsverify/src/shared/search"
	"github.com/trustmesh/newsverify/src/verifier"
	"github.com/trustmesh/newsverify/src/verifier/registry"
	"github.com/trustmesh/newsverify/src/verifier/types"
)

var (
	inputFlag    = flag.String("input", "input.json", "Path to the news input JSON file")
	providerFlag = flag.String("provider", "", "Override AI provider (gemini|openai)")
	modelFlag    = flag.String("model", "", "Override AI model name")
	timeoutFlag  = flag.Duration("timeout", 5*time.Minute, "Overall verification deadline")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	_ = godotenv.Load()

	inputPath := *inputFlag
	if flag.NArg() > 0 {
		inputPath = flag.Arg(0)
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("failed to read %s: %v", inputPath, err)
	}
	var input types.NewsInput
	if err := json.Unmarshal(raw, &input); err != nil {
		log.Fatalf("invalid JSON in %s: %v", inputPath, err)
	}
	if strings.TrimSpace(input.Text) == "" {
		log.Fatalf("the Text field is required in %s", inputPath)
	}

	tavilyKey := os.Getenv("TAVILY_API_KEY")
	if tavilyKey == "" {
		log.Fatalf("TAVILY_API_KEY is not set")
	}

	provider := *providerFlag
	if provider == "" {
		provider = os.Getenv("AI_PROVIDER")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	oracle, err := ai.NewClient(ctx, ai.FactoryConfig{
		Provider:  provider,
		GeminiKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		Model:     *modelFlag,
	})
	if err != nil {
		log.Fatalf("ai client: %v", err)
	}
	if closer, ok := oracle.(io.Closer); ok {
		defer closer.Close()
	}

	searchClient := search.NewTavilyClient(tavilyKey, 60*time.Second, httpx.DefaultRetry)
	pipe := verifier.New(oracle, searchClient, registry.Builtin(), verifier.Config{})

	result, err := pipe.Run(ctx, input)
	if err != nil {
		log.Printf("warning: verification degraded to safe default: %v", err)
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
	fmt.Println(string(pretty))

	outPath := strings.TrimSuffix(inputPath, ".json") + "_result.json"
	if err := os.WriteFile(outPath, pretty, 0o644); err != nil {
		log.Printf("failed to save result to %s: %v", outPath, err)
	} else {
		log.Printf("result saved to %s", outPath)
	}
}
