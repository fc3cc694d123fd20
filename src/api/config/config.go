package config

import (
	"log"
	"os"
	"strconv"

	"github.com/trustmesh/newsverify/src/shared/data"
	"gorm.io/gorm"
)

type Config struct {
	Port           string
	MySQLDSN       string
	RedisURL       string
	JWTSecret      string
	AllowedOrigins string

	AIProvider string
	AIModel    string
	GeminiKey  string
	OpenAIKey  string
	TavilyKey  string

	RateLimit      int64
	RateWindowSecs int
	RequestTimeout int
}

// Load reads configuration from the settings table when a database is
// available, falling back to the environment for each key.
func Load(db *gorm.DB) Config {
	if db != nil {
		if err := data.LoadSettings(db); err != nil {
			log.Printf("Failed to load settings: %v", err)
		}
	}

	rateLimit, _ := strconv.ParseInt(getenv("RATE_LIMIT", "10"), 10, 64)
	rateWindow, _ := strconv.Atoi(getenv("RATE_WINDOW_SECONDS", "60"))
	reqTimeout, _ := strconv.Atoi(getenv("REQUEST_TIMEOUT_SECONDS", "180"))

	return Config{
		Port:           getenv("PORT", "8080"),
		MySQLDSN:       os.Getenv("MYSQL_DSN"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      setting(db, "jwt_secret", "JWT_SECRET"),
		AllowedOrigins: getenv("ALLOWED_ORIGINS", "*"),
		AIProvider:     settingOrDefault(db, "ai_provider", "AI_PROVIDER", "gemini"),
		AIModel:        setting(db, "ai_model", "AI_MODEL"),
		GeminiKey:      setting(db, "gemini_api_key", "GEMINI_API_KEY"),
		OpenAIKey:      setting(db, "openai_api_key", "OPENAI_API_KEY"),
		TavilyKey:      setting(db, "tavily_api_key", "TAVILY_API_KEY"),
		RateLimit:      rateLimit,
		RateWindowSecs: rateWindow,
		RequestTimeout: reqTimeout,
	}
}

// setting prefers the database settings table, then the environment.
func setting(db *gorm.DB, name, envKey string) string {
	if db != nil {
		if v := data.GetSetting(name); v != "" {
			return v
		}
	}
	return os.Getenv(envKey)
}

func settingOrDefault(db *gorm.DB, name, envKey, def string) string {
	if v := setting(db, name, envKey); v != "" {
		return v
	}
	return def
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
