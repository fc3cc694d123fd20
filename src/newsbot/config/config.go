package config

import (
	"log"
	"os"
	"strconv"

	"github.com/trustmesh/newsverify/src/shared/data"
	"gorm.io/gorm"
)

type Config struct {
	Token        string
	GuildID      string
	VerifyRoleID string

	AIProvider string
	AIModel    string
	GeminiKey  string
	OpenAIKey  string
	TavilyKey  string

	CooldownSecs int
}

func Load(db *gorm.DB) Config {
	if db != nil {
		if err := data.LoadSettings(db); err != nil {
			log.Printf("Failed to load settings: %v", err)
		}
	}

	cooldown, _ := strconv.Atoi(getenv("VERIFY_COOLDOWN_SECONDS", "60"))

	return Config{
		Token:        setting(db, "discord_token", "DISCORD_TOKEN"),
		GuildID:      setting(db, "guild_id", "GUILD_ID"),
		VerifyRoleID: setting(db, "verify_role_id", "VERIFY_ROLE_ID"),
		AIProvider:   settingOrDefault(db, "ai_provider", "AI_PROVIDER", "gemini"),
		AIModel:      setting(db, "ai_model", "AI_MODEL"),
		GeminiKey:    setting(db, "gemini_api_key", "GEMINI_API_KEY"),
		OpenAIKey:    setting(db, "openai_api_key", "OPENAI_API_KEY"),
		TavilyKey:    setting(db, "tavily_api_key", "TAVILY_API_KEY"),
		CooldownSecs: cooldown,
	}
}

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
