package config

import (
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
)

// Environment variables read by LoadBotConfig.
const (
	EnvBotToken        = "BOT_TOKEN"
	EnvListenAddr      = "BOT_LISTEN_ADDR"
	EnvLogLevel        = "BOT_LOG_LEVEL"
	EnvLogJSON         = "BOT_LOG_JSON"
	EnvRedisAddr       = "BOT_REDIS_ADDR"
	EnvRedisPassword   = "BOT_REDIS_PASSWORD"
	EnvRedisDB         = "BOT_REDIS_DB"
	EnvDedupTTLSeconds = "BOT_DEDUP_TTL_SECONDS"
	EnvDatabasePath    = "BOT_DATABASE_PATH"
	EnvAdminIDs        = "BOT_ADMIN_IDS"
	EnvDefaultLanguage = "BOT_DEFAULT_LANGUAGE"
)

const (
	defaultListenAddr      = ":8080"
	defaultDedupTTLSeconds = 24 * 60 * 60
	defaultDatabasePath    = "bot.db"
	defaultLanguage        = "en"
)

// BotConfig is everything cmd/yatgbotd needs to start.
type BotConfig struct {
	Token           string
	ListenAddr      string
	LogLevel        yalogger.Level
	LogJSON         bool
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	DedupTTL        time.Duration
	DatabasePath    string
	AdminIDs        []int64
	DefaultLanguage string
}

// LoadBotConfig reads BotConfig from the environment.
//
// Exits the process through log.Fatalf if BOT_TOKEN is missing.
func LoadBotConfig(log yalogger.Logger) BotConfig {
	return BotConfig{
		Token:           GetEnv(EnvBotToken, "", true, log),
		ListenAddr:      GetEnv(EnvListenAddr, defaultListenAddr, false, log),
		LogLevel:        GetEnv(EnvLogLevel, yalogger.InfoLevel, false, log),
		LogJSON:         GetEnv(EnvLogJSON, false, false, log),
		RedisAddr:       GetEnv(EnvRedisAddr, "", false, log),
		RedisPassword:   GetEnv(EnvRedisPassword, "", false, log),
		RedisDB:         GetEnv(EnvRedisDB, 0, false, log),
		DedupTTL:        time.Duration(GetEnv(EnvDedupTTLSeconds, defaultDedupTTLSeconds, false, log)) * time.Second,
		DatabasePath:    GetEnv(EnvDatabasePath, defaultDatabasePath, false, log),
		AdminIDs:        GetEnvArray[int64](EnvAdminIDs, nil, nil, false, log),
		DefaultLanguage: GetEnv(EnvDefaultLanguage, defaultLanguage, false, log),
	}
}
