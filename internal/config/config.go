package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Game     GameConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type TelegramConfig struct {
	BotToken    string
	BotUsername string
	WebAppURL   string
	AdminIDs    []int64
}

type GameConfig struct {
	// VerificationPenalty debits the verification bonus back when a
	// previously verified profile stops matching the predicate.
	VerificationPenalty bool
	RecheckInterval     time.Duration
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	penalty, _ := strconv.ParseBool(getEnv("VERIFICATION_PENALTY", "false"))
	recheck, err := time.ParseDuration(getEnv("RECHECK_INTERVAL", "24h"))
	if err != nil {
		recheck = 24 * time.Hour
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "rancase"),
			Password: getEnv("DB_PASSWORD", "rancase"),
			Name:     getEnv("DB_NAME", "rancase"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			BotUsername: getEnv("TELEGRAM_BOT_USERNAME", "rancasebot"),
			WebAppURL:   getEnv("TELEGRAM_WEBAPP_URL", ""),
			AdminIDs:    parseAdminIDs(getEnv("TELEGRAM_ADMIN_IDS", "")),
		},
		Game: GameConfig{
			VerificationPenalty: penalty,
			RecheckInterval:     recheck,
		},
	}

	return cfg, nil
}

func parseAdminIDs(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Game tuning. The referral bonus can be overridden at runtime through the
// settings table; the constant is the fallback.
const (
	StartingPoints      int64 = 100
	ReferralBonus       int64 = 500
	ReferralWindow            = 5 * time.Minute
	InitDataMaxAge            = 24 * time.Hour
	DailyBonusMin       int64 = 50
	DailyBonusMax       int64 = 150
	DailyStreakStep     int64 = 10
	DailyStreakCap      int64 = 100
	TelegramVerifyBonus int64 = 500
	SteamVerifyBonus    int64 = 1000
)
