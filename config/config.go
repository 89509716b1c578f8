package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// SQLite database path for the booking store.
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	// Redis configuration (optional; token cache and retention worker
	// stay disabled when REDIS_ADDR is empty).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Messaging configuration. MESSAGE_BUS_MODE is "disabled" or "kafka".
	MessageBusMode string `mapstructure:"MESSAGE_BUS_MODE"`
	KafkaBrokers   string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic     string `mapstructure:"KAFKA_TOPIC"`

	// Audit retention, in days, applied by the background worker.
	AuditRetentionDays int `mapstructure:"AUDIT_RETENTION_DAYS"`

	// Token lifetime issued by /auth/login, in seconds.
	TokenTTLSeconds int `mapstructure:"TOKEN_TTL_SECONDS"`

	// Monthly item prices and the one-time handling fee.
	PriceBed      float64 `mapstructure:"PRICE_BED"`
	PriceFridge   float64 `mapstructure:"PRICE_FRIDGE"`
	PriceBox      float64 `mapstructure:"PRICE_BOX"`
	PriceSuitcase float64 `mapstructure:"PRICE_SUITCASE"`
	PriceOther    float64 `mapstructure:"PRICE_OTHER"`
	HandlingFee   float64 `mapstructure:"HANDLING_FEE"`
}

var AppConfig Config

// LoadConfig initializes Viper to load config values from env, file, or defaults.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8081")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_PATH", "hss.db")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("MESSAGE_BUS_MODE", "disabled")
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "hss.booking-events")
	viper.SetDefault("AUDIT_RETENTION_DAYS", 30)
	viper.SetDefault("TOKEN_TTL_SECONDS", 3600)
	viper.SetDefault("PRICE_BED", 250.0)
	viper.SetDefault("PRICE_FRIDGE", 300.0)
	viper.SetDefault("PRICE_BOX", 60.0)
	viper.SetDefault("PRICE_SUITCASE", 80.0)
	viper.SetDefault("PRICE_OTHER", 120.0)
	viper.SetDefault("HANDLING_FEE", 350.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
