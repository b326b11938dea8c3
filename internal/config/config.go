package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Redis     RedisConfig
	MQTT      MQTTConfig
	Paystack  PaystackConfig
	Assistant AssistantConfig
	Mailgun   MailgunConfig
	Pricing   PricingConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	URL         string // Supabase connection string, preferred when set
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         int
	Workers     int
	BufferSize  int
}

type PaystackConfig struct {
	SecretKey      string
	BaseURL        string
	CallbackURL    string
	Timeout        time.Duration
	PendingTTL     time.Duration // pending donations older than this are failed
	ExpiryInterval time.Duration
}

type AssistantConfig struct {
	OllamaURL     string
	OllamaModel   string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	Timeout       time.Duration
}

type MailgunConfig struct {
	Domain string
	APIKey string
	Sender string
}

// PricingConfig holds the per-kilogram rates applied to new collections.
type PricingConfig struct {
	CashRates      map[string]float64 // GHS per kg by plastic type
	TokenRatePerKg float64
}

type AnalyticsConfig struct {
	CacheTTL        time.Duration
	CO2FactorPerKg  float64
	CapacityWarnPct float64
}

var defaultCashRates = map[string]float64{
	"PET":   2.00,
	"HDPE":  1.80,
	"LDPE":  1.20,
	"PP":    1.50,
	"PS":    1.00,
	"OTHER": 0.80,
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "require")
	viper.SetDefault("DB_AUTO_MIGRATE", false)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")
	viper.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Authorization,X-Request-ID")
	viper.SetDefault("CORS_EXPOSED_HEADERS", "X-Request-ID")
	viper.SetDefault("CORS_MAX_AGE", 43200)
	viper.SetDefault("MQTT_CLIENT_ID", "sankofa-api")
	viper.SetDefault("MQTT_TOPIC_PREFIX", "sankofa")
	viper.SetDefault("MQTT_QOS", 1)
	viper.SetDefault("MQTT_WORKERS", 4)
	viper.SetDefault("MQTT_BUFFER_SIZE", 256)
	viper.SetDefault("PAYSTACK_BASE_URL", "https://api.paystack.co")
	viper.SetDefault("PAYSTACK_TIMEOUT", "15s")
	viper.SetDefault("DONATION_PENDING_TTL", "24h")
	viper.SetDefault("DONATION_EXPIRY_INTERVAL", "1h")
	viper.SetDefault("OLLAMA_MODEL", "llama3")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("ASSISTANT_TIMEOUT", "20s")
	viper.SetDefault("TOKEN_RATE_PER_KG", 5)
	viper.SetDefault("ANALYTICS_CACHE_TTL", "5m")
	viper.SetDefault("CO2_FACTOR_PER_KG", 1.5)
	viper.SetDefault("CAPACITY_WARN_PCT", 90)
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			URL:         viper.GetString("DATABASE_URL"),
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			DBName:      viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods:   splitList(viper.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders:   splitList(viper.GetString("CORS_ALLOWED_HEADERS")),
			ExposedHeaders:   splitList(viper.GetString("CORS_EXPOSED_HEADERS")),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Username: viper.GetString("REDIS_USERNAME"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		MQTT: MQTTConfig{
			Broker:      viper.GetString("MQTT_BROKER"),
			ClientID:    viper.GetString("MQTT_CLIENT_ID"),
			Username:    viper.GetString("MQTT_USERNAME"),
			Password:    viper.GetString("MQTT_PASSWORD"),
			TopicPrefix: viper.GetString("MQTT_TOPIC_PREFIX"),
			QoS:         viper.GetInt("MQTT_QOS"),
			Workers:     viper.GetInt("MQTT_WORKERS"),
			BufferSize:  viper.GetInt("MQTT_BUFFER_SIZE"),
		},
		Paystack: PaystackConfig{
			SecretKey:      viper.GetString("PAYSTACK_SECRET_KEY"),
			BaseURL:        viper.GetString("PAYSTACK_BASE_URL"),
			CallbackURL:    viper.GetString("PAYSTACK_CALLBACK_URL"),
			Timeout:        viper.GetDuration("PAYSTACK_TIMEOUT"),
			PendingTTL:     viper.GetDuration("DONATION_PENDING_TTL"),
			ExpiryInterval: viper.GetDuration("DONATION_EXPIRY_INTERVAL"),
		},
		Assistant: AssistantConfig{
			OllamaURL:     viper.GetString("OLLAMA_URL"),
			OllamaModel:   viper.GetString("OLLAMA_MODEL"),
			OpenAIKey:     viper.GetString("OPENAI_API_KEY"),
			OpenAIModel:   viper.GetString("OPENAI_MODEL"),
			OpenAIBaseURL: viper.GetString("OPENAI_BASE_URL"),
			Timeout:       viper.GetDuration("ASSISTANT_TIMEOUT"),
		},
		Mailgun: MailgunConfig{
			Domain: viper.GetString("MAILGUN_DOMAIN"),
			APIKey: viper.GetString("MAILGUN_API_KEY"),
			Sender: viper.GetString("MAILGUN_SENDER"),
		},
		Pricing: PricingConfig{
			CashRates:      loadCashRates(),
			TokenRatePerKg: viper.GetFloat64("TOKEN_RATE_PER_KG"),
		},
		Analytics: AnalyticsConfig{
			CacheTTL:        viper.GetDuration("ANALYTICS_CACHE_TTL"),
			CO2FactorPerKg:  viper.GetFloat64("CO2_FACTOR_PER_KG"),
			CapacityWarnPct: viper.GetFloat64("CAPACITY_WARN_PCT"),
		},
	}

	return config, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.DBName == "") {
		return errors.New("database configuration is missing: set DATABASE_URL or DB_HOST and DB_NAME")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT secret is missing: set JWT_SECRET")
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// CashRate returns the GHS-per-kg rate for a plastic type.
func (p PricingConfig) CashRate(plasticType string) float64 {
	if rate, ok := p.CashRates[plasticType]; ok {
		return rate
	}
	return p.CashRates["OTHER"]
}

// DefaultPricing is the rate card used when nothing is configured.
func DefaultPricing() PricingConfig {
	rates := make(map[string]float64, len(defaultCashRates))
	for k, v := range defaultCashRates {
		rates[k] = v
	}
	return PricingConfig{CashRates: rates, TokenRatePerKg: 5}
}

// loadCashRates overlays RATE_<TYPE> variables (e.g. RATE_PET=2.5) on the defaults.
func loadCashRates() map[string]float64 {
	rates := DefaultPricing().CashRates
	for plasticType := range rates {
		key := "RATE_" + plasticType
		if viper.IsSet(key) {
			rates[plasticType] = viper.GetFloat64(key)
		}
	}
	return rates
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
