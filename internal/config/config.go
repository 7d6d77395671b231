package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config содержит конфигурацию fate-server
type Config struct {
	// Настройки сервера
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding     string        `envconfig:"LOG_ENCODING" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	SecretsDir      string        `envconfig:"SECRETS_DIR" default:"/run/secrets"`

	// Хранилище сессий: memory, postgres или redis
	SessionStore   string        `envconfig:"SESSION_STORE" default:"memory"`
	SessionIdleTTL time.Duration `envconfig:"SESSION_IDLE_TTL" default:"720h"`
	PurgeSchedule  string        `envconfig:"PURGE_SCHEDULE" default:"@every 1h"`

	// Настройки PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"fate"`
	DBName        string        `envconfig:"DB_NAME" default:"fate"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_IDLE_TIMEOUT" default:"5m"`
	// Секретное поле БЕЗ envconfig тега
	DBPassword string `ignored:"true"`

	// Настройки Redis
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
	// Необязательный секрет
	RedisPassword string `ignored:"true"`

	ConnectMaxRetries int           `envconfig:"CONNECT_MAX_RETRIES" default:"10"`
	ConnectRetryDelay time.Duration `envconfig:"CONNECT_RETRY_DELAY" default:"3s"`

	// Настройки RabbitMQ. Пустой URL отключает публикацию событий.
	RabbitMQURL     string `envconfig:"RABBITMQ_URL"`
	GameEventsQueue string `envconfig:"GAME_EVENTS_QUEUE" default:"fate_game_events"`

	// Генератор сценариев
	AIBackend string        `envconfig:"AI_BACKEND" default:"openai"`
	AIModel   string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AIBaseURL string        `envconfig:"AI_BASE_URL"`
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"15s"`
	// Ключ по умолчанию, необязательный секрет
	AIAPIKey string `ignored:"true"`

	// Файл каталога сценариев. Пустой путь - встроенный каталог.
	CatalogPath string `envconfig:"CATALOG_PATH"`

	// Ограничение частоты запросов с одного IP. 0 отключает.
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`

	// Токены сессий
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"720h"`
	JWTSecret string        `ignored:"true"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, url.QueryEscape(c.DBPassword), c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из переменных окружения и секретов
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	switch cfg.SessionStore {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	var err error
	cfg.JWTSecret, err = ReadSecret(cfg.SecretsDir, "jwt_secret")
	if err != nil {
		return nil, err
	}
	if cfg.SessionStore == StorePostgres {
		cfg.DBPassword, err = ReadSecret(cfg.SecretsDir, "db_password")
		if err != nil {
			return nil, err
		}
	}
	if cfg.RedisPassword, err = ReadOptionalSecret(cfg.SecretsDir, "redis_password"); err != nil {
		return nil, err
	}
	if cfg.AIAPIKey, err = ReadOptionalSecret(cfg.SecretsDir, "ai_api_key"); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LogSummary выводит загруженную конфигурацию, скрывая секреты.
func (c *Config) LogSummary(logger *zap.Logger) {
	logger.Info("Configuration loaded",
		zap.String("port", c.Port),
		zap.String("environment", c.Environment),
		zap.String("logLevel", c.LogLevel),
		zap.String("sessionStore", c.SessionStore),
		zap.Duration("sessionIdleTTL", c.SessionIdleTTL),
		zap.String("purgeSchedule", c.PurgeSchedule),
		zap.String("dbDSN", fmt.Sprintf("postgres://%s:***@%s:%s/%s?sslmode=%s", c.DBUser, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)),
		zap.String("redisAddr", c.RedisAddr),
		zap.String("rabbitMQURL", maskURL(c.RabbitMQURL)),
		zap.String("gameEventsQueue", c.GameEventsQueue),
		zap.String("aiBackend", c.AIBackend),
		zap.String("aiModel", c.AIModel),
		zap.Duration("aiTimeout", c.AITimeout),
		zap.Bool("aiDefaultKeyLoaded", c.AIAPIKey != ""),
		zap.String("catalogPath", c.CatalogPath),
		zap.Float64("rateLimitRPS", c.RateLimitRPS),
		zap.Int("rateLimitBurst", c.RateLimitBurst),
		zap.Duration("tokenTTL", c.TokenTTL),
		zap.String("jwtSecret", "[LOADED]"),
	)
}

// maskURL убирает пароль из URL подключения.
func maskURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	return u.Redacted()
}
