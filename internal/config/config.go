package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/teambitewolf/news-hole/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App          AppSettings       `yaml:"app"`
	Database     DatabaseSettings  `yaml:"database"`
	Server       ServerSettings    `yaml:"server"`
	JWT          JWTSettings       `yaml:"jwt"`
	Logging      LoggingSettings   `yaml:"logging"`
	CORS         CORSSettings      `yaml:"cors"`
	PasswordHash HashSettings      `yaml:"password_hash"`
	Reset        ResetSettings     `yaml:"reset"`
	Email        EmailSettings     `yaml:"email"`
	RateLimit    RateLimitSettings `yaml:"rate_limit"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// DatabaseSettings contains database connection settings.
// Path is only used by the sqlite driver.
type DatabaseSettings struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE"`
	Path     string `yaml:"path" env:"DB_PATH"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// JWTSettings contains access token settings
type JWTSettings struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	Expiry time.Duration `yaml:"expiry" env:"JWT_EXPIRY"`
	Issuer string        `yaml:"issuer" env:"JWT_ISSUER"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// HashSettings contains password hashing settings.
// Rounds is the bcrypt log2 work factor used when generating salts.
type HashSettings struct {
	Rounds int `yaml:"rounds" env:"HASH_ROUNDS"`
}

// ResetSettings configures the password reset flow
type ResetSettings struct {
	BaseURL string `yaml:"base_url" env:"RESET_BASE_URL"`
}

// EmailSettings configures outgoing email
type EmailSettings struct {
	Provider       string       `yaml:"provider" env:"EMAIL_PROVIDER"`
	SMTPHost       string       `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort       int          `yaml:"smtp_port" env:"SMTP_PORT"`
	SMTPUsername   string       `yaml:"smtp_username" env:"SMTP_USERNAME"`
	SMTPPassword   string       `yaml:"smtp_password" env:"SMTP_PASSWORD"`
	SendGridAPIKey string       `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
	Senders        SenderConfig `yaml:"senders"`
}

// SenderConfig maps sender categories to from-addresses
type SenderConfig struct {
	PasswordReset string `yaml:"password_reset" env:"EMAIL_SENDER_PASSWORD_RESET"`
	Support       string `yaml:"support" env:"EMAIL_SENDER_SUPPORT"`
}

// RateLimitSettings configures per-client request limiting on account endpoints.
// TrustedProxies lists the CIDR ranges or addresses whose forwarding headers
// identify the client; requests from any other peer are keyed by the peer.
type RateLimitSettings struct {
	RequestsPerSecond float64  `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int      `yaml:"burst" env:"RATE_LIMIT_BURST"`
	TrustedProxies    []string `yaml:"trusted_proxies" env:"RATE_LIMIT_TRUSTED_PROXIES"`
}

// ConnectionString returns the data source name for the configured driver
func (dbs *DatabaseSettings) ConnectionString() string {
	switch strings.ToLower(dbs.Driver) {
	case constants.DriverMySQL:
		// username:password@tcp(host:port)/dbname
		password := dbs.Password
		if password != "" {
			password = ":" + password
		}
		return fmt.Sprintf(
			"%s%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
			dbs.User, password, dbs.Host, dbs.Port, dbs.Name,
		)

	case constants.DriverSQLite:
		return dbs.Path

	default:
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
			dbs.Host, dbs.Port, dbs.User, dbs.Password, dbs.Name, dbs.SSLMode, constants.PostgresConnectTimeout,
		)
	}
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = config

	logConfig(config)

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}

	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// Database defaults depend on the driver
	if config.Database.Driver == "" {
		config.Database.Driver = constants.DefaultDBDriver
	}
	config.Database.Driver = strings.ToLower(config.Database.Driver)
	if config.Database.Port == 0 {
		switch config.Database.Driver {
		case constants.DriverMySQL:
			config.Database.Port = 3306
		case constants.DriverPostgres, constants.DriverPgx:
			config.Database.Port = 5432
		}
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = constants.PostgresSSLDisable
	}
	if config.Database.Path == "" && config.Database.Driver == constants.DriverSQLite {
		config.Database.Path = constants.DefaultSQLitePath
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	if config.JWT.Expiry == 0 {
		config.JWT.Expiry = constants.DefaultJWTExpiry
	}
	if config.JWT.Issuer == "" {
		config.JWT.Issuer = constants.DefaultJWTIssuer
	}

	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	// Lower work factor outside production keeps local runs fast
	if config.PasswordHash.Rounds == 0 {
		if config.App.IsProduction() {
			config.PasswordHash.Rounds = constants.DefaultPasswordHashRounds
		} else {
			config.PasswordHash.Rounds = constants.MinPasswordHashRounds
		}
	}

	if config.Reset.BaseURL == "" {
		config.Reset.BaseURL = constants.DefaultResetBaseURL
	}

	if config.Email.Provider == "" {
		config.Email.Provider = constants.EmailProviderLog
	}
	config.Email.Provider = strings.ToLower(config.Email.Provider)
	if config.Email.SMTPPort == 0 {
		config.Email.SMTPPort = constants.DefaultSMTPPort
	}
	if config.Email.Senders.PasswordReset == "" {
		config.Email.Senders.PasswordReset = constants.DefaultPasswordResetSender
	}
	if config.Email.Senders.Support == "" {
		config.Email.Senders.Support = constants.DefaultSupportSender
	}

	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = constants.DefaultRateLimitPerSecond
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = constants.DefaultRateLimitBurst
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	// In production, ensure we have a proper JWT secret
	if config.App.IsProduction() && (config.JWT.Secret == "" || config.JWT.Secret == "changeme") {
		return fmt.Errorf("JWT secret must be set in production")
	}

	switch config.Database.Driver {
	case constants.DriverPostgres, constants.DriverPgx, constants.DriverMySQL:
		if config.Database.User == "" {
			return fmt.Errorf("database user must be set")
		}
	case constants.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
	}

	if config.PasswordHash.Rounds < constants.MinPasswordHashRounds || config.PasswordHash.Rounds > constants.MaxPasswordHashRounds {
		return fmt.Errorf("password hash rounds must be between %d and %d",
			constants.MinPasswordHashRounds, constants.MaxPasswordHashRounds)
	}

	switch config.Email.Provider {
	case constants.EmailProviderLog:
	case constants.EmailProviderSMTP:
		if config.Email.SMTPHost == "" {
			return fmt.Errorf("smtp host must be set when email provider is smtp")
		}
	case constants.EmailProviderSendGrid:
		if config.Email.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid api key must be set when email provider is sendgrid")
		}
	default:
		return fmt.Errorf("unsupported email provider: %s", config.Email.Provider)
	}

	if config.RateLimit.RequestsPerSecond < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}

	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the current configuration. Secrets are never included.
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("db_driver", config.Database.Driver).
		Str("db_host", config.Database.Host).
		Int("db_port", config.Database.Port).
		Str("db_name", config.Database.Name).
		Str("email_provider", config.Email.Provider).
		Int("hash_rounds", config.PasswordHash.Rounds).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")
}
