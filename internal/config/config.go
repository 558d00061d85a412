package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Email    EmailConfig    `mapstructure:"email"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Worker   WorkerConfig   `mapstructure:"worker"`

	RateLimit struct {
		Enabled           bool    `mapstructure:"enabled"`
		RequestsPerSecond float64 `mapstructure:"requests_per_second"`
		Burst             int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`

	Security struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
		AllowedMethods []string `mapstructure:"allowed_methods"`
		AllowedHeaders []string `mapstructure:"allowed_headers"`
	} `mapstructure:"security"`

	Monitoring struct {
		PrometheusEnabled bool   `mapstructure:"prometheus_enabled"`
		MetricsPath       string `mapstructure:"metrics_path"`
	} `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	RefreshSecret      string `mapstructure:"refresh_secret"`
	ExpiryMinutes      int    `mapstructure:"expiry_minutes"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours"`
}

type RedisConfig struct {
	URL          string `mapstructure:"url"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type EmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type PaymentConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	SecretKey string `mapstructure:"secret_key"`
	Currency  string `mapstructure:"currency"`
}

type StorageConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Bucket  string `mapstructure:"bucket"`
	APIKey  string `mapstructure:"api_key"`
}

type CalendarConfig struct {
	MeetingBaseURL string `mapstructure:"meeting_base_url"`
}

type WorkerConfig struct {
	AppointmentSweepInterval  time.Duration `mapstructure:"appointment_sweep_interval"`
	ConsultationSweepInterval time.Duration `mapstructure:"consultation_sweep_interval"`
	ReminderInterval          time.Duration `mapstructure:"reminder_interval"`
	ConsultationMaxAge        time.Duration `mapstructure:"consultation_max_age"`
}

// envOverrides are secrets injected through the environment. They take
// precedence over anything in the config file.
type envOverrides struct {
	DBHost           string `envconfig:"DB_HOST"`
	DBPassword       string `envconfig:"DB_PASSWORD"`
	JWTSecret        string `envconfig:"JWT_SECRET"`
	JWTRefreshSecret string `envconfig:"JWT_REFRESH_SECRET"`
	RedisURL         string `envconfig:"REDIS_URL"`
	EmailPassword    string `envconfig:"EMAIL_PASSWORD"`
	PaymentSecretKey string `envconfig:"PAYMENT_SECRET_KEY"`
	StorageAPIKey    string `envconfig:"STORAGE_API_KEY"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}
	applyOverrides(&config, env)

	if config.Worker.ConsultationMaxAge == 0 {
		config.Worker.ConsultationMaxAge = 150 * time.Minute
	}
	if config.Worker.AppointmentSweepInterval == 0 {
		config.Worker.AppointmentSweepInterval = time.Minute
	}
	if config.Worker.ConsultationSweepInterval == 0 {
		config.Worker.ConsultationSweepInterval = time.Minute
	}
	if config.Worker.ReminderInterval == 0 {
		config.Worker.ReminderInterval = time.Hour
	}

	return &config, nil
}

func applyOverrides(config *Config, env envOverrides) {
	if env.DBHost != "" {
		config.Database.Host = env.DBHost
	}
	if env.DBPassword != "" {
		config.Database.Password = env.DBPassword
	}
	if env.JWTSecret != "" {
		config.JWT.Secret = env.JWTSecret
	}
	if env.JWTRefreshSecret != "" {
		config.JWT.RefreshSecret = env.JWTRefreshSecret
	}
	if env.RedisURL != "" {
		config.Redis.URL = env.RedisURL
	}
	if env.EmailPassword != "" {
		config.Email.Password = env.EmailPassword
	}
	if env.PaymentSecretKey != "" {
		config.Payment.SecretKey = env.PaymentSecretKey
	}
	if env.StorageAPIKey != "" {
		config.Storage.APIKey = env.StorageAPIKey
	}
}
