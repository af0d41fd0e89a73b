package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл (CLEANING_DATABASE_HOST и т.д.)
// Имена выводятся из имен полей (split_words); явные envconfig теги не используются,
// иначе envconfig подхватывает одноименные системные переменные (USER, PATH)
const EnvPrefix = "CLEANING"

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server" split_words:"true"`
	Database        DatabaseConfig        `toml:"database" split_words:"true"`
	Logs            LogsConfig            `toml:"logs" split_words:"true"`
	Metrics         MetricsConfig         `toml:"metrics" split_words:"true"`
	Redis           RedisConfig           `toml:"redis" split_words:"true"`
	Kafka           KafkaConfig           `toml:"kafka" split_words:"true"`
	PaymentProvider PaymentProviderConfig `toml:"payment_provider" split_words:"true"`
	Booking         BookingConfig         `toml:"booking" split_words:"true"`
	Availability    AvailabilityConfig    `toml:"availability" split_words:"true"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// RedisConfig блокировки слотов; пустой Addr отключает Redis
type RedisConfig struct {
	Addr               string `toml:"addr" split_words:"true"`
	Password           string `toml:"password" split_words:"true"`
	DB                 int    `toml:"db" split_words:"true"`
	SlotLockTTLSeconds int    `toml:"slot_lock_ttl_seconds" split_words:"true"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

func (r RedisConfig) SlotLockTTL() time.Duration {
	return time.Duration(r.SlotLockTTLSeconds) * time.Second
}

// KafkaConfig уведомления о подтвержденных бронированиях; пустой Brokers отключает Kafka
type KafkaConfig struct {
	Brokers        []string `toml:"brokers" split_words:"true"`
	ConfirmedTopic string   `toml:"confirmed_topic" split_words:"true"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// PaymentProviderConfig клиент платежного провайдера
type PaymentProviderConfig struct {
	URL     string `toml:"url" split_words:"true"`
	APIKey  string `toml:"api_key" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"`
}

// BookingConfig параметры бронирований
type BookingConfig struct {
	Currency string `toml:"currency" split_words:"true"`
}

// AvailabilityConfig окно перебора слотов дня
type AvailabilityConfig struct {
	ScanStart       string `toml:"scan_start" split_words:"true"`
	ScanEnd         string `toml:"scan_end" split_words:"true"`
	ScanStepMinutes int    `toml:"scan_step_minutes" split_words:"true"`
}

func (a AvailabilityConfig) ScanStep() time.Duration {
	return time.Duration(a.ScanStepMinutes) * time.Minute
}

// Default конфигурация по умолчанию; файл и окружение переопределяют её
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "cleaning_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "cleaning_booking_service",
		},
		Redis: RedisConfig{
			SlotLockTTLSeconds: int(domain.DefaultSlotLockTTL / time.Second),
		},
		Kafka: KafkaConfig{
			ConfirmedTopic: "booking.confirmed",
		},
		PaymentProvider: PaymentProviderConfig{
			Timeout: 10,
		},
		Booking: BookingConfig{
			Currency: domain.DefaultCurrency,
		},
		Availability: AvailabilityConfig{
			ScanStart:       domain.DefaultScanStart,
			ScanEnd:         domain.DefaultScanEnd,
			ScanStepMinutes: int(domain.DefaultScanStep / time.Minute),
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию, затем применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if _, err := domain.NewMoneyFromMinor(0, c.Booking.Currency); err != nil {
		return fmt.Errorf("%w: booking.currency: %v", ErrInvalidConfig, err)
	}
	if c.Availability.ScanStepMinutes <= 0 {
		return fmt.Errorf("%w: availability.scan_step_minutes must be positive", ErrInvalidConfig)
	}
	if c.Redis.Enabled() && c.Redis.SlotLockTTLSeconds <= 0 {
		return fmt.Errorf("%w: redis.slot_lock_ttl_seconds must be positive", ErrInvalidConfig)
	}
	if c.Kafka.Enabled() && c.Kafka.ConfirmedTopic == "" {
		return fmt.Errorf("%w: kafka.confirmed_topic is required", ErrInvalidConfig)
	}
	return nil
}
