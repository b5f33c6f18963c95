package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"

	"github.com/angeloszaimis/consumer-router/internal/routing"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	Environment     string        `mapstructure:"environment"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DomainsConfig struct {
	ConsumerDomain      string `mapstructure:"consumer-domain"`
	ConsumerAdminDomain string `mapstructure:"consumer-admin-domain"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	AddSource bool   `mapstructure:"add_source"`
}

type MetricsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Domains DomainsConfig `mapstructure:"domains"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// Routing returns the immutable routing configuration.
func (c *Config) Routing() routing.Config {
	return routing.Config{
		ConsumerDomain:      c.Domains.ConsumerDomain,
		ConsumerAdminDomain: c.Domains.ConsumerAdminDomain,
	}
}

// Load reads config.yaml from ./config or the working directory, or the
// file at path when it is not empty. Environment variables override file
// values, with "." and "-" in keys replaced by "_"
// (DOMAINS_CONSUMER_DOMAIN, SERVER_ADDRESS, ...).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.environment", EnvDev)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("domains.consumer-domain", routing.DefaultConsumerDomain)
	v.SetDefault("domains.consumer-admin-domain", routing.DefaultConsumerAdminDomain)
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("logging.add_source", false)
	v.SetDefault("metrics.buffer_size", 1000)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, fmt.Errorf("read config: %w", err)
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
					validation.Field(&sc.ReadTimeout, validation.Min(time.Duration(0))),
					validation.Field(&sc.WriteTimeout, validation.Min(time.Duration(0))),
					validation.Field(&sc.IdleTimeout, validation.Min(time.Duration(0))),
					validation.Field(&sc.ShutdownTimeout, validation.Min(time.Duration(0))),
				)
			}),
		),
		validation.Field(&c.Domains,
			validation.Required,
			validation.By(func(value interface{}) error {
				dc, ok := value.(DomainsConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a DomainsConfig")
				}
				return validation.ValidateStruct(&dc,
					validation.Field(&dc.ConsumerDomain,
						validation.Required,
						is.Host,
					),
					validation.Field(&dc.ConsumerAdminDomain,
						validation.Required,
						is.Host,
						validation.By(distinctFrom(dc.ConsumerDomain)),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.Metrics,
			validation.By(func(value interface{}) error {
				mc, ok := value.(MetricsConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a MetricsConfig")
				}
				return validation.ValidateStruct(&mc,
					validation.Field(&mc.BufferSize, validation.Min(1)),
				)
			}),
		),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

// distinctFrom rejects a domain that equals other ignoring case; the
// admin rules could never be reached otherwise.
func distinctFrom(other string) validation.RuleFunc {
	return func(value interface{}) error {
		domain, ok := value.(string)
		if !ok {
			return validation.NewError("validation_invalid_type", "must be a string")
		}

		if strings.EqualFold(domain, other) {
			return validation.NewError("validation_duplicate_domain", "must differ from the consumer domain")
		}

		return nil
	}
}
