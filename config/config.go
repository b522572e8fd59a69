package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "ROOFSERVE"

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for roofserve.
type Config struct {
	Env     string        `mapstructure:"env" yaml:"env"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Routes  RoutesConfig  `mapstructure:"routes" yaml:"routes"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP server configuration. Timeouts are in seconds.
type ServerConfig struct {
	Port            int `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	ReadTimeout     int `mapstructure:"read_timeout" yaml:"read_timeout" validate:"min=1"`
	WriteTimeout    int `mapstructure:"write_timeout" yaml:"write_timeout" validate:"min=1"`
	IdleTimeout     int `mapstructure:"idle_timeout" yaml:"idle_timeout" validate:"min=1"`
	RequestTimeout  int `mapstructure:"request_timeout" yaml:"request_timeout" validate:"min=0"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=1"`
}

// StorageConfig holds the locations of the served files. Relative paths
// are resolved against the process working directory.
type StorageConfig struct {
	ImagesRoot    string `mapstructure:"images_root" yaml:"images_root" validate:"required"`
	CompaniesFile string `mapstructure:"companies_file" yaml:"companies_file" validate:"required"`
}

// RoutesConfig holds URL layout configuration.
type RoutesConfig struct {
	Prefix string `mapstructure:"prefix" yaml:"prefix" validate:"required,startswith=/,endsnotwith=/,excludesall=?#"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// ReadTimeoutDuration returns ReadTimeout as a time.Duration.
func (s ServerConfig) ReadTimeoutDuration() time.Duration { return seconds(s.ReadTimeout) }

// WriteTimeoutDuration returns WriteTimeout as a time.Duration.
func (s ServerConfig) WriteTimeoutDuration() time.Duration { return seconds(s.WriteTimeout) }

// IdleTimeoutDuration returns IdleTimeout as a time.Duration.
func (s ServerConfig) IdleTimeoutDuration() time.Duration { return seconds(s.IdleTimeout) }

// RequestTimeoutDuration returns RequestTimeout as a time.Duration. Zero disables it.
func (s ServerConfig) RequestTimeoutDuration() time.Duration { return seconds(s.RequestTimeout) }

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration { return seconds(s.ShutdownTimeout) }

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":           "server.port",
	"images-root":    "storage.images_root",
	"companies-file": "storage.companies_file",
	"prefix":         "routes.prefix",
	"log-level":      "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey, ok := flagToViperKey[f.Name]
		if !ok {
			return
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.request_timeout", 60)
	v.SetDefault("server.shutdown_timeout", 30)

	v.SetDefault("storage.images_root", "output/images")
	v.SetDefault("storage.companies_file", "output/all-companies.json")

	v.SetDefault("routes.prefix", "/RoofingMaterials")

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFiles[0], err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merge config file %s: %w", cf, err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}
