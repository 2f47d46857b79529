package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
// - options: pipe separated list of accepted values
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Database holds the database configuration.
	Database DatabaseConfig `mapstructure:",squash"`

	// Redis holds the optional Redis connection used for the seen-event cache.
	Redis RedisConfig `mapstructure:",squash"`

	// Notifications selects and configures the real-time status channel.
	Notifications NotificationConfig `mapstructure:",squash"`

	// NDR holds the failed-delivery retry policy.
	NDR NDRConfig `mapstructure:",squash"`
}

// DatabaseConfig holds database connection details.
type DatabaseConfig struct {
	// Driver is the SQL dialect to open.
	Driver string `mapstructure:"DB_DRIVER" default:"sqlite" options:"sqlite|postgres"`
	// DSN is the driver specific connection string.
	DSN string `mapstructure:"DB_DSN" required:"true"`
	// MaxOpenConns caps the connection pool.
	MaxOpenConns int `mapstructure:"DB_MAX_OPEN_CONNS" default:"10"`
}

// RedisConfig holds the Redis connection used to remember recently seen events.
type RedisConfig struct {
	// URL in the format redis://[:password@]host[:port][/database]. Empty disables the cache.
	URL string `mapstructure:"REDIS_URL"`
	// DedupTTLSeconds is how long a processed idempotency key stays in the cache.
	DedupTTLSeconds int `mapstructure:"DEDUP_CACHE_TTL_SECONDS" default:"86400"`
}

// DedupTTL returns the cache TTL as a duration.
func (r RedisConfig) DedupTTL() time.Duration {
	return time.Duration(r.DedupTTLSeconds) * time.Second
}

// NotificationConfig configures where status changes are published.
type NotificationConfig struct {
	// Driver selects the publisher implementation.
	Driver string `mapstructure:"NOTIFY_DRIVER" default:"log" options:"log|redis|kafka|http"`
	// TimeoutSeconds bounds a single publication.
	TimeoutSeconds int `mapstructure:"NOTIFY_TIMEOUT_SECONDS" default:"5"`
	// RedisChannelPrefix prefixes the per-recipient pub/sub channel.
	RedisChannelPrefix string `mapstructure:"NOTIFY_REDIS_CHANNEL_PREFIX" default:"shipment-updates"`
	// KafkaBrokers is a comma separated broker list.
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// KafkaTopic receives one message per status change.
	KafkaTopic string `mapstructure:"KAFKA_TOPIC" default:"shipment-status"`
	// WebhookURL receives a JSON POST per status change.
	WebhookURL string `mapstructure:"NOTIFY_WEBHOOK_URL"`
}

// Timeout returns the publish timeout as a duration.
func (n NotificationConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutSeconds) * time.Second
}

// BrokerList splits KafkaBrokers, dropping blanks.
func (n NotificationConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(n.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NDRConfig holds the non-delivery retry policy.
type NDRConfig struct {
	// MaxAttempts is the attempt count after which no further retry is scheduled.
	MaxAttempts int `mapstructure:"NDR_MAX_ATTEMPTS" default:"3"`
	// RetryHours is the delay before the next delivery attempt.
	RetryHours int `mapstructure:"NDR_RETRY_HOURS" default:"24"`
}

// RetryAfter returns the retry delay as a duration.
func (n NDRConfig) RetryAfter() time.Duration {
	return time.Duration(n.RetryHours) * time.Hour
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := validateOptions(&config); err != nil {
		return nil, err
	}

	if err := validateNotifications(config.Notifications, config.Redis.URL); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind env %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	return walkFields(config, func(field reflect.StructField, value reflect.Value) error {
		if field.Tag.Get("required") == "true" && isZero(value) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
		return nil
	})
}

// validateOptions rejects string fields whose value is not in their options tag.
func validateOptions(config interface{}) error {
	return walkFields(config, func(field reflect.StructField, value reflect.Value) error {
		options := field.Tag.Get("options")
		if options == "" || value.Kind() != reflect.String {
			return nil
		}
		for _, option := range strings.Split(options, "|") {
			if value.String() == option {
				return nil
			}
		}
		return fmt.Errorf("invalid configuration %s=%q: expected one of %s",
			field.Tag.Get("mapstructure"), value.String(), options)
	})
}

// validateNotifications checks that the selected publisher has its endpoint.
func validateNotifications(n NotificationConfig, redisURL string) error {
	switch n.Driver {
	case "redis":
		if redisURL == "" {
			return fmt.Errorf("missing required configuration: REDIS_URL")
		}
	case "kafka":
		if len(n.BrokerList()) == 0 {
			return fmt.Errorf("missing required configuration: KAFKA_BROKERS")
		}
	case "http":
		if n.WebhookURL == "" {
			return fmt.Errorf("missing required configuration: NOTIFY_WEBHOOK_URL")
		}
	}
	return nil
}

// walkFields visits every leaf field of a (possibly nested) config struct.
func walkFields(config interface{}, visit func(reflect.StructField, reflect.Value) error) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := walkFields(val.Field(i).Addr().Interface(), visit); err != nil {
				return err
			}
			continue
		}

		if err := visit(field, val.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
