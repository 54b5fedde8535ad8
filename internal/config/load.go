package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "CROCODILE"

// ErrDatabaseURLRequired is returned when the database backend is active without a URL.
var ErrDatabaseURLRequired = errors.New("database.url is required when the database backend is active")

// Default prompts used by the LLM backends.
const (
	DefaultSystemPrompt = "You are a helpful assistant that generates words for the game Crocodile. " +
		"Reply with single nouns only, one per line, without numbering or explanations."
	DefaultUserPromptTemplate = "Generate %d distinct nouns on the theme \"%s\" that are easy to show with gestures."
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads configFile when it is non-empty instead of
// searching for config.yaml in the working directory.
func LoadFrom(configFile string) (*Config, error) {
	// .env is optional; a missing file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and cross-field rules.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Words.ActiveBackend == "database" && cfg.Database.URL == "" {
		return ErrDatabaseURLRequired
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	v.SetDefault("database.url", "")

	v.SetDefault("words.active_backend", "lm-studio")
	v.SetDefault("words.batch_size", 20)
	v.SetDefault("words.initial_size", 10)
	v.SetDefault("words.min_threshold", 5)
	v.SetDefault("words.availability_ttl_seconds", 30)

	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)

	v.SetDefault("lm_studio.enabled", true)
	v.SetDefault("lm_studio.url", "http://localhost:1234")
	v.SetDefault("lm_studio.model", "local-model")
	v.SetDefault("lm_studio.temperature", 0.7)
	v.SetDefault("lm_studio.max_tokens", 500)
	v.SetDefault("lm_studio.timeout_seconds", 30)
	v.SetDefault("lm_studio.requests_per_second", 2.0)
	v.SetDefault("lm_studio.burst", 2)
	v.SetDefault("lm_studio.system_prompt", DefaultSystemPrompt)
	v.SetDefault("lm_studio.user_prompt_template", DefaultUserPromptTemplate)

	v.SetDefault("gemini.enabled", false)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-2.0-flash")
	v.SetDefault("gemini.temperature", 0.9)
	v.SetDefault("gemini.prompt_template_path", "")
}

// bindEnvs binds every known key so AutomaticEnv picks up values during Unmarshal
// even for keys that only exist as defaults.
func bindEnvs(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key)
	}
}
