package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"    validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Words    WordsConfig    `mapstructure:"words"     validate:"required"`
	Task     TaskConfig     `mapstructure:"task"      validate:"required"`
	LMStudio LMStudioConfig `mapstructure:"lm_studio"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of the HTTP server and workers.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
// The URL is optional unless the database backend is active.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// WordsConfig controls the word pool and refill behavior.
type WordsConfig struct {
	ActiveBackend          string `mapstructure:"active_backend"           validate:"required,oneof=lm-studio gemini database"`
	BatchSize              int    `mapstructure:"batch_size"               validate:"gte=1"`
	InitialSize            int    `mapstructure:"initial_size"             validate:"gte=1"`
	MinThreshold           int    `mapstructure:"min_threshold"            validate:"gte=1"`
	AvailabilityTTLSeconds int    `mapstructure:"availability_ttl_seconds" validate:"gte=1"`
}

// TaskConfig sizes the background worker pool that runs refills.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"gte=1"`
	QueueSize   int `mapstructure:"queue_size"   validate:"gte=1"`
}

// LMStudioConfig configures the OpenAI-compatible LM Studio backend.
type LMStudioConfig struct {
	Enabled            bool    `mapstructure:"enabled"`
	URL                string  `mapstructure:"url"                  validate:"omitempty,url"`
	Model              string  `mapstructure:"model"`
	Temperature        float64 `mapstructure:"temperature"          validate:"gte=0,lte=2"`
	MaxTokens          int     `mapstructure:"max_tokens"           validate:"gte=1"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds"      validate:"gte=1"`
	RequestsPerSecond  float64 `mapstructure:"requests_per_second"  validate:"gt=0"`
	Burst              int     `mapstructure:"burst"                validate:"gte=1"`
	SystemPrompt       string  `mapstructure:"system_prompt"`
	UserPromptTemplate string  `mapstructure:"user_prompt_template"`
}

// GeminiConfig configures the Google Gemini backend.
type GeminiConfig struct {
	Enabled            bool    `mapstructure:"enabled"`
	APIKey             string  `mapstructure:"api_key"`
	ModelName          string  `mapstructure:"model_name"`
	Temperature        float64 `mapstructure:"temperature"          validate:"gte=0,lte=2"`
	PromptTemplatePath string  `mapstructure:"prompt_template_path"`
}
