package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Environment names understood by the logging layer
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config is the full set of client settings.
// Build it once with Load or Default and pass it by value; nothing mutates it afterwards.
type Config struct {
	Env      string `yaml:"env" env:"ZVONOCLI_ENV" validate:"oneof=dev prod"`
	LogLevel string `yaml:"log_level" env:"ZVONOCLI_LOG_LEVEL" validate:"oneof=debug info warn error"`

	API        APIConfig        `yaml:"api"`
	UI         UIConfig         `yaml:"ui"`
	Validation ValidationConfig `yaml:"validation"`
	TestData   TestData         `yaml:"test_data"`
	Messages   Messages         `yaml:"messages"`
}

// APIConfig describes the remote messaging API
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"ZVONOCLI_BASE_URL" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" env:"ZVONOCLI_TIMEOUT" validate:"gt=0"`
}

// UIConfig holds presentation settings
type UIConfig struct {
	NotificationDuration time.Duration `yaml:"notification_duration" env:"ZVONOCLI_NOTIFICATION_DURATION" validate:"gt=0"`
	MaxPhoneNumbers      int           `yaml:"max_phone_numbers" env:"ZVONOCLI_MAX_PHONE_NUMBERS" validate:"min=1"`
}

// ValidationConfig holds client-side input rules
type ValidationConfig struct {
	PhonePattern  string `yaml:"phone_pattern" validate:"required"`
	MinTextLength int    `yaml:"min_text_length" validate:"min=0"`
	MaxTextLength int    `yaml:"max_text_length" validate:"gtefield=MinTextLength"`
}

// TestData is the sample input used to pre-fill the forms
type TestData struct {
	Phone     string `yaml:"phone"`
	VoiceText string `yaml:"voice_text"`
	SMSText   string `yaml:"sms_text"`
	RecordID  string `yaml:"record_id"`
}

// Messages are the user-facing captions
type Messages struct {
	Success SuccessMessages `yaml:"success"`
	Error   ErrorMessages   `yaml:"error"`
	Loading LoadingMessages `yaml:"loading"`
}

// SuccessMessages are the captions of successful requests
type SuccessMessages struct {
	APIKeyTest    string `yaml:"api_key_test" validate:"required"`
	ProfileLoaded string `yaml:"profile_loaded" validate:"required"`
	PhonesLoaded  string `yaml:"phones_loaded" validate:"required"`
	RecordsLoaded string `yaml:"records_loaded" validate:"required"`
	MessageSent   string `yaml:"message_sent" validate:"required"`
}

// ErrorMessages are the captions of failed requests and rejected input
type ErrorMessages struct {
	Validation string `yaml:"validation" validate:"required"`
	Network    string `yaml:"network" validate:"required"`
	API        string `yaml:"api" validate:"required"`
	Unknown    string `yaml:"unknown" validate:"required"`
}

// LoadingMessages are shown while a request is in flight
type LoadingMessages struct {
	APIKey  string `yaml:"api_key" validate:"required"`
	Profile string `yaml:"profile" validate:"required"`
	Phones  string `yaml:"phones" validate:"required"`
	Records string `yaml:"records" validate:"required"`
	Sending string `yaml:"sending" validate:"required"`
}

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Default returns the compiled-in settings
func Default() Config {
	return Config{
		Env:      EnvDev,
		LogLevel: "info",
		API: APIConfig{
			BaseURL: "http://localhost:8081/api",
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			NotificationDuration: 3 * time.Second,
			MaxPhoneNumbers:      10,
		},
		Validation: ValidationConfig{
			PhonePattern:  `^7\d{10}$`,
			MinTextLength: 1,
			MaxTextLength: 1000,
		},
		TestData: TestData{
			Phone:     "+77079621630",
			VoiceText: "Привет! Это тестовое голосовое сообщение на русском языке от API Звонобота.",
			SMSText:   "Привет! Это тестовое SMS сообщение на русском языке.",
			RecordID:  "247273",
		},
		Messages: Messages{
			Success: SuccessMessages{
				APIKeyTest:    "API key works",
				ProfileLoaded: "Profile loaded",
				PhonesLoaded:  "Outgoing numbers loaded",
				RecordsLoaded: "Audio records loaded",
				MessageSent:   "Message sent",
			},
			Error: ErrorMessages{
				Validation: "Validation error",
				Network:    "Network error",
				API:        "API error",
				Unknown:    "Unknown error",
			},
			Loading: LoadingMessages{
				APIKey:  "🔑 Testing API key...",
				Profile: "👤 Fetching profile...",
				Phones:  "📞 Fetching outgoing numbers...",
				Records: "🎵 Fetching audio records...",
				Sending: "🔄 Sending request...",
			},
		},
	}
}

// Load builds a Config from defaults, an optional YAML file and ZVONOCLI_* environment variables.
// An empty path falls back to ConfigFile when that file exists.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" && ConfigFile != "" {
		if _, err := os.Stat(ConfigFile); err == nil {
			path = ConfigFile
		}
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency
func (c Config) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := regexp.Compile(c.Validation.PhonePattern); err != nil {
		return fmt.Errorf("invalid config: phone pattern: %w", err)
	}
	return nil
}

// Option overrides a single setting
type Option func(*Config)

// WithBaseURL overrides the API base URL (ignored when empty)
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		if baseURL != "" {
			c.API.BaseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout overrides the transport timeout (ignored when zero)
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.API.Timeout = d
		}
	}
}

// WithEnv overrides the environment name (ignored when empty)
func WithEnv(env string) Option {
	return func(c *Config) {
		if env != "" {
			c.Env = env
		}
	}
}

// With returns a copy of c with the options applied. The receiver is left untouched.
func (c Config) With(opts ...Option) (Config, error) {
	out := c
	for _, opt := range opts {
		opt(&out)
	}
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

// YAML renders the effective settings
func (c Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}
