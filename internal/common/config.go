package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Source modes.
const (
	ModeArticle = "article"
	ModeQuiz    = "quiz"
)

// Merge strategies for the document assembler.
const (
	MergeAnchor = "anchor"
	MergeAppend = "append"
)

// Config represents the application configuration. It is constructed once
// at startup and passed by reference to every component; no package-level
// credentials exist anywhere.
type Config struct {
	Environment string          `toml:"environment"`
	Logging     LoggingConfig   `toml:"logging"`
	Storage     StorageConfig   `toml:"storage"`
	Fetch       FetchConfig     `toml:"fetch"`
	Translate   TranslateConfig `toml:"translate"`
	Template    TemplateConfig  `toml:"template"`
	Render      RenderConfig    `toml:"render"`
	Telegram    TelegramConfig  `toml:"telegram"`
	Delivery    DeliveryConfig  `toml:"delivery"`
	Sources     []SourceConfig  `toml:"sources" validate:"min=1,dive"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration.
type BadgerConfig struct {
	Path string `toml:"path" validate:"required"` // Database directory path
}

type FetchConfig struct {
	Timeout       string   `toml:"timeout"`        // e.g. "30s"
	UserAgent     string   `toml:"user_agent"`     // request User-Agent header
	InsecureHosts []string `toml:"insecure_hosts"` // hosts with known self-signed certificates
}

// FetchTimeout returns the parsed fetch timeout, falling back to 30s.
func (c *FetchConfig) FetchTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

type TranslateConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"` // translate service URL
	Target   string `toml:"target"`   // target language code, e.g. "gu"
	Timeout  string `toml:"timeout"`  // per-call timeout, e.g. "10s"
}

// CallTimeout returns the parsed per-call translation timeout.
func (c *TranslateConfig) CallTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}

type TemplateConfig struct {
	Location string `toml:"location" validate:"required"` // local path or HTTP URL
}

type RenderConfig struct {
	Mode         string `toml:"mode" validate:"oneof=builtin converter"` // "builtin" (fpdf) or "converter" (external subprocess)
	ConverterBin string `toml:"converter_bin"`                           // e.g. "libreoffice"
}

type TelegramConfig struct {
	BotToken  string `toml:"bot_token" validate:"required"`
	ChannelID string `toml:"channel_id" validate:"required"` // numeric chat id or "@channel"
}

type DeliveryConfig struct {
	MaxAttempts  int    `toml:"max_attempts" validate:"min=1"` // document upload attempts
	RetryDelay   string `toml:"retry_delay"`                   // fixed delay between attempts
	PollInterval string `toml:"poll_interval"`                 // fixed delay between poll sends
}

// RetryDelayDuration returns the parsed fixed retry delay.
func (c *DeliveryConfig) RetryDelayDuration() time.Duration {
	if d, err := time.ParseDuration(c.RetryDelay); err == nil && d >= 0 {
		return d
	}
	return 5 * time.Second
}

// PollIntervalDuration returns the parsed delay between consecutive polls.
func (c *DeliveryConfig) PollIntervalDuration() time.Duration {
	if d, err := time.ParseDuration(c.PollInterval); err == nil && d >= 0 {
		return d
	}
	return 3 * time.Second
}

// SelectorConfig carries the site-specific structural signatures used by
// the scanner and extractor. Defaults match the supported source markup.
type SelectorConfig struct {
	Link        string   `toml:"link"`         // index-page anchor selector
	Container   string   `toml:"container"`    // main content container
	Heading     string   `toml:"heading"`      // article heading
	Noise       []string `toml:"noise"`        // class names to skip inside the container
	Question    string   `toml:"question"`     // quiz question element
	Options     string   `toml:"options"`      // quiz options container; its children are the options
	Answer      string   `toml:"answer"`       // element carrying the answer attribute
	AnswerAttr  string   `toml:"answer_attr"`  // hidden attribute holding "{KEY}"
	Explanation string   `toml:"explanation"`  // quiz explanation element
}

// PromoConfig is the fixed promotional block appended in append-merge mode.
type PromoConfig struct {
	Text string `toml:"text"`
	Link string `toml:"link"`
}

// SourceConfig describes one harvest source.
type SourceConfig struct {
	Name             string         `toml:"name" validate:"required"`
	BaseURL          string         `toml:"base_url" validate:"required,url"`
	Pages            int            `toml:"pages" validate:"min=1"`
	Mode             string         `toml:"mode" validate:"oneof=article quiz"`
	Schedule         string         `toml:"schedule"`           // cron expression, serve mode only
	CurrentMonthOnly bool           `toml:"current_month_only"` // keep only ids whose path contains the current year-month
	Exclude          []string       `toml:"exclude"`            // substrings excluding an id
	Merge            string         `toml:"merge" validate:"oneof=anchor append"`
	CaptionTitle     string         `toml:"caption_title"` // e.g. "Current Affairs"
	Promo            PromoConfig    `toml:"promo"`
	Selectors        SelectorConfig `toml:"selectors"`
}

// NewDefaultConfig returns a configuration with all defaults applied.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "production",
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{Path: "./data/gleaner"},
		},
		Fetch: FetchConfig{
			Timeout:   "30s",
			UserAgent: "gleaner/" + Version,
		},
		Translate: TranslateConfig{
			Enabled:  true,
			Endpoint: "https://translate.googleapis.com/translate_a/single",
			Target:   "gu",
			Timeout:  "10s",
		},
		Render: RenderConfig{
			Mode:         "converter",
			ConverterBin: "libreoffice",
		},
		Delivery: DeliveryConfig{
			MaxAttempts:  3,
			RetryDelay:   "5s",
			PollInterval: "3s",
		},
	}
}

// LoadFromFiles loads configuration from defaults, then each file in order
// (later files override earlier ones), then environment variables.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)
	applySourceDefaults(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// Environment always wins over file values.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("GLEANER_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if token := os.Getenv("GLEANER_BOT_TOKEN"); token != "" {
		config.Telegram.BotToken = token
	} else if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		config.Telegram.BotToken = token
	}

	if channel := os.Getenv("GLEANER_CHANNEL_ID"); channel != "" {
		config.Telegram.ChannelID = channel
	} else if channel := os.Getenv("TELEGRAM_CHANNEL_ID"); channel != "" {
		config.Telegram.ChannelID = channel
	}

	if path := os.Getenv("GLEANER_DB_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	if loc := os.Getenv("GLEANER_TEMPLATE"); loc != "" {
		config.Template.Location = loc
	} else if loc := os.Getenv("TEMPLATE_URL"); loc != "" {
		config.Template.Location = loc
	}

	if level := os.Getenv("GLEANER_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if attempts := os.Getenv("GLEANER_MAX_ATTEMPTS"); attempts != "" {
		if n, err := strconv.Atoi(attempts); err == nil && n > 0 {
			config.Delivery.MaxAttempts = n
		}
	}
}

// applySourceDefaults fills per-source zero values so downstream code never
// re-checks them.
func applySourceDefaults(config *Config) {
	for i := range config.Sources {
		src := &config.Sources[i]
		if src.Pages == 0 {
			src.Pages = 2
		}
		if src.Mode == "" {
			src.Mode = ModeArticle
		}
		if src.Merge == "" {
			if src.Mode == ModeQuiz {
				src.Merge = MergeAppend
			} else {
				src.Merge = MergeAnchor
			}
		}
		if src.CaptionTitle == "" {
			src.CaptionTitle = "Current Affairs"
		}
		applySelectorDefaults(&src.Selectors)
	}
}

func applySelectorDefaults(sel *SelectorConfig) {
	if sel.Link == "" {
		sel.Link = "h1#list a[href]"
	}
	if sel.Container == "" {
		sel.Container = "div.inside_post.column.content_width"
	}
	if sel.Heading == "" {
		sel.Heading = "h1#list"
	}
	if len(sel.Noise) == 0 {
		sel.Noise = []string{"sharethis-inline-share-buttons", "prenext"}
	}
	if sel.Question == "" {
		sel.Question = "div.wp_quiz_question"
	}
	if sel.Options == "" {
		sel.Options = "div.wp_quiz_question_options"
	}
	if sel.Answer == "" {
		sel.Answer = "div.ques_answer"
	}
	if sel.AnswerAttr == "" {
		sel.AnswerAttr = "data-answer"
	}
	if sel.Explanation == "" {
		sel.Explanation = "div.answer_hint"
	}
}

// Validate checks the configuration. It runs before any network or store
// access; a failure here aborts the process.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	for _, src := range c.Sources {
		if src.Schedule == "" {
			continue
		}
		if _, err := parser.Parse(src.Schedule); err != nil {
			return fmt.Errorf("source %s: invalid schedule %q: %w", src.Name, src.Schedule, err)
		}
	}

	if c.Render.Mode == "converter" && c.Render.ConverterBin == "" {
		return fmt.Errorf("render mode %q requires converter_bin", c.Render.Mode)
	}

	return nil
}
