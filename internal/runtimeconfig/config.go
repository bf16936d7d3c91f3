package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrDefaultLocaleUnsupported indicates the configured default locale is not
// part of the supported set.
var ErrDefaultLocaleUnsupported = errors.New("site config: default locale must be one of the supported locales")

// ErrMarkdownContentDirRequired ensures the markdown source always has a root directory.
var ErrMarkdownContentDirRequired = errors.New("site config: markdown content directory is required")

var ErrLoggingProviderRequired = errors.New("site config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("site config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("site config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("site config: logging format is invalid")
var ErrListLimitInvalid = errors.New("site config: content list limit must be positive")

// Config aggregates feature flags and backend bindings for the site runtime.
// It is computed once at process start and stays immutable afterwards; every
// component receives it (or a slice of it) by injection instead of reading
// environment variables ad hoc.
type Config struct {
	// DefaultLocale and Locales record the locale set the site is built for.
	// They mirror the routing and content fallback tables and are not
	// overridable from the environment; Validate guards against a build that
	// drifts them apart.
	DefaultLocale string
	Locales       []string
	Content       ContentConfig
	CMS           CMSConfig
	Datastore     DatastoreConfig
	Assistant     AssistantConfig
	Markdown      MarkdownConfig
	Telemetry     TelemetryConfig
	Routes        RoutesConfig
	Features      Features
	Logging       LoggingConfig
}

// ContentConfig captures behaviour of the content resolution layer.
type ContentConfig struct {
	// ListLimit caps listing endpoints when callers do not supply a limit.
	ListLimit int
	// CacheTTL bounds how long repository reads may be served from cache.
	CacheTTL time.Duration
}

// CMSConfig identifies the hosted headless CMS project. The CMS counts as
// configured only when both project and dataset are present.
type CMSConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	BaseURL    string
	UseCDN     bool
	Timeout    time.Duration
}

// Configured reports whether the CMS backend can be queried at all.
func (c CMSConfig) Configured() bool {
	return strings.TrimSpace(c.ProjectID) != "" && strings.TrimSpace(c.Dataset) != ""
}

// DatastoreConfig captures the hosted database connection. An empty DSN means
// comment/like storage is disabled and reads degrade to empty results.
type DatastoreConfig struct {
	Driver string
	DSN    string
}

// Configured reports whether the datastore backend is usable.
func (c DatastoreConfig) Configured() bool {
	return strings.TrimSpace(c.DSN) != ""
}

// AssistantConfig wires the chat assistant provider. Without an API key the
// assistant answers from the local canned-reply table only.
type AssistantConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Configured reports whether the external language model can be called.
func (c AssistantConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// MarkdownConfig captures filesystem behaviour for the static content tree.
type MarkdownConfig struct {
	ContentDir string
	Pattern    string
	Watch      bool
	Parser     MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// TelemetryConfig bounds the in-memory metric buffer.
type TelemetryConfig struct {
	BufferSize int
}

// RoutesConfig carries the go-urlkit route table used to build canonical
// per-locale content URLs.
type RoutesConfig struct {
	BaseURL     string
	RouteConfig *urlkit.Config
}

// Features toggles optional module functionality.
type Features struct {
	Comments  bool
	Likes     bool
	Assistant bool
	Telemetry bool
	Logger    bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Backends is the process-wide record of which external services are
// reachable. It is derived from Config once and handed to every component
// that must degrade gracefully when a backend is absent.
type Backends struct {
	CMS       bool
	Datastore bool
	Assistant bool
}

// Backends derives the immutable backend availability snapshot.
func (cfg Config) Backends() Backends {
	return Backends{
		CMS:       cfg.CMS.Configured(),
		Datastore: cfg.Datastore.Configured(),
		Assistant: cfg.Assistant.Configured(),
	}
}

// DefaultConfig returns opinionated defaults for the marketing site runtime.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Locales:       []string{"en", "vi", "ja"},
		Content: ContentConfig{
			ListLimit: 10,
			CacheTTL:  time.Minute,
		},
		CMS: CMSConfig{
			APIVersion: "v2023-05-03",
			UseCDN:     true,
			Timeout:    10 * time.Second,
		},
		Datastore: DatastoreConfig{
			Driver: "sqlite",
		},
		Assistant: AssistantConfig{
			Model:   "gemini-2.0-flash",
			Timeout: 20 * time.Second,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
		},
		Telemetry: TelemetryConfig{
			BufferSize: 256,
		},
		Features: Features{
			Comments:  true,
			Likes:     true,
			Assistant: true,
			Telemetry: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// FromEnv builds a Config from process environment variables, starting from
// DefaultConfig. Missing variables leave defaults in place; absence of any
// backend credential must never fail startup, it only flips the matching
// Backends flag off.
func FromEnv() Config {
	cfg := DefaultConfig()

	cfg.CMS.ProjectID = os.Getenv("CMS_PROJECT_ID")
	cfg.CMS.Dataset = os.Getenv("CMS_DATASET")
	cfg.CMS.Token = os.Getenv("CMS_API_TOKEN")
	if v := os.Getenv("CMS_API_VERSION"); v != "" {
		cfg.CMS.APIVersion = v
	}
	if v := os.Getenv("CMS_BASE_URL"); v != "" {
		cfg.CMS.BaseURL = v
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Datastore.DSN = v
		cfg.Datastore.Driver = "postgres"
	} else if v := os.Getenv("DATABASE_FILE"); v != "" {
		cfg.Datastore.DSN = v
		cfg.Datastore.Driver = "sqlite"
	}

	cfg.Assistant.APIKey = os.Getenv("GEMINI_API_KEY")
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Assistant.Model = v
	}

	if v := os.Getenv("SITE_CONTENT_DIR"); v != "" {
		cfg.Markdown.ContentDir = v
	}
	if v := os.Getenv("SITE_BASE_URL"); v != "" {
		cfg.Routes.BaseURL = v
	}
	if v := os.Getenv("SITE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SITE_LOG_PROVIDER"); v != "" {
		cfg.Logging.Provider = v
		cfg.Features.Logger = true
	}

	return cfg
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	supported := false
	for _, locale := range cfg.Locales {
		if strings.EqualFold(locale, cfg.DefaultLocale) {
			supported = true
			break
		}
	}
	if !supported {
		return ErrDefaultLocaleUnsupported
	}
	if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		return ErrMarkdownContentDirRequired
	}
	if cfg.Content.ListLimit <= 0 {
		return ErrListLimitInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
