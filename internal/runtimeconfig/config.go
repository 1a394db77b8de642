package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrBaseLanguageRequired indicates the authoring language was blanked out.
var ErrBaseLanguageRequired = errors.New("pagecms config: base language is required")

// ErrStorageProviderUnknown indicates an unsupported storage provider name.
var ErrStorageProviderUnknown = errors.New("pagecms config: storage provider is invalid")

var ErrMarkdownFeatureRequired = errors.New("pagecms config: markdown feature must be enabled to configure markdown")
var ErrMarkdownContentDirRequired = errors.New("pagecms config: markdown content directory is required when markdown is enabled")
var ErrAutoTranslateFeatureRequired = errors.New("pagecms config: autotranslate feature must be enabled to configure a provider timeout")
var ErrLoggingProviderRequired = errors.New("pagecms config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("pagecms config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("pagecms config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("pagecms config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the module.
// Fields intentionally use simple types so host applications can extend them.
type Config struct {
	Enabled       bool
	BaseLanguage  string
	Storage       StorageConfig
	Cache         CacheConfig
	AutoTranslate AutoTranslateConfig
	Markdown      MarkdownConfig
	HTTP          HTTPConfig
	Features      Features
	Logging       LoggingConfig
}

// StorageConfig names the persistence backend.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures repository cache toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// AutoTranslateConfig bounds the external machine-translation provider.
type AutoTranslateConfig struct {
	ProviderTimeout time.Duration
}

// MarkdownConfig captures filesystem behaviour for Markdown page seeding.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
}

// HTTPConfig captures the public read API mount point.
type HTTPConfig struct {
	BasePath string
}

// Features toggles module functionality.
type Features struct {
	AutoTranslate bool
	Markdown      bool
	Activity      bool
	Logger        bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults: memory storage, en_US authoring
// language, API under /api.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		BaseLanguage: "en_US",
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
		},
		HTTP: HTTPConfig{
			BasePath: "/api",
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.BaseLanguage) == "" {
		return ErrBaseLanguageRequired
	}
	switch normalizeProvider(cfg.Storage.Provider) {
	case "", "memory", "bun":
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.AutoTranslate.ProviderTimeout > 0 && !cfg.Features.AutoTranslate {
		return ErrAutoTranslateFeatureRequired
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
