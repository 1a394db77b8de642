package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-pagecms/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.BaseLanguage != "en_US" {
		t.Fatalf("expected en_US base language got %q", cfg.BaseLanguage)
	}
	if cfg.Storage.Provider != "memory" {
		t.Fatalf("expected memory storage got %q", cfg.Storage.Provider)
	}
	if cfg.HTTP.BasePath != "/api" {
		t.Fatalf("expected /api base path got %q", cfg.HTTP.BasePath)
	}
}

func TestValidateBaseLanguage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.BaseLanguage = "  "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrBaseLanguageRequired) {
		t.Fatalf("expected ErrBaseLanguageRequired got %v", err)
	}
}

func TestValidateStorageProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	for _, provider := range []string{"memory", "bun", "BUN", " memory ", ""} {
		cfg.Storage.Provider = provider
		if err := cfg.Validate(); err != nil {
			t.Fatalf("provider %q rejected: %v", provider, err)
		}
	}
	cfg.Storage.Provider = "redis"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown got %v", err)
	}
}

func TestValidateMarkdown(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMarkdownFeatureRequired) {
		t.Fatalf("expected ErrMarkdownFeatureRequired got %v", err)
	}

	cfg.Features.Markdown = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("markdown config invalid: %v", err)
	}

	cfg.Markdown.ContentDir = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMarkdownContentDirRequired) {
		t.Fatalf("expected ErrMarkdownContentDirRequired got %v", err)
	}
}

func TestValidateAutoTranslateTimeout(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.AutoTranslate.ProviderTimeout = 1
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrAutoTranslateFeatureRequired) {
		t.Fatalf("expected ErrAutoTranslateFeatureRequired got %v", err)
	}
	cfg.Features.AutoTranslate = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("autotranslate config invalid: %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("console logging invalid: %v", err)
	}

	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid got %v", err)
	}

	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("gologger config invalid: %v", err)
	}
}
