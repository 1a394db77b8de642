package pagecms

import "github.com/goliatone/go-pagecms/internal/runtimeconfig"

var (
	ErrBaseLanguageRequired         = runtimeconfig.ErrBaseLanguageRequired
	ErrStorageProviderUnknown       = runtimeconfig.ErrStorageProviderUnknown
	ErrMarkdownFeatureRequired      = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired   = runtimeconfig.ErrMarkdownContentDirRequired
	ErrAutoTranslateFeatureRequired = runtimeconfig.ErrAutoTranslateFeatureRequired
	ErrLoggingProviderRequired      = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown       = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config              = runtimeconfig.Config
	StorageConfig       = runtimeconfig.StorageConfig
	CacheConfig         = runtimeconfig.CacheConfig
	AutoTranslateConfig = runtimeconfig.AutoTranslateConfig
	MarkdownConfig      = runtimeconfig.MarkdownConfig
	HTTPConfig          = runtimeconfig.HTTPConfig
	Features            = runtimeconfig.Features
	LoggingConfig       = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
