package sitekit

import "github.com/mekongworks/sitekit/internal/runtimeconfig"

var (
	ErrDefaultLocaleUnsupported   = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrMarkdownContentDirRequired = runtimeconfig.ErrMarkdownContentDirRequired
	ErrListLimitInvalid           = runtimeconfig.ErrListLimitInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	ContentConfig        = runtimeconfig.ContentConfig
	CMSConfig            = runtimeconfig.CMSConfig
	DatastoreConfig      = runtimeconfig.DatastoreConfig
	AssistantConfig      = runtimeconfig.AssistantConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	TelemetryConfig      = runtimeconfig.TelemetryConfig
	RoutesConfig         = runtimeconfig.RoutesConfig
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
	Backends             = runtimeconfig.Backends
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// FromEnv builds a Config from the process environment on top of defaults.
func FromEnv() Config {
	return runtimeconfig.FromEnv()
}
