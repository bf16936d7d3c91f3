package logging

import (
	"context"
	"strings"

	"github.com/mekongworks/sitekit/pkg/interfaces"
)

const (
	rootModule       = "site"
	contentModule    = "site.content"
	cmsModule        = "site.cms"
	markdownModule   = "site.markdown"
	engagementModule = "site.engagement"
	assistantModule  = "site.assistant"
	telemetryModule  = "site.telemetry"
	httpModule       = "site.http"
)

const (
	fieldContentType = "content_type"
	fieldLocale      = "locale"
	fieldSlug        = "slug"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as structured context so entries can be filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ContentLogger returns the logger namespace reserved for content resolution.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// CMSLogger returns the logger namespace reserved for the headless CMS client.
func CMSLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cmsModule)
}

// MarkdownLogger returns the logger namespace reserved for the markdown store.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// EngagementLogger returns the logger namespace reserved for comments and likes.
func EngagementLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, engagementModule)
}

// AssistantLogger returns the logger namespace reserved for the chat assistant.
func AssistantLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, assistantModule)
}

// TelemetryLogger returns the logger namespace reserved for metric ingestion.
func TelemetryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, telemetryModule)
}

// HTTPLogger returns the logger namespace reserved for the API surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithContentContext enriches the provided logger with common content fields
// such as content type, locale, and slug. Empty values are ignored.
func WithContentContext(logger interfaces.Logger, contentType, locale, slug string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(contentType); trimmed != "" {
		fields[fieldContentType] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldSlug] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry. It satisfies the Logger
// contract so services operate safely when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
