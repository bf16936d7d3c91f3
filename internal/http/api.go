package http

import (
	"net/http"
	"strings"

	"github.com/mekongworks/sitekit/internal/assistant"
	"github.com/mekongworks/sitekit/internal/content"
	"github.com/mekongworks/sitekit/internal/engagement"
	"github.com/mekongworks/sitekit/internal/logging"
	"github.com/mekongworks/sitekit/internal/telemetry"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

// API registers the public JSON endpoints: content listings, comments,
// likes, the chat proxy and performance telemetry.
type API struct {
	basePath   string
	content    *content.Service
	engagement *engagement.Service
	assistant  *assistant.Service
	telemetry  *telemetry.Service
	logger     interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithContentService wires the content service.
func WithContentService(service *content.Service) Option {
	return func(api *API) { api.content = service }
}

// WithEngagementService wires the comments and likes service.
func WithEngagementService(service *engagement.Service) Option {
	return func(api *API) { api.engagement = service }
}

// WithAssistantService wires the chat proxy service.
func WithAssistantService(service *assistant.Service) Option {
	return func(api *API) { api.assistant = service }
}

// WithTelemetryService wires the performance metric sink.
func WithTelemetryService(service *telemetry.Service) Option {
	return func(api *API) { api.telemetry = service }
}

// WithLogger injects the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register mounts every endpoint on the mux.
func (api *API) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	api.registerContentRoutes(mux, api.basePath)
	api.registerCommentRoutes(mux, api.basePath)
	api.registerLikeRoutes(mux, api.basePath)
	api.registerChatRoutes(mux, api.basePath)
	api.registerTelemetryRoutes(mux, api.basePath)
}
