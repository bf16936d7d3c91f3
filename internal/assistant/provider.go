package assistant

import (
	"context"

	"github.com/mekongworks/sitekit/internal/locale"
)

// Provider produces a reply to a visitor message. Implementations talk to an
// external language model; the service layer owns every fallback decision.
type Provider interface {
	Reply(ctx context.Context, message string, target locale.Locale) (string, error)
}

// Reply is what the chat endpoint returns. Source distinguishes a model
// answer from the local canned table so the widget can label it.
type Reply struct {
	Message string `json:"message"`
	Source  string `json:"source"`
}

const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)
