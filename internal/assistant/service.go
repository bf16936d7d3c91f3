package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/mekongworks/sitekit/internal/locale"
	"github.com/mekongworks/sitekit/internal/logging"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

const defaultTimeout = 15 * time.Second

// ServiceConfig tunes the chat service.
type ServiceConfig struct {
	// Timeout bounds each provider call.
	Timeout time.Duration
}

// Service answers visitor chat messages. Chat is advisory, not a system of
// record: every failure mode, including a missing provider, degrades to the
// canned table so the endpoint always has a non-empty answer.
type Service struct {
	provider Provider
	timeout  time.Duration
	logger   interfaces.Logger
}

// NewService wires the chat service. provider may be nil when no model API
// key is configured.
func NewService(provider Provider, cfg ServiceConfig, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{provider: provider, timeout: timeout, logger: logger}
}

// Chat produces a reply for a visitor message in the page locale. The reply
// is never empty.
func (s *Service) Chat(ctx context.Context, message string, target locale.Locale) Reply {
	message = strings.TrimSpace(message)
	if message == "" || s.provider == nil {
		return Reply{Message: CannedReply(message, target), Source: SourceFallback}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.provider.Reply(ctx, message, target)
	if err != nil {
		if IsQuotaExhausted(err) {
			s.logger.Warn("assistant: provider quota exhausted, using canned reply", "error", err)
		} else {
			s.logger.Error("assistant: provider failed, using canned reply", "error", err)
		}
		return Reply{Message: CannedReply(message, target), Source: SourceFallback}
	}
	if strings.TrimSpace(answer) == "" {
		return Reply{Message: CannedReply(message, target), Source: SourceFallback}
	}
	return Reply{Message: answer, Source: SourceModel}
}
