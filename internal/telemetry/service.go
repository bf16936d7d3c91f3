package telemetry

import (
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mekongworks/sitekit/internal/logging"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

const defaultBufferSize = 256

// Metric is one browser performance sample reported by a page.
type Metric struct {
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Page       string    `json:"page,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Validate checks a submitted sample. Known web-vitals names and any
// reasonable custom name are accepted; only structurally empty samples are
// rejected.
func (m Metric) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Name) == "" {
		errs["name"] = validation.NewError("site.telemetry.name_required", "name is required")
	}
	if m.Value < 0 {
		errs["value"] = validation.NewError("site.telemetry.value_invalid", "value must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Service keeps the most recent metrics in a bounded ring. Reporting is
// fire-and-forget from the browser's view: Record drops invalid samples with
// a log line and never signals failure to the page.
type Service struct {
	logger interfaces.Logger

	mu      sync.Mutex
	ring    []Metric
	next    int
	filled  bool
	nowFunc func() time.Time
}

// NewService creates a telemetry service with a bounded buffer. size <= 0
// applies the default.
func NewService(size int, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Service{
		logger:  logger,
		ring:    make([]Metric, size),
		nowFunc: time.Now,
	}
}

// Record stores a sample, overwriting the oldest once the buffer is full.
// Invalid samples are dropped.
func (s *Service) Record(metric Metric) {
	if err := metric.Validate(); err != nil {
		s.logger.Debug("telemetry: dropping invalid sample", "error", err)
		return
	}
	metric.Name = strings.TrimSpace(metric.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	metric.ReceivedAt = s.nowFunc()
	s.ring[s.next] = metric
	s.next++
	if s.next == len(s.ring) {
		s.next = 0
		s.filled = true
	}
}

// Snapshot returns the buffered samples, oldest first.
func (s *Service) Snapshot() []Metric {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.filled {
		out := make([]Metric, s.next)
		copy(out, s.ring[:s.next])
		return out
	}
	out := make([]Metric, 0, len(s.ring))
	out = append(out, s.ring[s.next:]...)
	out = append(out, s.ring[:s.next]...)
	return out
}
