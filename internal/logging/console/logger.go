// Package console writes logfmt lines for development runs and tests.
// Production deployments plug in the go-logger provider instead.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mekongworks/sitekit/internal/logging"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

// Level orders entry severities. The zero value is Debug so a zero Options
// logs everything a developer run needs.
type Level int8

const (
	LevelTrace Level = iota - 1
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"trace", "debug", "info", "warn", "error", "fatal"}

// String renders the lowercase severity label used in the level= field.
func (l Level) String() string {
	idx := int(l) + 1
	if idx < 0 || idx >= len(levelNames) {
		return "info"
	}
	return levelNames[idx]
}

// ParseLevel maps a configuration string onto a Level. Unknown values fall
// back to Info, matching the runtime config default.
func ParseLevel(value string) Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Options configures the provider. The zero value logs to stdout at Debug
// with wall-clock timestamps.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

// Provider emits one logfmt line per event. A single mutex serializes
// writes so concurrent request handlers do not interleave output.
type Provider struct {
	mu    sync.Mutex
	out   io.Writer
	now   func() time.Time
	least Level
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider constructs the console provider.
func NewProvider(opts Options) *Provider {
	p := &Provider{out: opts.Writer, now: opts.TimeFunc, least: LevelDebug}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.now == nil {
		p.now = time.Now
	}
	if opts.MinLevel != nil {
		p.least = *opts.MinLevel
	}
	return p
}

// GetLogger returns a named logger; the name appears as the logger= field.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &logger{provider: p, fields: map[string]any{"logger": name}}
}

type logger struct {
	provider *Provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*logger)(nil)
	_ interfaces.FieldsLogger = (*logger)(nil)
)

func (l *logger) Trace(msg string, args ...any) { l.write(LevelTrace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.write(LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.write(LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.write(LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.write(LevelError, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.write(LevelFatal, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &logger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	return &logger{provider: l.provider, fields: l.fields, ctx: ctx}
}

func (l *logger) write(level Level, msg string, args []any) {
	if l.provider == nil || level < l.provider.least {
		return
	}

	fields := make(map[string]any, len(l.fields)+len(args)/2+1)
	for key, value := range l.fields {
		fields[key] = value
	}
	for key, value := range logging.ContextFields(l.ctx) {
		fields[key] = value
	}
	mergePairs(fields, args)

	line := strings.Builder{}
	line.Grow(48 + len(msg) + len(fields)*16)
	line.WriteString("level=")
	line.WriteString(level.String())
	line.WriteString(" ts=")
	line.WriteString(l.provider.now().UTC().Format(time.RFC3339))
	line.WriteString(" msg=")
	line.WriteString(encode(msg))

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		line.WriteByte(' ')
		line.WriteString(key)
		line.WriteByte('=')
		line.WriteString(encode(fields[key]))
	}
	line.WriteByte('\n')

	l.provider.mu.Lock()
	defer l.provider.mu.Unlock()
	// Best effort: a failed diagnostic write must not fail the request.
	_, _ = io.WriteString(l.provider.out, line.String())
}

// mergePairs interprets args as alternating keys and values. Odd trailing
// arguments and non-string keys land under positional names so nothing is
// silently dropped.
func mergePairs(fields map[string]any, args []any) {
	position := 0
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			fields["arg"+strconv.Itoa(position)] = args[i]
			return
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg" + strconv.Itoa(position)
		}
		fields[key] = args[i+1]
		position++
	}
}

func encode(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case time.Time:
		return quote(v.UTC().Format(time.RFC3339))
	case error:
		return quote(v.Error())
	case time.Duration:
		return v.String()
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" || strings.ContainsAny(value, " \t=\"") {
		return strconv.Quote(value)
	}
	return value
}
