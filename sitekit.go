package sitekit

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"strings"

	cache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	"github.com/mekongworks/sitekit/internal/assistant"
	"github.com/mekongworks/sitekit/internal/cmsclient"
	engagementcmd "github.com/mekongworks/sitekit/internal/commands/engagement"
	"github.com/mekongworks/sitekit/internal/content"
	"github.com/mekongworks/sitekit/internal/engagement"
	sitehttp "github.com/mekongworks/sitekit/internal/http"
	"github.com/mekongworks/sitekit/internal/locale"
	"github.com/mekongworks/sitekit/internal/logging"
	"github.com/mekongworks/sitekit/internal/logging/console"
	"github.com/mekongworks/sitekit/internal/logging/gologger"
	"github.com/mekongworks/sitekit/internal/markdown"
	"github.com/mekongworks/sitekit/internal/runtimeconfig"
	"github.com/mekongworks/sitekit/internal/telemetry"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

// ContentService exports the content resolution service for consumers of the
// sitekit package.
type ContentService = *content.Service

// EngagementService exports the comments and likes service.
type EngagementService = *engagement.Service

// AssistantService exports the chat assistant service.
type AssistantService = *assistant.Service

// TelemetryService exports the metric ingestion service.
type TelemetryService = *telemetry.Service

// ContentType exports the content type enumeration.
type ContentType = content.Type

// ContentItemView exports the locale-resolved content item DTO.
type ContentItemView = content.ItemView

// Locale exports the supported locale type.
type Locale = locale.Locale

// Comment exports the comment record.
type Comment = engagement.Comment

// Like exports the like record.
type Like = engagement.Like

// LikeStatus exports the per-post like summary DTO.
type LikeStatus = engagement.LikeStatus

// ChatReply exports the assistant answer DTO.
type ChatReply = assistant.Reply

// Metric exports the telemetry metric record.
type Metric = telemetry.Metric

// Commands groups the programmatic write handlers exposed alongside the HTTP
// surface. Integrations that embed the module dispatch through these instead
// of going through the JSON API.
type Commands struct {
	CreateComment *engagementcmd.CreateCommentHandler
	Like          *engagementcmd.LikeHandler
	Unlike        *engagementcmd.UnlikeHandler
}

type dependencies struct {
	db             *bun.DB
	contentFS      fs.FS
	cms            content.CMSGateway
	assistant      assistant.Provider
	loggerProvider interfaces.LoggerProvider
	cacheService   cache.CacheService
	keySerializer  cache.KeySerializer
}

// Option overrides a constructed dependency during New.
type Option func(*dependencies)

// WithDB injects the bun connection used for comment and like storage. When
// absent the engagement endpoints degrade per the backend availability rules.
func WithDB(db *bun.DB) Option {
	return func(d *dependencies) {
		d.db = db
	}
}

// WithContentFS mounts the markdown content tree from an arbitrary
// filesystem instead of cfg.Markdown.ContentDir. File watching is disabled
// for injected filesystems.
func WithContentFS(fsys fs.FS) Option {
	return func(d *dependencies) {
		d.contentFS = fsys
	}
}

// WithCMSGateway replaces the hosted CMS client, primarily for tests.
func WithCMSGateway(gateway content.CMSGateway) Option {
	return func(d *dependencies) {
		d.cms = gateway
	}
}

// WithAssistantProvider replaces the language model provider.
func WithAssistantProvider(provider assistant.Provider) Option {
	return func(d *dependencies) {
		d.assistant = provider
	}
}

// WithLoggerProvider replaces the logger provider derived from cfg.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *dependencies) {
		d.loggerProvider = provider
	}
}

// WithCache enables read-through caching on the engagement repositories.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(d *dependencies) {
		d.cacheService = service
		d.keySerializer = serializer
	}
}

// Module is the top level site backend runtime. It owns the content, comment,
// like, assistant and telemetry services and registers the JSON API on a mux.
type Module struct {
	cfg      runtimeconfig.Config
	backends runtimeconfig.Backends
	provider interfaces.LoggerProvider

	store      *markdown.Store
	watchDir   string
	content    *content.Service
	engagement *engagement.Service
	assistant  *assistant.Service
	telemetry  *telemetry.Service
	commands   Commands
}

// New assembles the module from configuration plus injected dependencies.
// Missing backends never fail construction; the matching features degrade at
// request time instead.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &dependencies{}
	for _, opt := range opts {
		opt(deps)
	}

	provider := deps.loggerProvider
	if provider == nil {
		built, err := newLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	m := &Module{
		cfg:      cfg,
		backends: cfg.Backends(),
		provider: provider,
	}
	rootLogger := logging.ModuleLogger(provider, "")

	fsys := deps.contentFS
	if fsys == nil {
		m.watchDir = cfg.Markdown.ContentDir
		fsys = os.DirFS(cfg.Markdown.ContentDir)
	}
	m.store = markdown.NewStore(fsys, markdown.StoreConfig{
		ContentTypes: []string{string(content.TypeUseCase)},
		Pattern:      cfg.Markdown.Pattern,
		Parser: interfaces.ParseOptions{
			Extensions: cfg.Markdown.Parser.Extensions,
			Sanitize:   cfg.Markdown.Parser.Sanitize,
			HardWraps:  cfg.Markdown.Parser.HardWraps,
			SafeMode:   cfg.Markdown.Parser.SafeMode,
		},
	}, logging.MarkdownLogger(provider))
	if err := m.store.Reload(ctx); err != nil {
		rootLogger.Warn("markdown tree unavailable, static content starts empty",
			"dir", cfg.Markdown.ContentDir, "error", err)
	}

	gateway := deps.cms
	if gateway == nil && cfg.CMS.Configured() {
		client, err := cmsclient.New(cfg.CMS, logging.CMSLogger(provider))
		if err != nil {
			return nil, err
		}
		gateway = client
	}

	routeCfg := cfg.Routes.RouteConfig
	if routeCfg == nil && strings.TrimSpace(cfg.Routes.BaseURL) != "" {
		routeCfg = content.DefaultRouteConfig(cfg.Routes.BaseURL)
	}
	var manager *urlkit.RouteManager
	if routeCfg != nil {
		manager = urlkit.NewRouteManager(routeCfg)
	}

	m.content = content.NewService(gateway, m.store, content.NewURLResolver(manager),
		content.ServiceConfig{ListLimit: cfg.Content.ListLimit},
		logging.ContentLogger(provider))

	var commentRepo engagement.CommentRepository
	var likeRepo engagement.LikeRepository
	if deps.db != nil {
		if cfg.Features.Comments {
			if deps.cacheService != nil {
				commentRepo = engagement.NewBunCommentRepositoryWithCache(deps.db, deps.cacheService, deps.keySerializer)
			} else {
				commentRepo = engagement.NewBunCommentRepository(deps.db)
			}
		}
		if cfg.Features.Likes {
			if deps.cacheService != nil {
				likeRepo = engagement.NewBunLikeRepositoryWithCache(deps.db, deps.cacheService, deps.keySerializer)
			} else {
				likeRepo = engagement.NewBunLikeRepository(deps.db)
			}
		}
	}
	engagementLogger := logging.EngagementLogger(provider)
	m.engagement = engagement.NewService(commentRepo, likeRepo, engagementLogger)

	chatProvider := deps.assistant
	if chatProvider == nil && cfg.Features.Assistant && cfg.Assistant.Configured() {
		built, err := assistant.NewGenAIProvider(ctx, cfg.Assistant)
		if err != nil {
			rootLogger.Warn("assistant provider unavailable, chat degrades to canned replies", "error", err)
		} else {
			chatProvider = built
		}
	}
	m.assistant = assistant.NewService(chatProvider,
		assistant.ServiceConfig{Timeout: cfg.Assistant.Timeout},
		logging.AssistantLogger(provider))

	if cfg.Features.Telemetry {
		m.telemetry = telemetry.NewService(cfg.Telemetry.BufferSize, logging.TelemetryLogger(provider))
	}

	m.commands = Commands{
		CreateComment: engagementcmd.NewCreateCommentHandler(m.engagement, engagementLogger),
		Like:          engagementcmd.NewLikeHandler(m.engagement, engagementLogger),
		Unlike:        engagementcmd.NewUnlikeHandler(m.engagement, engagementLogger),
	}

	return m, nil
}

// Config returns the immutable runtime configuration.
func (m *Module) Config() Config {
	return m.cfg
}

// Backends reports which external services were reachable at construction.
func (m *Module) Backends() Backends {
	return m.backends
}

// Content returns the content resolution service.
func (m *Module) Content() ContentService {
	return m.content
}

// Engagement returns the comments and likes service.
func (m *Module) Engagement() EngagementService {
	return m.engagement
}

// Assistant returns the chat assistant service.
func (m *Module) Assistant() AssistantService {
	return m.assistant
}

// Telemetry returns the metric ingestion service, nil when the feature is off.
func (m *Module) Telemetry() TelemetryService {
	return m.telemetry
}

// Markdown returns the static content store.
func (m *Module) Markdown() *markdown.Store {
	return m.store
}

// Commands returns the programmatic write handlers.
func (m *Module) Commands() Commands {
	return m.commands
}

// Register mounts the JSON API on the provided mux.
func (m *Module) Register(mux *http.ServeMux) {
	api := sitehttp.NewAPI(
		sitehttp.WithContentService(m.content),
		sitehttp.WithEngagementService(m.engagement),
		sitehttp.WithAssistantService(m.assistant),
		sitehttp.WithTelemetryService(m.telemetry),
		sitehttp.WithLogger(logging.HTTPLogger(m.provider)),
	)
	api.Register(mux)
}

// Handler returns a standalone handler serving the JSON API.
func (m *Module) Handler() http.Handler {
	mux := http.NewServeMux()
	m.Register(mux)
	return mux
}

// Watch reloads the markdown tree when files change. It blocks until ctx is
// cancelled and returns immediately when watching is disabled or the tree was
// mounted from an injected filesystem.
func (m *Module) Watch(ctx context.Context) error {
	if !m.cfg.Markdown.Watch || m.watchDir == "" {
		return nil
	}
	watcher := markdown.NewWatcher(m.watchDir, m.store, logging.MarkdownLogger(m.provider))
	return watcher.Run(ctx)
}

func newLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		level := console.ParseLevel(cfg.Logging.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	}
}
