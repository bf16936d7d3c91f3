package content

import (
	"context"

	"github.com/mekongworks/sitekit/internal/cmsclient"
	"github.com/mekongworks/sitekit/internal/locale"
	"github.com/mekongworks/sitekit/internal/logging"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

const defaultListLimit = 10

// CMSGateway is the narrow view of the CMS client the service needs.
type CMSGateway interface {
	ListDocuments(ctx context.Context, docType string, limit int) ([]*cmsclient.Document, error)
	GetDocument(ctx context.Context, docType, slug string) (*cmsclient.Document, error)
}

// StaticStore is the markdown store contract: an in-memory snapshot of the
// static content tree.
type StaticStore interface {
	List(contentType, localeCode string, limit int) []*interfaces.Document
	Get(contentType, localeCode, slugValue string) (*interfaces.Document, bool)
}

// ServiceConfig tunes the content service.
type ServiceConfig struct {
	// ListLimit caps listings when the caller does not pass a limit.
	ListLimit int
}

// Service resolves content items from their canonical source. Blog and news
// come from the CMS; use cases come from the markdown tree. Reads are
// fail-soft: an unreachable or unconfigured CMS produces empty listings and
// not-found lookups, never an error on the request path.
type Service struct {
	cms    CMSGateway
	static StaticStore
	urls   *URLResolver
	limit  int
	logger interfaces.Logger
}

// NewService wires the content service. cms may be nil when the CMS backend
// is unconfigured; static may be nil when no markdown tree is mounted.
func NewService(cms CMSGateway, static StaticStore, urls *URLResolver, cfg ServiceConfig, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	limit := cfg.ListLimit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return &Service{
		cms:    cms,
		static: static,
		urls:   urls,
		limit:  limit,
		logger: logger,
	}
}

// List returns item summaries for a content type in a locale, newest first.
// It never returns an error: failures are logged and degrade to an empty,
// non-nil slice. limit <= 0 applies the configured default.
func (s *Service) List(ctx context.Context, contentType Type, target locale.Locale, limit int) []ItemView {
	if limit <= 0 {
		limit = s.limit
	}

	items := []ItemView{}
	switch contentType {
	case TypeBlog, TypeNews:
		if s.cms == nil {
			s.logger.Debug("content list: cms unconfigured", "type", contentType)
			return items
		}
		docs, err := s.cms.ListDocuments(ctx, cmsDocType(contentType), limit)
		if err != nil {
			s.logger.Error("content list: cms query failed",
				"type", contentType, "locale", target, "error", err)
			return items
		}
		for _, doc := range docs {
			items = append(items, s.view(ItemFromCMSDocument(doc, contentType), target))
		}
	case TypeUseCase:
		if s.static == nil {
			return items
		}
		for _, doc := range s.static.List(string(contentType), string(target), limit) {
			items = append(items, s.view(ItemFromMarkdownDocument(doc, contentType), target))
		}
	default:
		s.logger.Warn("content list: unknown type", "type", contentType)
	}
	return items
}

// Get resolves one item by slug. Missing items, an unconfigured CMS backend
// and upstream read failures all surface as NotFoundError so handlers answer
// 404 rather than leaking backend state.
func (s *Service) Get(ctx context.Context, contentType Type, target locale.Locale, slug string) (ItemView, error) {
	notFound := &NotFoundError{Type: contentType, Slug: slug, Locale: string(target)}

	switch contentType {
	case TypeBlog, TypeNews:
		if s.cms == nil {
			return ItemView{}, notFound
		}
		doc, err := s.cms.GetDocument(ctx, cmsDocType(contentType), slug)
		if err != nil {
			s.logger.Error("content get: cms query failed",
				"type", contentType, "slug", slug, "error", err)
			return ItemView{}, notFound
		}
		if doc == nil {
			return ItemView{}, notFound
		}
		return s.view(ItemFromCMSDocument(doc, contentType), target), nil
	case TypeUseCase:
		if s.static == nil {
			return ItemView{}, notFound
		}
		doc, ok := s.static.Get(string(contentType), string(target), slug)
		if !ok {
			return ItemView{}, notFound
		}
		return s.view(ItemFromMarkdownDocument(doc, contentType), target), nil
	default:
		return ItemView{}, ErrTypeUnknown
	}
}

func (s *Service) view(item *ContentItem, target locale.Locale) ItemView {
	view := ResolveView(item, target)
	view.URL = s.urls.CanonicalURL(item.Type, target, item.Slug)
	return view
}

// cmsDocType maps a site content type onto the CMS document type naming.
func cmsDocType(contentType Type) string {
	if contentType == TypeBlog {
		return "post"
	}
	return string(contentType)
}
