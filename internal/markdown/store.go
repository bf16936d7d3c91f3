package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	slug "github.com/goliatone/go-slug"

	"github.com/mekongworks/sitekit/internal/locale"
	"github.com/mekongworks/sitekit/internal/logging"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

// StoreConfig configures the in-memory markdown document store.
type StoreConfig struct {
	// ContentTypes enumerates the directories loaded from the content tree.
	ContentTypes []string
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
	// Parser renders document bodies to HTML at load time.
	Parser interfaces.ParseOptions
}

// Store keeps the parsed static content tree in memory, newest first, with
// slug lookup per content type and locale. Reload swaps the whole snapshot
// atomically so readers never observe a partially loaded tree.
type Store struct {
	loader *Loader
	parser interfaces.MarkdownParser
	logger interfaces.Logger
	types  []string

	mu   sync.RWMutex
	docs map[string]map[string][]*interfaces.Document
}

// NewStore constructs a Store over the provided filesystem. Call Reload to
// populate it.
func NewStore(filesystem fs.FS, cfg StoreConfig, logger interfaces.Logger) *Store {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{
		loader: NewLoader(filesystem, LoaderConfig{Pattern: cfg.Pattern}),
		parser: NewGoldmarkParser(cfg.Parser),
		logger: logger,
		types:  append([]string(nil), cfg.ContentTypes...),
		docs:   map[string]map[string][]*interfaces.Document{},
	}
}

// Reload re-reads every configured content type for every supported locale.
// Files whose checksum matches the previous snapshot keep their already
// rendered document instead of being parsed again. Individual unparseable
// files are skipped with a warning; only filesystem walk failures abort the
// reload, and in that case the previous snapshot stays in place.
func (s *Store) Reload(ctx context.Context) error {
	previous := s.indexByPath()
	snapshot := map[string]map[string][]*interfaces.Document{}

	for _, contentType := range s.types {
		perLocale := map[string][]*interfaces.Document{}
		for _, code := range locale.Codes() {
			results, err := s.loader.LoadTree(ctx, contentType, code)
			if err != nil {
				return fmt.Errorf("markdown store load %s/%s: %w", contentType, code, err)
			}
			docs := make([]*interfaces.Document, 0, len(results))
			for _, result := range results {
				doc := result.Document
				if doc.FrontMatter.Draft {
					continue
				}
				if prior, ok := previous[doc.FilePath]; ok && bytes.Equal(prior.Checksum, doc.Checksum) {
					docs = append(docs, prior)
					continue
				}
				if err := s.finalize(doc); err != nil {
					s.logger.Warn("markdown store: skipping document",
						"path", doc.FilePath, "error", err)
					continue
				}
				docs = append(docs, doc)
			}
			sort.SliceStable(docs, func(i, j int) bool {
				return docs[i].FrontMatter.PublishedAt.After(docs[j].FrontMatter.PublishedAt)
			})
			perLocale[code] = docs
		}
		snapshot[contentType] = perLocale
	}

	s.mu.Lock()
	s.docs = snapshot
	s.mu.Unlock()
	return nil
}

// List returns documents for a content type and locale, newest first. When
// the locale has no documents the default locale's tree is served instead so
// every page has something to render. limit <= 0 means no limit.
func (s *Store) List(contentType, localeCode string, limit int) []*interfaces.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.lookupLocked(contentType, localeCode)
	if len(docs) == 0 && localeCode != string(locale.Default) {
		docs = s.lookupLocked(contentType, string(locale.Default))
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}

	out := make([]*interfaces.Document, len(docs))
	copy(out, docs)
	return out
}

// Get resolves a single document by slug, falling back to the default locale
// when the requested locale has no matching file.
func (s *Store) Get(contentType, localeCode, slugValue string) (*interfaces.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, ok := findBySlug(s.lookupLocked(contentType, localeCode), slugValue); ok {
		return doc, true
	}
	if localeCode != string(locale.Default) {
		return findBySlug(s.lookupLocked(contentType, string(locale.Default)), slugValue)
	}
	return nil, false
}

// indexByPath snapshots the current documents keyed by file path so Reload
// can match re-read files against their previous rendering.
func (s *Store) indexByPath() map[string]*interfaces.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := map[string]*interfaces.Document{}
	for _, perLocale := range s.docs {
		for _, docs := range perLocale {
			for _, doc := range docs {
				index[doc.FilePath] = doc
			}
		}
	}
	return index
}

func (s *Store) lookupLocked(contentType, localeCode string) []*interfaces.Document {
	perLocale, ok := s.docs[contentType]
	if !ok {
		return nil
	}
	return perLocale[localeCode]
}

func findBySlug(docs []*interfaces.Document, slugValue string) (*interfaces.Document, bool) {
	for _, doc := range docs {
		if doc.FrontMatter.Slug == slugValue {
			return doc, true
		}
	}
	return nil, false
}

// finalize normalizes the document slug and renders its HTML body. Documents
// without a usable slug or title are rejected.
func (s *Store) finalize(doc *interfaces.Document) error {
	value := strings.TrimSpace(doc.FrontMatter.Slug)
	if value == "" {
		value = doc.FrontMatter.Title
	}
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		return fmt.Errorf("no usable slug for %s", doc.FilePath)
	}
	doc.FrontMatter.Slug = normalized

	html, err := s.parser.Parse(doc.Body)
	if err != nil {
		return err
	}
	doc.BodyHTML = html
	return nil
}
