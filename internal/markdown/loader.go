package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/mekongworks/sitekit/internal/locale"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

// LoaderConfig configures how Markdown files are discovered within the
// static content tree. The tree is laid out as
// <content type>/<locale>/<file>.md relative to the loader's filesystem root.
type LoaderConfig struct {
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
}

// Loader turns the static content tree into parsed Markdown documents.
type Loader struct {
	fs      fs.FS
	pattern string
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:      filesystem,
		pattern: pattern,
	}
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}

// LoadFile reads and parses a single Markdown document. The locale is derived
// from the path's second segment; paths without a locale segment resolve to
// the default locale.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := path.Clean(strings.TrimPrefix(filePath, "/"))

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, detectLocale(rel), data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	return &DocumentResult{
		Document: doc,
		Source:   data,
	}, nil
}

// LoadTree discovers Markdown files for a content type and locale. Missing
// directories are not an error; they yield an empty result so a content type
// that has no entries for a locale still renders.
func (l *Loader) LoadTree(ctx context.Context, contentType, localeCode string) ([]*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := path.Join(contentType, localeCode)
	if _, err := fs.Stat(l.fs, root); err != nil {
		return nil, nil
	}

	var results []*DocumentResult

	walkErr := fs.WalkDir(l.fs, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if match, matchErr := path.Match(l.pattern, path.Base(p)); matchErr != nil || !match {
			return nil
		}

		result, loadErr := l.LoadFile(ctx, p)
		if loadErr != nil {
			return loadErr
		}
		results = append(results, result)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Document.FilePath < results[j].Document.FilePath
	})

	return results, nil
}

// detectLocale reads the locale from the second path segment
// (<type>/<locale>/file.md). Anything else resolves to the default.
func detectLocale(filePath string) string {
	segments := strings.Split(path.Clean(filePath), "/")
	if len(segments) >= 3 && locale.IsSupported(segments[1]) {
		return string(locale.Resolve(segments[1]))
	}
	return string(locale.Default)
}
