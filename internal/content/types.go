package content

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mekongworks/sitekit/internal/locale"
)

// Type identifies a content collection. Blog and news entries are authored
// in the hosted CMS; use cases live in the static markdown tree.
type Type string

const (
	TypeBlog    Type = "blog"
	TypeNews    Type = "news"
	TypeUseCase Type = "usecase"
)

// Types returns every known content type.
func Types() []Type {
	return []Type{TypeBlog, TypeNews, TypeUseCase}
}

// ParseType resolves user-facing type names, including the URL spelling of
// use cases.
func ParseType(value string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "blog", "post", "posts":
		return TypeBlog, true
	case "news":
		return TypeNews, true
	case "usecase", "use-case", "use-cases", "usecases":
		return TypeUseCase, true
	default:
		return "", false
	}
}

// LocalizedField holds one text field in every locale it has been authored
// in. Missing locales are simply absent keys.
type LocalizedField map[locale.Locale]string

// Resolve picks the best value for a target locale: the target itself, then
// the default locale, then the empty string. It never fails; an untranslated
// field renders as empty, not as an error.
func (f LocalizedField) Resolve(target locale.Locale) string {
	if f == nil {
		return ""
	}
	if value, ok := f[target]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	if value, ok := f[locale.Default]; ok {
		return value
	}
	return ""
}

// Set records a value under a locale, allocating the map on first use.
func (f *LocalizedField) Set(target locale.Locale, value string) {
	if *f == nil {
		*f = LocalizedField{}
	}
	(*f)[target] = value
}

// ContentItem is the source-independent shape of a blog post, news article
// or use case. Items are authored externally and read-only here.
type ContentItem struct {
	Type        Type
	Slug        string
	Author      string
	Categories  []string
	PublishedAt time.Time
	Title       LocalizedField
	Excerpt     LocalizedField
	Body        LocalizedField
}

// ItemView is a ContentItem resolved for one locale, ready to serialize.
// ID is derived from type, locale and slug, so the same item keeps the same
// identifier across reloads and sources. Categories is always non-nil so
// clients never see null where a list is expected.
type ItemView struct {
	ID          uuid.UUID     `json:"id"`
	Type        Type          `json:"type"`
	Slug        string        `json:"slug"`
	Locale      locale.Locale `json:"locale"`
	Title       string        `json:"title"`
	Excerpt     string        `json:"excerpt,omitempty"`
	Body        string        `json:"body,omitempty"`
	Author      string        `json:"author,omitempty"`
	Categories  []string      `json:"categories"`
	PublishedAt time.Time     `json:"publishedAt"`
	URL         string        `json:"url,omitempty"`
}
