package content

import (
	"github.com/mekongworks/sitekit/internal/cmsclient"
	"github.com/mekongworks/sitekit/internal/identity"
	"github.com/mekongworks/sitekit/internal/locale"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

// ItemFromCMSDocument maps a validated CMS document onto a ContentItem.
// Localized field keys the CMS reports but the site does not serve are
// dropped rather than carried around.
func ItemFromCMSDocument(doc *cmsclient.Document, contentType Type) *ContentItem {
	if doc == nil {
		return nil
	}
	item := &ContentItem{
		Type:        contentType,
		Slug:        doc.Slug,
		Author:      doc.Author,
		Categories:  append([]string(nil), doc.Categories...),
		PublishedAt: doc.PublishedAt,
	}
	copyLocalized(&item.Title, doc.Title)
	copyLocalized(&item.Excerpt, doc.Excerpt)
	copyLocalized(&item.Body, doc.Body)
	return item
}

// ItemFromMarkdownDocument maps a parsed markdown document onto a
// ContentItem. A markdown file carries exactly one locale; the field maps
// are keyed by that locale and the resolver's fallback covers the rest.
func ItemFromMarkdownDocument(doc *interfaces.Document, contentType Type) *ContentItem {
	if doc == nil {
		return nil
	}
	code := locale.Resolve(doc.Locale)
	item := &ContentItem{
		Type:        contentType,
		Slug:        doc.FrontMatter.Slug,
		Author:      doc.FrontMatter.Author,
		Categories:  append([]string(nil), doc.FrontMatter.Categories...),
		PublishedAt: doc.FrontMatter.PublishedAt,
	}
	item.Title.Set(code, doc.FrontMatter.Title)
	item.Excerpt.Set(code, doc.FrontMatter.Excerpt)
	item.Body.Set(code, string(doc.BodyHTML))
	return item
}

// ResolveView flattens a ContentItem into the requested locale. Every
// localized field falls back independently, so a half-translated item renders
// with a translated title and a default-locale body rather than failing.
func ResolveView(item *ContentItem, target locale.Locale) ItemView {
	view := ItemView{
		ID:          identity.DocumentUUID(string(item.Type), string(target), item.Slug),
		Type:        item.Type,
		Slug:        item.Slug,
		Locale:      target,
		Title:       item.Title.Resolve(target),
		Excerpt:     item.Excerpt.Resolve(target),
		Body:        item.Body.Resolve(target),
		Author:      item.Author,
		Categories:  item.Categories,
		PublishedAt: item.PublishedAt,
	}
	if view.Categories == nil {
		view.Categories = []string{}
	}
	return view
}

func copyLocalized(field *LocalizedField, values map[string]string) {
	for code, value := range values {
		if !locale.IsSupported(code) {
			continue
		}
		field.Set(locale.Locale(code), value)
	}
}
