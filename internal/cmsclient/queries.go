package cmsclient

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// All query-string construction for the hosted CMS lives in this file. The
// query language is an external protocol; callers only see ListDocuments and
// GetDocument, so swapping the CMS means rewriting these builders and nothing
// else.

// projectedFields is the field projection shared by every query. Localized
// fields come back as objects keyed by locale code.
const projectedFields = `_id, _type, "slug": slug.current, title, excerpt, body, author, categories, publishedAt`

// listQuery selects published documents of a type, newest first, optionally
// capped. The document type is bound as a parameter, never interpolated.
func listQuery(limit int) string {
	var b strings.Builder
	b.WriteString(`*[_type == $type && !(_id in path("drafts.**"))]`)
	b.WriteString(` | order(publishedAt desc)`)
	if limit > 0 {
		fmt.Fprintf(&b, `[0...%d]`, limit)
	}
	fmt.Fprintf(&b, `{%s}`, projectedFields)
	return b.String()
}

// getQuery selects a single document of a type by slug.
func getQuery() string {
	return fmt.Sprintf(
		`*[_type == $type && slug.current == $slug && !(_id in path("drafts.**"))][0]{%s}`,
		projectedFields)
}

// encodeQuery builds the request query string. Parameters are JSON-encoded
// and passed with a leading "$", which is how the CMS query endpoint expects
// them.
func encodeQuery(query string, params map[string]any) (string, error) {
	values := url.Values{}
	values.Set("query", query)

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		encoded, err := json.Marshal(params[name])
		if err != nil {
			return "", fmt.Errorf("encode query param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}
	return values.Encode(), nil
}
