package http

import (
	"net/http"
	"net/url"

	"github.com/mekongworks/sitekit/internal/content"
	"github.com/mekongworks/sitekit/internal/locale"
)

// Listing endpoints answer 200 with an empty collection when their backend
// is unconfigured or failing; only detail lookups answer 404.

func (api *API) registerContentRoutes(mux *http.ServeMux, base string) {
	routes := map[string]content.Type{
		"blog":      content.TypeBlog,
		"posts":     content.TypeBlog,
		"news":      content.TypeNews,
		"use-cases": content.TypeUseCase,
	}
	for path, contentType := range routes {
		root := joinPath(base, path)
		mux.HandleFunc("GET "+root, api.handleContentList(contentType))
		mux.HandleFunc("GET "+root+"/{slug}", api.handleContentGet(contentType))
	}
}

func (api *API) handleContentList(contentType content.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.content == nil {
			writeJSON(w, http.StatusOK, map[string]any{"items": []any{}})
			return
		}
		target := requestLocale(r)
		limit := parseLimitQuery(r.URL.Query().Get("limit"))

		items := api.content.List(r.Context(), contentType, target, limit)
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func (api *API) handleContentGet(contentType content.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.content == nil {
			writeError(w, &content.NotFoundError{Type: contentType, Slug: r.PathValue("slug")})
			return
		}
		target := requestLocale(r)

		item, err := api.content.Get(r.Context(), contentType, target, r.PathValue("slug"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"item": item})
	}
}

// requestLocale resolves the locale for an API request. API paths carry no
// locale segment, so the explicit query parameter wins; without one the
// first path segment of the referring page decides, matching the site's
// /{locale}/... URL scheme.
func requestLocale(r *http.Request) locale.Locale {
	if code := r.URL.Query().Get("locale"); code != "" {
		return locale.Resolve(code)
	}
	if referer := r.Referer(); referer != "" {
		if parsed, err := url.Parse(referer); err == nil {
			return locale.ResolvePath(parsed.Path)
		}
	}
	return locale.Default
}
