package content

import (
	"fmt"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/mekongworks/sitekit/internal/locale"
)

const routeGroup = "site"

// DefaultRouteConfig describes the public URL scheme of the site: every
// content type has one route with locale and slug parameters.
func DefaultRouteConfig(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroup,
				BaseURL: baseURL,
				Paths: map[string]string{
					string(TypeBlog):    "/:locale/blog/:slug",
					string(TypeNews):    "/:locale/news/:slug",
					string(TypeUseCase): "/:locale/use-cases/:slug",
				},
			},
		},
	}
}

// URLResolver builds canonical item URLs from the route manager. Resolution
// failures degrade to an empty URL; a listing without canonical links is
// still a listing.
type URLResolver struct {
	manager *urlkit.RouteManager
}

// NewURLResolver wraps a route manager. A nil manager yields a resolver that
// always returns empty URLs.
func NewURLResolver(manager *urlkit.RouteManager) *URLResolver {
	return &URLResolver{manager: manager}
}

// CanonicalURL returns the public URL for an item in a locale, or an empty
// string when the route cannot be built.
func (r *URLResolver) CanonicalURL(contentType Type, target locale.Locale, slug string) string {
	if r == nil || r.manager == nil || slug == "" {
		return ""
	}
	url, err := r.build(contentType, target, slug)
	if err != nil {
		return ""
	}
	return url
}

func (r *URLResolver) build(contentType Type, target locale.Locale, slug string) (url string, err error) {
	// The route manager panics on unknown groups and routes.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("content: url for %s: %v", contentType, rec)
		}
	}()
	return r.manager.Group(routeGroup).
		Builder(string(contentType)).
		WithParam("locale", string(target)).
		WithParam("slug", slug).
		Build()
}
