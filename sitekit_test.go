package sitekit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/mekongworks/sitekit/internal/cmsclient"
	"github.com/mekongworks/sitekit/internal/content"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

type nilLoggerProvider struct{}

func (nilLoggerProvider) GetLogger(string) interfaces.Logger { return nil }

type stubGateway struct {
	docs []*cmsclient.Document
}

func (s *stubGateway) ListDocuments(_ context.Context, docType string, _ int) ([]*cmsclient.Document, error) {
	out := []*cmsclient.Document{}
	for _, doc := range s.docs {
		if doc.Type == docType {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *stubGateway) GetDocument(_ context.Context, docType, slug string) (*cmsclient.Document, error) {
	for _, doc := range s.docs {
		if doc.Type == docType && doc.Slug == slug {
			return doc, nil
		}
	}
	return nil, nil
}

func testContentFS() fstest.MapFS {
	page := `---
title: Fleet Tracking
slug: fleet-tracking
publishedAt: 2024-06-01T00:00:00Z
---

GPS units across 400 trucks.
`
	return fstest.MapFS{
		"usecase/en/fleet-tracking.md": &fstest.MapFile{Data: []byte(page)},
	}
}

func newTestModule(t *testing.T, opts ...Option) *Module {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Routes.BaseURL = "https://example.com"

	opts = append([]Option{
		WithLoggerProvider(nilLoggerProvider{}),
		WithContentFS(testContentFS()),
	}, opts...)

	module, err := New(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLocale = "fr"

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected validation error for unsupported default locale")
	}
}

func TestModuleServesStaticContent(t *testing.T) {
	module := newTestModule(t)

	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/use-cases", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Items []ContentItemView `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(body.Items))
	}
	if body.Items[0].Slug != "fleet-tracking" {
		t.Fatalf("slug = %q, want fleet-tracking", body.Items[0].Slug)
	}
	if body.Items[0].URL != "https://example.com/en/use-cases/fleet-tracking" {
		t.Fatalf("url = %q", body.Items[0].URL)
	}
}

func TestModuleUsesInjectedCMSGateway(t *testing.T) {
	gateway := &stubGateway{docs: []*cmsclient.Document{{
		ID:          "doc-1",
		Type:        "post",
		Slug:        "launch",
		Title:       map[string]string{"en": "Launch"},
		PublishedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}}}
	module := newTestModule(t, WithCMSGateway(gateway))

	view, err := module.Content().Get(context.Background(), content.TypeBlog, "en", "launch")
	if err != nil {
		t.Fatalf("get blog item: %v", err)
	}
	if view.Title != "Launch" {
		t.Fatalf("title = %q, want Launch", view.Title)
	}
}

func TestModuleDegradesWithoutBackends(t *testing.T) {
	module := newTestModule(t)

	backends := module.Backends()
	if backends.CMS || backends.Datastore || backends.Assistant {
		t.Fatalf("backends = %+v, want all false", backends)
	}

	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/blog", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("blog status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("blog body = %s, want empty items", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ai-chat",
		strings.NewReader(`{"message":"hello"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("chat status = %d, want %d", rec.Code, http.StatusOK)
	}
	var chat struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &chat); err != nil {
		t.Fatalf("decode chat body: %v", err)
	}
	if chat.Reply == "" {
		t.Fatal("chat reply must never be empty")
	}
}

func TestModuleCommandsRejectWritesWithoutDatastore(t *testing.T) {
	module := newTestModule(t)

	cmds := module.Commands()
	if cmds.CreateComment == nil || cmds.Like == nil || cmds.Unlike == nil {
		t.Fatal("command handlers must always be wired")
	}
}
