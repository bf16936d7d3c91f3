package cmsclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mekongworks/sitekit/internal/runtimeconfig"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(runtimeconfig.CMSConfig{
		ProjectID:  "testproject",
		Dataset:    "production",
		APIVersion: "v2023-05-03",
		Token:      "secret-token",
		BaseURL:    server.URL,
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestListDocuments(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": [
			{"_id": "a1", "_type": "post", "slug": "first",
			 "title": {"en": "First", "vi": "Đầu tiên"},
			 "author": "Lan Pham", "categories": ["eng"],
			 "publishedAt": "2024-05-01T00:00:00Z"},
			{"_id": "b2", "_type": "post",
			 "title": {"en": "Broken, no slug"}},
			{"_id": "c3", "_type": "post", "slug": "second",
			 "title": {"en": "Second"},
			 "publishedAt": "2024-04-01T00:00:00Z"}
		]}`))
	})

	docs, err := client.ListDocuments(context.Background(), "post", 10)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected invalid document skipped, got %d documents", len(docs))
	}
	if docs[0].Slug != "first" || docs[1].Slug != "second" {
		t.Fatalf("unexpected documents: %q, %q", docs[0].Slug, docs[1].Slug)
	}
	if docs[0].Title["vi"] != "Đầu tiên" {
		t.Fatalf("localized title lost: %v", docs[0].Title)
	}
	if want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC); !docs[0].PublishedAt.Equal(want) {
		t.Fatalf("unexpected publishedAt: %v", docs[0].PublishedAt)
	}

	if gotPath != "/v2023-05-03/data/query/production" {
		t.Fatalf("unexpected query path %q", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
	if !strings.Contains(gotQuery, `_type == $type`) || !strings.Contains(gotQuery, "[0...10]") {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestGetDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("$slug") != `"first"` {
			w.Write([]byte(`{"result": null}`))
			return
		}
		w.Write([]byte(`{"result":
			{"_id": "a1", "_type": "post", "slug": "first",
			 "title": {"en": "First"},
			 "body": {"en": "Hello", "ja": "こんにちは"}}}`))
	})

	doc, err := client.GetDocument(context.Background(), "post", "first")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc == nil || doc.Body["ja"] != "こんにちは" {
		t.Fatalf("unexpected document: %+v", doc)
	}

	missing, err := client.GetDocument(context.Background(), "post", "nope")
	if err != nil {
		t.Fatalf("GetDocument missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing document, got %+v", missing)
	}
}

func TestQueryErrorStatuses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.ListDocuments(context.Background(), "post", 0); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestQueryEndpointDefaults(t *testing.T) {
	got := queryEndpoint(runtimeconfig.CMSConfig{
		ProjectID: "abc123",
		Dataset:   "production",
		UseCDN:    true,
	})
	want := "https://abc123.apicdn.sanity.io/v2023-05-03/data/query/production"
	if got != want {
		t.Fatalf("queryEndpoint() = %q, want %q", got, want)
	}

	got = queryEndpoint(runtimeconfig.CMSConfig{
		ProjectID:  "abc123",
		Dataset:    "staging",
		APIVersion: "2024-01-01",
	})
	if !strings.Contains(got, "api.sanity.io/v2024-01-01/data/query/staging") {
		t.Fatalf("queryEndpoint() = %q", got)
	}
}
