package cmsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mekongworks/sitekit/internal/logging"
	"github.com/mekongworks/sitekit/internal/runtimeconfig"
	"github.com/mekongworks/sitekit/pkg/interfaces"
)

const defaultTimeout = 10 * time.Second

// Document is a validated content document as served by the hosted CMS.
// Localized fields are keyed by locale code.
type Document struct {
	ID          string
	Type        string
	Slug        string
	Title       map[string]string
	Excerpt     map[string]string
	Body        map[string]string
	Author      string
	Categories  []string
	PublishedAt time.Time
}

// Client is a narrow read-only client over the hosted CMS query API. It only
// knows how to list and fetch content documents; query construction lives in
// queries.go.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	schema     *jsonschema.Schema
	logger     interfaces.Logger
}

// New builds a client from the CMS runtime configuration. The caller is
// expected to have checked cfg.Configured() first.
func New(cfg runtimeconfig.CMSConfig, logger interfaces.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.NoOp()
	}
	schema, err := compileDocumentSchema()
	if err != nil {
		return nil, fmt.Errorf("cms client: compile document schema: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   queryEndpoint(cfg),
		token:      strings.TrimSpace(cfg.Token),
		schema:     schema,
		logger:     logger,
	}, nil
}

// queryEndpoint derives the query URL from configuration. BaseURL, when set,
// overrides the hosted default and makes the client testable against a local
// server.
func queryEndpoint(cfg runtimeconfig.CMSConfig) string {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		host := "api.sanity.io"
		if cfg.UseCDN {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", cfg.ProjectID, host)
	}
	version := strings.TrimSpace(cfg.APIVersion)
	if version == "" {
		version = "v2023-05-03"
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return fmt.Sprintf("%s/%s/data/query/%s", base, version, cfg.Dataset)
}

// ListDocuments returns published documents of a type, newest first. Documents
// that fail schema validation are skipped with a warning rather than failing
// the whole listing.
func (c *Client) ListDocuments(ctx context.Context, docType string, limit int) ([]*Document, error) {
	result, err := c.query(ctx, listQuery(limit), map[string]any{"type": docType})
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("cms client: decode listing: %w", err)
	}

	docs := make([]*Document, 0, len(raw))
	for _, entry := range raw {
		doc, err := c.decodeDocument(entry)
		if err != nil {
			c.logger.Warn("cms client: skipping invalid document",
				"type", docType, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// GetDocument fetches a single document by slug. A missing document is
// (nil, nil); callers translate that into their own not-found error.
func (c *Client) GetDocument(ctx context.Context, docType, slug string) (*Document, error) {
	result, err := c.query(ctx, getQuery(), map[string]any{"type": docType, "slug": slug})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, nil
	}
	doc, err := c.decodeDocument(result)
	if err != nil {
		c.logger.Warn("cms client: invalid document",
			"type", docType, "slug", slug, "error", err)
		return nil, nil
	}
	return doc, nil
}

func (c *Client) query(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	encoded, err := encodeQuery(query, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+encoded, nil)
	if err != nil {
		return nil, fmt.Errorf("cms client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms client: query: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("cms client: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cms client: query returned %d", resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("cms client: decode envelope: %w", err)
	}
	return envelope.Result, nil
}

// decodeDocument validates a raw document against the content schema and
// decodes it into a Document.
func (c *Client) decodeDocument(raw json.RawMessage) (*Document, error) {
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, err
	}
	if err := c.schema.Validate(instance); err != nil {
		return nil, err
	}

	var payload struct {
		ID          string            `json:"_id"`
		Type        string            `json:"_type"`
		Slug        string            `json:"slug"`
		Title       map[string]string `json:"title"`
		Excerpt     map[string]string `json:"excerpt"`
		Body        map[string]string `json:"body"`
		Author      string            `json:"author"`
		Categories  []string          `json:"categories"`
		PublishedAt string            `json:"publishedAt"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	doc := &Document{
		ID:         payload.ID,
		Type:       payload.Type,
		Slug:       payload.Slug,
		Title:      payload.Title,
		Excerpt:    payload.Excerpt,
		Body:       payload.Body,
		Author:     payload.Author,
		Categories: payload.Categories,
	}
	if payload.PublishedAt != "" {
		ts, err := time.Parse(time.RFC3339, payload.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("parse publishedAt: %w", err)
		}
		doc.PublishedAt = ts
	}
	return doc, nil
}
