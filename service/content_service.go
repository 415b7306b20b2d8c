package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrContentNotFound is returned when the site config has no such page
var ErrContentNotFound = errors.New("content not found")

// SiteConfigSource is the read side of the site config loader
type SiteConfigSource interface {
	Config() (json.RawMessage, bool)
}

// ContentService renders the Markdown pages stored in the site config
type ContentService struct {
	config   SiteConfigSource
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewContentService creates a new ContentService
func NewContentService(config SiteConfigSource) *ContentService {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)

	return &ContentService{
		config: config,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: policy,
	}
}

// Page is a rendered content page
type Page struct {
	Key  string        `json:"clave"`
	HTML template.HTML `json:"html"`
}

// RenderPage renders the Markdown stored under "paginas.<key>" in the site
// config as sanitized HTML
func (s *ContentService) RenderPage(key string) (*Page, error) {
	raw, ok := s.config.Config()
	if !ok {
		return nil, ErrContentNotFound
	}

	var cfg struct {
		Pages map[string]string `json:"paginas"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode site config pages: %w", err)
	}

	source, ok := cfg.Pages[key]
	if !ok {
		return nil, ErrContentNotFound
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		return nil, fmt.Errorf("failed to render page %s: %w", key, err)
	}

	return &Page{Key: key, HTML: template.HTML(s.policy.SanitizeBytes(buf.Bytes()))}, nil
}
