// Package suggest asks a Gemini model to classify a note body into a
// category, three tags and a priority.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/nova/pkg/errs"
	"tableflip.dev/nova/pkg/note"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-1.5-flash"
	DefaultTimeout  = 20 * time.Second

	roleUser = "user"
)

// Suggester returns a suggestion for content, or nil when there is nothing
// to suggest.
type Suggester interface {
	Suggest(ctx context.Context, content string) (*note.Suggestion, error)
}

type Config struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// Client calls the generateContent REST endpoint.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

var _ Suggester = (*Client)(nil)

// ErrEmptyResponse is returned when the model answers without a candidate.
var ErrEmptyResponse = errors.New("suggest: empty response")

func New(cfg Config, log *zap.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.With(zap.String("module", "suggest")),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.cfg.APIKey != "" }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]schema `json:"properties,omitempty"`
	Items       *schema           `json:"items,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema"`
}

type request struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content *content `json:"content"`
}

type response struct {
	Candidates []candidate `json:"candidates"`
}

var suggestionSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]schema{
		"category":           {Type: "STRING"},
		"tags":               {Type: "ARRAY", Items: &schema{Type: "STRING"}},
		"prioritySuggestion": {Type: "STRING", Description: "One of: High, Medium, Low, Someday"},
	},
	Required: []string{"category", "tags", "prioritySuggestion"},
}

// Prompt is the instruction sent with the note body.
func Prompt(body string) string {
	return fmt.Sprintf("Suggest a category and 3 tags for the following note: %q", body)
}

// Suggest returns nil without calling out when content is blank or no key
// is configured. Transport, status and decode failures are external errors.
func (c *Client) Suggest(ctx context.Context, body string) (*note.Suggestion, error) {
	if strings.TrimSpace(body) == "" || !c.Enabled() {
		return nil, nil
	}

	payload, err := json.Marshal(request{
		Contents: []content{{Parts: []part{{Text: Prompt(body)}}, Role: roleUser}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   suggestionSchema,
		},
	})
	if err != nil {
		return nil, errs.External("suggest", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errs.External("suggest", err)
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.Error(err))
		return nil, errs.External("suggest", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errs.External("suggest", err)
	}
	if res.StatusCode != http.StatusOK {
		c.log.Warn("unexpected status", zap.Int("status", res.StatusCode))
		return nil, errs.External("suggest", fmt.Errorf("status %d: %s", res.StatusCode, strings.TrimSpace(string(resBody))))
	}

	var out response
	if err := json.Unmarshal(resBody, &out); err != nil {
		return nil, errs.External("suggest", err)
	}
	if len(out.Candidates) == 0 || out.Candidates[0].Content == nil || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, errs.External("suggest", ErrEmptyResponse)
	}

	s, err := Decode(out.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, errs.External("suggest", err)
	}
	return s, nil
}

// Decode parses the model's JSON answer, tolerating a markdown code fence.
func Decode(text string) (*note.Suggestion, error) {
	b := bytes.TrimSpace([]byte(text))
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	b = bytes.TrimSpace(b)

	var s note.Suggestion
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse suggestion: %w", err)
	}
	return &s, nil
}
