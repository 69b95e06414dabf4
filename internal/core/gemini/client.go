package gemini

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 2048
)

// Media is one inline attachment, Data being base64 as received from the
// browser.
type Media struct {
	MimeType string
	Data     string
}

type Options struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client talks to the generateContent REST endpoint directly, passing the
// key as a query parameter.
type Client struct {
	hc      *http.Client
	apiKey  string
	baseURL string
	model   string
}

func New(apiKey string, opts Options) *Client {
	return &Client{
		hc:      newHTTPClient(opts.Timeout),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		model:   opts.Model,
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		TLSClientConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
		ForceAttemptHTTP2: false,
		MaxIdleConns:      100,
		IdleConnTimeout:   90 * time.Second,
	}
	return &http.Client{Transport: tr, Timeout: timeout}
}

func (g *Client) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))
}

// Generate makes exactly one call and returns the first candidate's first
// text part.
func (g *Client) Generate(ctx context.Context, prompt string, media Media) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{
			{Text: prompt},
			{InlineData: &inlineData{MimeType: media.MimeType, Data: media.Data}},
		}}},
		GenerationConfig: generationConfig{
			Temperature:     DefaultTemperature,
			MaxOutputTokens: DefaultMaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.hc.Do(req)
	if err != nil {
		// url.Error carries the key-bearing URL; keep only the cause.
		var ue *url.Error
		if errors.As(err, &ue) {
			return "", fmt.Errorf("call gemini: %w", ue.Err)
		}
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Details: errorDetails(raw)}
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoOutput
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func errorDetails(raw []byte) interface{} {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]interface{}{}
	}
	var v interface{}
	if json.Unmarshal(raw, &v) == nil {
		return v
	}
	return string(raw)
}
