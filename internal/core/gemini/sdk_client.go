package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// SDKClient is the genai-backed transport. The key travels in a header
// instead of the query string.
type SDKClient struct {
	c     *genai.Client
	model string
}

func NewSDK(ctx context.Context, apiKey string, opts Options) (*SDKClient, error) {
	httpOpts := genai.HTTPOptions{APIVersion: "v1beta"}
	if opts.BaseURL != "" {
		httpOpts.BaseURL = opts.BaseURL
	}
	if opts.Timeout > 0 {
		t := opts.Timeout
		httpOpts.Timeout = &t
	}
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  newHTTPClient(opts.Timeout),
		HTTPOptions: httpOpts,
	})
	if err != nil {
		return nil, err
	}
	return &SDKClient{c: cl, model: opts.Model}, nil
}

func (g *SDKClient) Generate(ctx context.Context, prompt string, media Media) (string, error) {
	data, err := base64.StdEncoding.DecodeString(media.Data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMedia, err)
	}
	parts := []*genai.Part{
		{Text: prompt},
		{InlineData: &genai.Blob{Data: data, MIMEType: media.MimeType}},
	}

	temp := float32(DefaultTemperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}

	resp, err := g.c.Models.GenerateContent(ctx, g.model, []*genai.Content{{Parts: parts}}, cfg)
	if err != nil {
		return "", mapSDKError(err)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrNoOutput
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return "", ErrNoOutput
	}
	return cand.Content.Parts[0].Text, nil
}

func mapSDKError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Code: apiErr.Code, Details: apiErrorBody(apiErr)}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &StatusError{Code: apiErrPtr.Code, Details: apiErrorBody(*apiErrPtr)}
	}
	return fmt.Errorf("call gemini: %w", err)
}

// apiErrorBody rebuilds the REST error body so both transports report the
// same details shape.
func apiErrorBody(e genai.APIError) map[string]interface{} {
	inner := map[string]interface{}{
		"code":    e.Code,
		"message": e.Message,
		"status":  e.Status,
	}
	if len(e.Details) > 0 {
		inner["details"] = e.Details
	}
	return map[string]interface{}{"error": inner}
}
