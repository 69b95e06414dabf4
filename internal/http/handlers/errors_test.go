package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/steveyiyo/speechcoach-backend/internal/core/gemini"
	"github.com/steveyiyo/speechcoach-backend/pkg/types"
)

func TestErrorResponse(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"passthrough", &gemini.StatusError{Code: 429, Details: map[string]interface{}{}}, 429, "Gemini API error: 429"},
		{"wrapped passthrough", fmt.Errorf("x: %w", &gemini.StatusError{Code: 503}), 503, "Gemini API error: 503"},
		{"odd remote status", &gemini.StatusError{Code: 0}, http.StatusBadGateway, "Gemini API error: 0"},
		{"redirect remote status", &gemini.StatusError{Code: 302}, http.StatusBadGateway, "Gemini API error: 302"},
		{"success remote status", &gemini.StatusError{Code: 200}, http.StatusBadGateway, "Gemini API error: 200"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "Request timeout - video may be too long"},
		{"no output", gemini.ErrNoOutput, http.StatusInternalServerError, "AI returned no output"},
		{"bad media", fmt.Errorf("%w: illegal base64", gemini.ErrInvalidMedia), http.StatusBadRequest, "Invalid video data"},
		{"transport", errors.New("dial tcp: no such host"), http.StatusInternalServerError, "AI analysis failed"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, resp := errorResponse(c.err)
			if status != c.status || resp.Error != c.msg {
				t.Fatalf("errorResponse(%v) = %d %q; want %d %q", c.err, status, resp.Error, c.status, c.msg)
			}
		})
	}
}

type stubAnalyzer struct {
	res *types.Analysis
	err error
	got types.AnalyzeReq
}

func (s *stubAnalyzer) Analyze(ctx context.Context, req types.AnalyzeReq) (*types.Analysis, error) {
	s.got = req
	return s.res, s.err
}

func TestAnalyzeHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubAnalyzer{res: &types.Analysis{Score: 64, Strengths: []string{}, Improvements: []string{}}}
	r := gin.New()
	r.POST("/api/analyze", NewAnalyzeHandler(stub, true).Analyze)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"videoData":"QUJD","mimeType":"audio/mp4"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"score":64`) {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	if stub.got.VideoData != "QUJD" || stub.got.MimeType != "audio/mp4" {
		t.Fatalf("analyzer got %+v", stub.got)
	}

	stub.err = context.DeadlineExceeded
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"videoData":"QUJD"}`)))
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d; want 504", w.Code)
	}
}
