package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/steveyiyo/speechcoach-backend/pkg/types"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Analyzer runs one coaching analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req types.AnalyzeReq) (*types.Analysis, error)
}

type AnalyzeHandler struct {
	Analyzer   Analyzer
	Configured bool
}

func NewAnalyzeHandler(a Analyzer, configured bool) *AnalyzeHandler {
	return &AnalyzeHandler{Analyzer: a, Configured: configured}
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	if !h.Configured {
		log.Printf("[analyze] rejected: GEMINI_API_KEY not configured")
		c.JSON(http.StatusInternalServerError, errNotConfigured)
		return
	}

	var req types.AnalyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		status, resp := bindError(err)
		c.JSON(status, resp)
		return
	}

	log.Printf("[analyze] request %s: mimeType=%q videoData=%d bytes", c.GetString(RequestIDKey), req.MimeType, len(req.VideoData))
	res, err := h.Analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		status, resp := errorResponse(err)
		log.Printf("[analyze] request %s failed with %d: %v", c.GetString(RequestIDKey), status, err)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, res)
}

func bindError(err error) (int, types.ErrorResp) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return http.StatusBadRequest, types.ErrorResp{Error: "No video data provided"}
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, types.ErrorResp{Error: "Request body too large", Details: tooLarge.Error()}
	}
	return http.StatusBadRequest, types.ErrorResp{Error: "Invalid JSON body", Details: err.Error()}
}
