package handlers

import (
	"errors"
	"net/http"

	"github.com/steveyiyo/speechcoach-backend/internal/core/gemini"
	"github.com/steveyiyo/speechcoach-backend/pkg/types"
)

var errNotConfigured = types.ErrorResp{
	Error:   "API key not configured",
	Details: "Please set GEMINI_API_KEY environment variable",
}

// errorResponse maps an analysis failure to the status and envelope the
// client sees. A remote status is passed through when it is an error status;
// anything outside 400-599 (a 2xx with a failure body, a redirect, a zero
// code) would read as success or be meaningless to the client, so it is
// reported as 502 with the remote details kept in the envelope.
func errorResponse(err error) (int, types.ErrorResp) {
	var se *gemini.StatusError
	switch {
	case errors.As(err, &se):
		code := se.Code
		if code < 400 || code > 599 {
			code = http.StatusBadGateway
		}
		return code, types.ErrorResp{Error: se.Error(), Details: se.Details}
	case gemini.IsTimeout(err):
		return http.StatusGatewayTimeout, types.ErrorResp{Error: "Request timeout - video may be too long"}
	case errors.Is(err, gemini.ErrNoOutput):
		return http.StatusInternalServerError, types.ErrorResp{Error: gemini.ErrNoOutput.Error()}
	case errors.Is(err, gemini.ErrInvalidMedia):
		return http.StatusBadRequest, types.ErrorResp{Error: "Invalid video data", Details: err.Error()}
	default:
		return http.StatusInternalServerError, types.ErrorResp{Error: "AI analysis failed", Details: err.Error()}
	}
}
