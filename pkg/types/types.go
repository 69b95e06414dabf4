package types

type AnalyzeReq struct {
	VideoData string `json:"videoData" binding:"required"`
	MimeType  string `json:"mimeType"`
}

type PronunciationError struct {
	Word       string `json:"word"`
	Error      string `json:"error"`
	Correction string `json:"correction"`
}

// Analysis is the coaching assessment returned to the client. Every field
// except PronunciationErrors is always present in the encoded form; that one
// is omitted only when the model left it out, an empty list stays [].
type Analysis struct {
	Score               int                   `json:"score"`
	Overall             string                `json:"overall"`
	PronunciationErrors *[]PronunciationError `json:"pronunciationErrors,omitempty"`
	Strengths           []string              `json:"strengths"`
	Improvements        []string              `json:"improvements"`
	DetailedFeedback    string                `json:"detailedFeedback"`
}

// PronunciationErrorCount is zero when the list is absent.
func (a *Analysis) PronunciationErrorCount() int {
	if a.PronunciationErrors == nil {
		return 0
	}
	return len(*a.PronunciationErrors)
}

type ErrorResp struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

type HealthResp struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

type StreamEvent struct {
	Type    string      `json:"type"`
	TS      int64       `json:"ts"`
	ID      string      `json:"id,omitempty"`
	Stage   string      `json:"stage,omitempty"`
	Status  int         `json:"status,omitempty"`
	Result  *Analysis   `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
