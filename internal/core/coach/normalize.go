package coach

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/steveyiyo/speechcoach-backend/pkg/types"
)

// fenceRe matches a fenced-code marker with an optional language tag and the
// newline that follows it.
var fenceRe = regexp.MustCompile("```[A-Za-z0-9_+-]*\\n?")

// StripFences removes every fenced-code marker. Text without markers is
// returned unchanged.
func StripFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	return fenceRe.ReplaceAllString(s, "")
}

// rawAnalysis accepts fractional scores from the model.
type rawAnalysis struct {
	Score               *float64                    `json:"score"`
	Overall             string                      `json:"overall"`
	PronunciationErrors *[]types.PronunciationError `json:"pronunciationErrors"`
	Strengths           []string                    `json:"strengths"`
	Improvements        []string                    `json:"improvements"`
	DetailedFeedback    string                      `json:"detailedFeedback"`
}

// Normalize turns model text into an Analysis. When the text is not a JSON
// object of the expected shape it returns the template fallback carrying the
// raw text as detailed feedback, and fallback is true.
func Normalize(text string, fb Fallback) (a types.Analysis, fallback bool) {
	if parsed, ok := parseAnalysis(text); ok {
		return parsed, false
	}
	return fallbackAnalysis(text, fb), true
}

func parseAnalysis(text string) (types.Analysis, bool) {
	body := strings.TrimSpace(StripFences(text))
	if !strings.HasPrefix(body, "{") {
		return types.Analysis{}, false
	}
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return types.Analysis{}, false
	}
	if raw.Score == nil {
		return types.Analysis{}, false
	}
	a := types.Analysis{
		Score:               clampScore(*raw.Score),
		Overall:             raw.Overall,
		PronunciationErrors: raw.PronunciationErrors,
		Strengths:           raw.Strengths,
		Improvements:        raw.Improvements,
		DetailedFeedback:    raw.DetailedFeedback,
	}
	if a.Strengths == nil {
		a.Strengths = []string{}
	}
	if a.Improvements == nil {
		a.Improvements = []string{}
	}
	return a, true
}

func fallbackAnalysis(text string, fb Fallback) types.Analysis {
	return types.Analysis{
		Score:            fb.Score,
		Overall:          fb.Overall,
		Strengths:        append([]string{}, fb.Strengths...),
		Improvements:     append([]string{}, fb.Improvements...),
		DetailedFeedback: text,
	}
}

func clampScore(f float64) int {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 100:
		return 100
	}
	return int(math.Round(f))
}
