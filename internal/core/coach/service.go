package coach

import (
	"context"
	"log"
	"time"

	"github.com/steveyiyo/speechcoach-backend/internal/core/gemini"
	"github.com/steveyiyo/speechcoach-backend/pkg/types"
)

const DefaultMimeType = "video/mp4"

// Generator sends one prompt plus inline media to a model and returns its
// raw text.
type Generator interface {
	Generate(ctx context.Context, prompt string, media gemini.Media) (string, error)
}

type Service struct {
	Gen      Generator
	Template Template
	Timeout  time.Duration
}

func NewService(gen Generator, tmpl Template, timeout time.Duration) *Service {
	return &Service{Gen: gen, Template: tmpl, Timeout: timeout}
}

// Analyze makes a single, deadline-bounded model call and normalizes its
// reply. Errors are returned untouched for the caller to map to a status.
func (s *Service) Analyze(ctx context.Context, req types.AnalyzeReq) (*types.Analysis, error) {
	mime := req.MimeType
	if mime == "" {
		mime = DefaultMimeType
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.Gen.Generate(ctx, s.Template.Prompt, gemini.Media{MimeType: mime, Data: req.VideoData})
	if err != nil {
		if gemini.IsTimeout(err) || ctx.Err() == context.DeadlineExceeded {
			log.Printf("[analyze] model call timed out after %s", time.Since(start).Round(time.Millisecond))
			return nil, context.DeadlineExceeded
		}
		log.Printf("[analyze] model call failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
		return nil, err
	}

	a, fallback := Normalize(text, s.Template.Fallback)
	if fallback {
		log.Printf("[analyze] model text was not a JSON analysis (%d chars), using %s fallback", len(text), s.Template.Name)
	} else {
		log.Printf("[analyze] ok in %s: score=%d pronunciationErrors=%d", time.Since(start).Round(time.Millisecond), a.Score, a.PronunciationErrorCount())
	}
	return &a, nil
}
