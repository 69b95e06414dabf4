package coach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/steveyiyo/speechcoach-backend/internal/core/gemini"
	"github.com/steveyiyo/speechcoach-backend/pkg/types"
)

type fakeGen struct {
	calls  int
	prompt string
	media  gemini.Media
	text   string
	err    error
	block  bool
}

func (f *fakeGen) Generate(ctx context.Context, prompt string, media gemini.Media) (string, error) {
	f.calls++
	f.prompt, f.media = prompt, media
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

func TestAnalyzeDefaultsMimeTypeAndUsesTemplate(t *testing.T) {
	tmpl, _ := LookupTemplate("general")
	gen := &fakeGen{text: canonical}
	svc := NewService(gen, tmpl, time.Second)

	a, err := svc.Analyze(context.Background(), types.AnalyzeReq{VideoData: "QUJD"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("calls = %d; want exactly one", gen.calls)
	}
	if gen.media.MimeType != "video/mp4" || gen.media.Data != "QUJD" {
		t.Fatalf("media = %+v", gen.media)
	}
	if gen.prompt != tmpl.Prompt {
		t.Fatal("prompt is not the template prompt")
	}
	if a.Score != 82 {
		t.Fatalf("Score = %d", a.Score)
	}
}

func TestAnalyzeKeepsMimeType(t *testing.T) {
	tmpl, _ := LookupTemplate("pronunciation")
	gen := &fakeGen{text: canonical}
	if _, err := NewService(gen, tmpl, time.Second).Analyze(context.Background(), types.AnalyzeReq{VideoData: "QUJD", MimeType: "audio/webm"}); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if gen.media.MimeType != "audio/webm" {
		t.Fatalf("MimeType = %q", gen.media.MimeType)
	}
}

func TestAnalyzeTimeout(t *testing.T) {
	tmpl, _ := LookupTemplate("pronunciation")
	gen := &fakeGen{block: true}
	_, err := NewService(gen, tmpl, 20*time.Millisecond).Analyze(context.Background(), types.AnalyzeReq{VideoData: "QUJD"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v; want deadline exceeded", err)
	}
}

func TestAnalyzePassesErrorsThrough(t *testing.T) {
	tmpl, _ := LookupTemplate("pronunciation")
	want := &gemini.StatusError{Code: 429}
	gen := &fakeGen{err: want}
	_, err := NewService(gen, tmpl, time.Second).Analyze(context.Background(), types.AnalyzeReq{VideoData: "QUJD"})
	var se *gemini.StatusError
	if !errors.As(err, &se) || se.Code != 429 {
		t.Fatalf("err = %v; want the StatusError", err)
	}
}

func TestAnalyzeFallbackIsNotAnError(t *testing.T) {
	tmpl, _ := LookupTemplate("pronunciation")
	gen := &fakeGen{text: "I could not produce JSON, sorry."}
	a, err := NewService(gen, tmpl, time.Second).Analyze(context.Background(), types.AnalyzeReq{VideoData: "QUJD"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Score != 75 || a.DetailedFeedback != gen.text {
		t.Fatalf("analysis = %+v", a)
	}
}

func TestLookupTemplate(t *testing.T) {
	for _, name := range []string{"pronunciation", "general"} {
		tmpl, err := LookupTemplate(name)
		if err != nil {
			t.Fatalf("LookupTemplate(%q): %v", name, err)
		}
		if tmpl.Fallback.Score != FallbackScore || tmpl.Prompt == "" {
			t.Fatalf("template %q = %+v", name, tmpl.Fallback)
		}
	}
	p, _ := LookupTemplate("pronunciation")
	if !strings.Contains(p.Prompt, "Vietnamese") || !strings.Contains(p.Prompt, "pronunciationErrors") {
		t.Fatal("pronunciation prompt lacks accent focus")
	}
	if _, err := LookupTemplate("pirate"); err == nil {
		t.Fatal("LookupTemplate(pirate) = nil error")
	}
}
