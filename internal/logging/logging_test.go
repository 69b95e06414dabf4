package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/steveyiyo/speechcoach-backend/internal/config"
)

func TestSetupWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	closer := Setup(config.Config{LogFile: path, LogMaxSizeMB: 1, LogMaxBackups: 1, LogMaxAgeDays: 1})
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	log.Printf("[analyze] hello from test")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "hello from test") {
		t.Fatalf("log file = %q; want test line", b)
	}
}

func TestSetupWithoutFile(t *testing.T) {
	closer := Setup(config.Config{})
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
