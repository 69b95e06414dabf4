package logging

import (
	"io"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/steveyiyo/speechcoach-backend/internal/config"
)

// Setup points the std logger and gin's writers at stdout and, when
// LOG_FILE is set, a size-rotated file. The returned closer flushes the file.
func Setup(cfg config.Config) io.Closer {
	var w io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   true,
		}
		w = io.MultiWriter(os.Stdout, lj)
		closer = lj
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = w
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
