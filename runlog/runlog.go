// Package runlog provides the structured file log for long-running tool
// sessions. Console output stays on stdout for interactive use; runlog writes
// a JSON log per session so crashed or resumed runs can be reconstructed.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stamp returns the timestamp format used in log and output file names.
func Stamp() string {
	return time.Now().Format("20060102_150405")
}

// New creates a session logger writing to <dir>/run_<stamp>_<id>.log.
// Every entry carries the session id so interleaved runs stay separable.
// The returned cleanup function flushes buffered entries.
func New(dir string, debug bool) (*zap.Logger, string, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", nil, fmt.Errorf("failed to create log dir: %w", err)
	}

	session := uuid.NewString()[:8]
	path := filepath.Join(dir, fmt.Sprintf("run_%s_%s.log", Stamp(), session))

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to build logger: %w", err)
	}
	logger = logger.With(zap.String("session", session))

	cleanup := func() { _ = logger.Sync() }
	return logger, session, cleanup, nil
}
