package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

type Options struct {
	Level string
	File  string
	Debug bool
	// Stderr is where debug output is mirrored; defaults to os.Stderr.
	Stderr io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the root "enough" logger. The returned closer releases the log
// file and must be called on shutdown.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	if opts.Debug {
		level = hclog.Debug
	}

	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closer = f
	}
	if opts.Debug {
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writers = append(writers, stderr)
	}
	if len(writers) == 0 {
		return hclog.NewNullLogger(), closer, nil
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "enough",
		Level:  level,
		Output: io.MultiWriter(writers...),
	})
	return logger, closer, nil
}
