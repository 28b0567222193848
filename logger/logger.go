// Package logger configures the global zerolog logger. Output goes to stderr
// because stdout carries the engine protocol.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

const callerWidth = 24

// Init sets the global level and output. An empty level falls back to
// LOG_LEVEL, then to info. A non-empty file receives a copy of every event.
func Init(level, file string) error {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	lvl := ParseLevel(level)
	zerolog.SetGlobalLevel(lvl)

	output, err := newOutput(os.Stderr, file)
	if err != nil {
		return err
	}
	log.Logger = zerolog.New(output).With().Timestamp().Caller().Logger()

	log.Debug().Str("level", lvl.String()).Str("file", file).Msg("logger initialized")
	return nil
}

// ParseLevel resolves a level name, defaulting to info when it is unknown.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func newOutput(out io.Writer, file string) (io.Writer, error) {
	var output io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}
	if file == "" {
		return output, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zerolog.MultiLevelWriter(output, f), nil
}
