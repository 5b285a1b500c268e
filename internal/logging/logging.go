// Package logging builds the zap logger shared by the CLI and the server.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Levels accepted by New.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// ParseLevel validates a level name. An empty name means normal.
func ParseLevel(s string) (string, error) {
	switch s {
	case "":
		return LevelNormal, nil
	case LevelNone, LevelNormal, LevelDebug:
		return s, nil
	}
	return "", fmt.Errorf("invalid log level %q: must be none, normal or debug", s)
}

// New returns a console logger writing info and debug to stdout and
// errors to stderr.
func New(level string) (*zap.Logger, error) {
	return NewWithWriters(level, os.Stdout, os.Stderr)
}

// NewWithWriters is New with explicit destinations. Colors are only used
// when a destination is a terminal.
func NewWithWriters(level string, out, errOut io.Writer) (*zap.Logger, error) {
	level, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if level == LevelNone {
		return zap.NewNop(), nil
	}

	floor := zapcore.InfoLevel
	if level == LevelDebug {
		floor = zapcore.DebugLevel
	}

	low := zapcore.NewCore(encoder(out), zapcore.AddSync(out),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return floor <= lvl && lvl < zapcore.ErrorLevel
		}))
	high := zapcore.NewCore(encoder(errOut), zapcore.AddSync(errOut),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))

	return zap.New(zapcore.NewTee(low, high)).Named("lightpack"), nil
}

func encoder(w io.Writer) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if isTerminal(w) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
