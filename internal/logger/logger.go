package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/term"
)

// Level aliases
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var globalLogger *slog.Logger
var isTerminal = term.IsTerminal

var (
	console     io.Writer = os.Stderr
	activeLevel           = LevelInfo
	activeFile  io.Writer
)

var userHome = os.UserHomeDir

// pathKeys are attribute keys whose values are filesystem paths or URIs.
var pathKeys = map[string]bool{
	"path":   true,
	"source": true,
	"uri":    true,
	"file":   true,
	"config": true,
}

// ShortenPaths is a slog.ReplaceAttr function that rewrites the user's home
// directory to "~" in path-like attributes.
func ShortenPaths(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString || !isPathKey(a.Key) {
		return a
	}
	home, err := userHome()
	if err != nil || home == "" {
		return a
	}
	v := a.Value.String()
	for _, prefix := range []string{home, "file://" + home} {
		if v == prefix || strings.HasPrefix(v, prefix+"/") {
			return slog.String(a.Key, strings.Replace(v, home, "~", 1))
		}
	}
	return a
}

func isPathKey(key string) bool {
	key = strings.ToLower(key)
	if pathKeys[key] {
		return true
	}
	return strings.HasSuffix(key, "_path") || strings.HasSuffix(key, "_file")
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Setup parses levelName, opens filePath for JSONL output when non-empty and
// installs the global logger. The returned close func is never nil.
func Setup(levelName, filePath string) (func() error, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return func() error { return nil }, err
	}
	if filePath == "" {
		Init(level, nil)
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return func() error { return nil }, fmt.Errorf("open log file: %w", err)
	}
	Init(level, f)
	return f.Close, nil
}

// SessionID returns a time-ordered id used to tell sessions apart in logs.
func SessionID() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

func init() {
	// Default logger: Info level to Stderr
	Init(LevelInfo, nil)
}

// Init initializes the global logger.
// logLevel sets the minimum level to log.
// logFile is an optional writer for JSONL output (e.g., an os.File).
func Init(level slog.Level, logFile io.Writer) {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: ShortenPaths,
	}

	activeLevel, activeFile = level, logFile

	// Console Handler (Pretty)
	useColor := logFile == nil && console == io.Writer(os.Stderr) && isTerminal(int(os.Stderr.Fd()))
	consoleHandler := NewPrettyHandler(console, opts, useColor)

	var handler slog.Handler = consoleHandler

	// If logFile is provided, use a multi-handler (simplified as a wrapper here)
	if logFile != nil {
		jsonHandler := slog.NewJSONHandler(logFile, opts)
		handler = &multiHandler{
			handlers: []slog.Handler{consoleHandler, jsonHandler},
		}
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// MuteConsole drops console output while a full-screen terminal UI owns the
// terminal. The JSONL file, if any, keeps receiving records.
func MuteConsole() {
	console = io.Discard
	Init(activeLevel, activeFile)
}

// Attach adds attrs to every record logged through the global logger.
func Attach(args ...any) {
	globalLogger = globalLogger.With(args...)
	slog.SetDefault(globalLogger)
}

// With returns the global logger with attrs attached.
func With(args ...any) *slog.Logger { return globalLogger.With(args...) }

// Global Logging Functions
func Debug(msg string, args ...any) { globalLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { globalLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { globalLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { globalLogger.Error(msg, args...) }

// Fatal logs an error and exits
func Fatal(msg string, args ...any) {
	globalLogger.Error(msg, args...)
	os.Exit(1)
}

// --- Pretty Handler Implementation ---

type PrettyHandler struct {
	w      io.Writer
	opts   *slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
	color  bool
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *PrettyHandler {
	return &PrettyHandler{w: w, opts: opts, color: color}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String()
	levelColor := ""
	reset := ""

	// Simple ANSI colors
	if h.color {
		switch r.Level {
		case slog.LevelDebug:
			levelColor = "\033[90m" // Gray
		case slog.LevelInfo:
			levelColor = "\033[32m" // Green
		case slog.LevelWarn:
			levelColor = "\033[33m" // Yellow
		case slog.LevelError:
			levelColor = "\033[31m" // Red
		}
		reset = "\033[0m"
	}

	timeStr := r.Time.Format("15:04:05")

	fmt.Fprintf(h.w, "%s %s%-5s%s %s",
		timeStr,
		levelColor, level, reset,
		r.Message,
	)

	// Helper to print attributes with group prefix
	printAttr := func(a slog.Attr, groups []string) {
		if h.opts != nil && h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(groups, a)
		}
		if a.Key == "" {
			return
		}

		// Handle groups
		key := a.Key
		for i := len(groups) - 1; i >= 0; i-- {
			key = groups[i] + "." + key
		}

		if h.color {
			fmt.Fprintf(h.w, " \033[90m%s=\033[0m%v", key, a.Value)
			return
		}
		fmt.Fprintf(h.w, " %s=%v", key, a.Value)
	}

	// Print persistent attributes
	for _, a := range h.attrs {
		printAttr(a, h.groups)
	}

	// Print record attributes
	r.Attrs(func(a slog.Attr) bool {
		printAttr(a, h.groups)
		return true
	})

	fmt.Fprintln(h.w)
	return nil
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = append(h2.attrs[:len(h2.attrs):len(h2.attrs)], attrs...)
	return &h2
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(h2.groups[:len(h2.groups):len(h2.groups)], name)
	return &h2
}

// --- Multi Handler Implementation ---

type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if err := h.Handle(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
