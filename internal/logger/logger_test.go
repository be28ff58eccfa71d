package logger

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrettyHandler_Structural(t *testing.T) {
	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelDebug}
	h := NewPrettyHandler(&buf, opts, false)
	l := slog.New(h)

	t.Run("WithAttrs", func(t *testing.T) {
		buf.Reset()
		l2 := l.With("request_id", "abc-123")
		l2.Info("test message", "user", "alice")

		output := buf.String()
		if !strings.Contains(output, "request_id=") || !strings.Contains(output, "abc-123") {
			t.Errorf("output missing persistent attr: %q", output)
		}
		if !strings.Contains(output, "user=") || !strings.Contains(output, "alice") {
			t.Errorf("output missing record attr: %q", output)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("billing").With("amount", 100)
		l2.Info("payment processing", "currency", "USD")

		output := buf.String()
		if !strings.Contains(output, "billing.amount=") || !strings.Contains(output, "100") {
			t.Errorf("output missing grouped persistent attr: %q", output)
		}
		if !strings.Contains(output, "billing.currency=") || !strings.Contains(output, "USD") {
			t.Errorf("output missing grouped record attr: %q", output)
		}
	})

	t.Run("NestedGroups", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("outer").WithGroup("inner").With("key", "val")
		l2.Info("msg")

		output := buf.String()
		if !strings.Contains(output, "outer.inner.key=") || !strings.Contains(output, "val") {
			t.Errorf("output missing nested grouped attr: %q", output)
		}
	})
}

func TestShortenPaths(t *testing.T) {
	prevHome := userHome
	userHome = func() (string, error) { return "/home/alice", nil }
	defer func() { userHome = prevHome }()

	tests := []struct {
		name string
		attr slog.Attr
		want string
	}{
		{"path under home", slog.String("path", "/home/alice/Videos/clip.webp"), "~/Videos/clip.webp"},
		{"file uri under home", slog.String("uri", "file:///home/alice/clip.webp"), "file://~/clip.webp"},
		{"suffix key", slog.String("log_file", "/home/alice/playback.jsonl"), "~/playback.jsonl"},
		{"home itself", slog.String("source", "/home/alice"), "~"},
		{"outside home", slog.String("path", "/srv/media/clip.webp"), "/srv/media/clip.webp"},
		{"sibling prefix", slog.String("path", "/home/alicia/clip.webp"), "/home/alicia/clip.webp"},
		{"non path key", slog.String("title", "/home/alice/clip.webp"), "/home/alice/clip.webp"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ShortenPaths(nil, tc.attr)
			if got.Value.String() != tc.want {
				t.Fatalf("ShortenPaths(%s) = %q, want %q", tc.attr.Key, got.Value.String(), tc.want)
			}
		})
	}

	t.Run("non string value", func(t *testing.T) {
		attr := slog.Int("path", 3)
		if got := ShortenPaths(nil, attr); got.Value.Int64() != 3 {
			t.Fatalf("ShortenPaths changed a non-string value: %v", got.Value)
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", LevelInfo, false},
		{"debug", LevelDebug, false},
		{" WARN ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSetupWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playback.jsonl")
	closeLog, err := Setup("debug", path)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	Debug("Overlays hidden", "handle", 7)
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}
	Init(LevelInfo, nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"Overlays hidden"`) || !strings.Contains(string(data), `"handle":7`) {
		t.Fatalf("log file missing record: %q", string(data))
	}
}

func TestMuteConsoleKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playback.jsonl")
	closeLog, err := Setup("info", path)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	MuteConsole()
	t.Cleanup(func() {
		console = os.Stderr
		Init(LevelInfo, nil)
	})

	Info("Terminal player started")
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "Terminal player started") {
		t.Fatalf("muted logger dropped file output: %q", string(data))
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	closeLog, err := Setup("loud", "")
	if err == nil {
		t.Fatalf("Setup() error = nil, want error")
	}
	if closeLog == nil || closeLog() != nil {
		t.Fatalf("Setup() should return a usable no-op close func")
	}
}

func TestSessionIDUnique(t *testing.T) {
	a, b := SessionID(), SessionID()
	if a == "" || a == b {
		t.Fatalf("SessionID() = %q, %q; want distinct non-empty ids", a, b)
	}
}

func TestPrettyHandler_NoColorWhenNotTTY(t *testing.T) {
	prevIsTerminal := isTerminal
	isTerminal = func(_ int) bool { return false }
	defer func() { isTerminal = prevIsTerminal }()

	prevStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = prevStderr }()

	Init(LevelInfo, nil)
	Info("test message", "key", "value")

	_ = w.Close()
	out, _ := io.ReadAll(r)
	if strings.Contains(string(out), "\033[") {
		t.Fatalf("unexpected ANSI codes in output: %q", string(out))
	}
}

func TestPrettyHandler_NoColorWhenLogFileEnabled(t *testing.T) {
	prevIsTerminal := isTerminal
	isTerminal = func(_ int) bool { return true }
	defer func() { isTerminal = prevIsTerminal }()

	prevStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = prevStderr }()

	var logBuf bytes.Buffer
	Init(LevelInfo, &logBuf)
	Info("test message", "key", "value")

	_ = w.Close()
	out, _ := io.ReadAll(r)
	if strings.Contains(string(out), "\033[") {
		t.Fatalf("unexpected ANSI codes in output: %q", string(out))
	}
}
