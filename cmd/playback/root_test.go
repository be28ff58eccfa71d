package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/oukeidos/playback/internal/apperrors"
	"github.com/oukeidos/playback/internal/version"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := executeCommand(t)
	if err != nil {
		t.Fatalf("root error = %v", err)
	}
	for _, want := range []string{"term", "config", "about"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := executeCommand(t, "--version")
	if err != nil {
		t.Fatalf("--version error = %v", err)
	}
	if !strings.Contains(out, "playback "+version.Version) {
		t.Fatalf("version output = %q", out)
	}
}

func TestAboutCommand(t *testing.T) {
	out, err := executeCommand(t, "about")
	if err != nil {
		t.Fatalf("about error = %v", err)
	}
	if !strings.Contains(out, "auto-hiding overlays") {
		t.Fatalf("about output = %q", out)
	}
}

func TestConfigCommandDefaults(t *testing.T) {
	out, err := executeCommand(t, "config")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	if !strings.Contains(out, "hide_delay: 3s") {
		t.Fatalf("config output missing default delay:\n%s", out)
	}
}

func TestConfigCommandPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playback.yaml")
	if err := os.WriteFile(path, []byte("hide_delay: 5s\ntitle: From File\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "config", "--config", path)
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	if !strings.Contains(out, "hide_delay: 5s") || !strings.Contains(out, "title: From File") {
		t.Fatalf("file values not applied:\n%s", out)
	}

	out, err = executeCommand(t, "config", "--config", path, "--hide-delay", "1500ms")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	if !strings.Contains(out, "hide_delay: 1.5s") {
		t.Fatalf("flag did not override the file:\n%s", out)
	}
}

func TestConfigCommandRejectsBadDelay(t *testing.T) {
	if _, err := executeCommand(t, "config", "--hide-delay", "0s"); err == nil {
		t.Fatalf("expected an error for a zero hide delay")
	}
}

func TestTermRejectsMissingMedia(t *testing.T) {
	opened := false
	orig := newScreen
	newScreen = func() (tcell.Screen, error) {
		opened = true
		return nil, errors.New("no terminal in tests")
	}
	t.Cleanup(func() { newScreen = orig })

	_, err := executeCommand(t, "term", filepath.Join(t.TempDir(), "gone.webp"))
	if err == nil {
		t.Fatalf("expected an error for missing media")
	}
	if opened {
		t.Fatalf("terminal opened before the media was resolved")
	}
}

func TestConfigCommandWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playback.yaml")

	if _, err := executeCommand(t, "config", "--hide-delay", "4s", "--write", path); err != nil {
		t.Fatalf("config --write error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hide_delay: 4s") {
		t.Fatalf("written config = %q", data)
	}

	out, err := executeCommand(t, "config", "--write", path)
	if err != nil {
		t.Fatalf("second config --write error = %v", err)
	}
	if !strings.Contains(out, "playback_1.yaml") {
		t.Fatalf("existing file not preserved, output = %q", out)
	}

	if _, err := executeCommand(t, "config", "--write", path, "--force"); err != nil {
		t.Fatalf("config --write --force error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "hide_delay: 3s") {
		t.Fatalf("--force did not overwrite: %q", data)
	}
}

func TestConfigCommandWriteRefusesSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on Windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target.yaml")
	if err := os.WriteFile(target, []byte("original"), 0o600); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "playback.yaml")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(t.TempDir(), filepath.Join(dir, "conf")); err != nil {
		t.Fatalf("symlink dir: %v", err)
	}

	for _, args := range [][]string{
		{"config", "--write", link, "--force"},
		{"config", "--write", filepath.Join(dir, "conf", "playback.yaml")},
	} {
		_, err := executeCommand(t, args...)
		if kind, ok := apperrors.KindOf(err); !ok || kind != apperrors.KindFile {
			t.Fatalf("%v: error = %v, want a file error", args, err)
		}
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Fatalf("symlink target overwritten: %q", data)
	}
}
