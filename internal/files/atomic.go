// Package files writes user-facing files without leaving partial results
// behind and refuses to follow symlinks on the way.
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/oukeidos/playback/internal/apperrors"
	"github.com/oukeidos/playback/internal/logger"
)

// AtomicWrite writes data next to path and renames it into place, so readers
// see either the old file or the complete new one. Paths that pass through a
// symlink or reparse point are refused. Failures are KindFile errors.
func AtomicWrite(path string, data []byte, perms os.FileMode) error {
	if strings.TrimSpace(path) == "" {
		return apperrors.File("no output path given", nil)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return apperrors.File("output path could not be resolved", err)
	}
	if err := checkNoLinks(abs); err != nil {
		return err
	}

	dir := filepath.Dir(abs)
	tmp, err := os.CreateTemp(dir, "playback-*.tmp")
	if err != nil {
		return apperrors.File(fmt.Sprintf("cannot write in %s", dir), err)
	}
	keep := false
	defer func() {
		if !keep {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := writeAndSync(tmp, data, perms); err != nil {
		return apperrors.File(fmt.Sprintf("could not write %s", filepath.Base(abs)), err)
	}
	if err := replaceFile(tmp.Name(), abs); err != nil {
		return apperrors.File(fmt.Sprintf("could not move %s into place", filepath.Base(abs)), err)
	}
	keep = true
	if err := syncDir(dir); err != nil {
		logger.Debug("Directory fsync failed", "path", dir, "error", err)
	}
	return nil
}

func writeAndSync(f *os.File, data []byte, perms os.FileMode) error {
	if err := f.Chmod(perms); err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return f.Close()
}

// checkNoLinks walks abs from the volume root and fails on the first
// existing component that is a symlink or reparse point. Components that do
// not exist yet end the walk.
func checkNoLinks(abs string) error {
	volume := filepath.VolumeName(abs)
	current := volume + string(filepath.Separator)
	rest := strings.TrimLeft(abs[len(volume):], string(filepath.Separator))
	if rest == "" {
		return nil
	}

	for _, part := range strings.Split(rest, string(filepath.Separator)) {
		if part == "" {
			continue
		}
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return apperrors.File(fmt.Sprintf("cannot inspect %s", current), err)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return apperrors.File(fmt.Sprintf("refusing to write through symlink %s", current), nil)
		}
		reparse, err := isReparsePoint(current)
		if err != nil {
			return apperrors.File(fmt.Sprintf("cannot inspect %s", current), err)
		}
		if reparse {
			return apperrors.File(fmt.Sprintf("refusing to write through reparse point %s", current), nil)
		}
	}
	return nil
}

func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
