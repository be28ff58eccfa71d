//go:build !windows

package files

import "os"

// replaceFile relies on rename(2) replacing dst atomically.
func replaceFile(src, dst string) error { return os.Rename(src, dst) }

func isReparsePoint(string) (bool, error) { return false, nil }
