package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/oukeidos/playback/internal/apperrors"
)

// SafePath returns a non-existing path by appending _1.._9, then a UUID suffix.
// If the original path does not exist, it is returned unchanged.
func SafePath(path string) (string, bool, error) {
	if path == "" {
		return "", false, apperrors.File("no output path given", nil)
	}
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return path, false, nil
	}
	if err != nil {
		return "", false, apperrors.File(fmt.Sprintf("cannot inspect %s", path), err)
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; i <= 9; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, true, nil
		} else if err != nil {
			return "", false, apperrors.File(fmt.Sprintf("cannot inspect %s", candidate), err)
		}
	}

	suffix := uuid.NewString()[:8]
	if u, err := uuid.NewV7(); err == nil {
		suffix = u.String()
	}
	return fmt.Sprintf("%s_%s%s", base, suffix, ext), true, nil
}
