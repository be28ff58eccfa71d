package media

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/oukeidos/playback/internal/apperrors"
)

// Source is a resolved local media file.
type Source struct {
	Name string
	Path string
	URI  string
	Size int64
}

// Poster describes the decoded header of a still-image source.
type Poster struct {
	Format string
	Width  int
	Height int
}

var userHome = os.UserHomeDir

// Resolve turns a path, ~/ path or file:// URI into a Source.
func Resolve(ref string) (*Source, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperrors.Media("no media source given", nil)
	}

	path, err := localPath(ref)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, apperrors.Media("media path could not be resolved", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Media(fmt.Sprintf("media file not found: %s", filepath.Base(abs)), err)
		}
		return nil, apperrors.Media("media file could not be read", err)
	}
	if info.IsDir() {
		return nil, apperrors.Media(fmt.Sprintf("media source is a directory: %s", filepath.Base(abs)), nil)
	}

	return &Source{
		Name: info.Name(),
		Path: abs,
		URI:  (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(),
		Size: info.Size(),
	}, nil
}

func localPath(ref string) (string, error) {
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return "", apperrors.Media("media URI could not be parsed", err)
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", apperrors.Media(fmt.Sprintf("remote media hosts are not supported: %s", u.Host), nil)
		}
		return filepath.FromSlash(u.Path), nil
	}
	if strings.Contains(ref, "://") {
		return "", apperrors.Media("only local files and file:// URIs are supported", nil)
	}
	if ref == "~" || strings.HasPrefix(ref, "~/") {
		home, err := userHome()
		if err != nil {
			return "", apperrors.Media("home directory could not be determined", err)
		}
		return filepath.Join(home, strings.TrimPrefix(ref, "~")), nil
	}
	return ref, nil
}

// Probe decodes only the image header of the source.
func (s *Source) Probe() (Poster, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return Poster{}, apperrors.Media("media file could not be opened", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Poster{}, apperrors.Media(fmt.Sprintf("unsupported media format: %s", filepath.Ext(s.Path)), err)
		}
		return Poster{}, apperrors.Media("media header could not be decoded", err)
	}
	return Poster{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// HumanSize formats a byte count with binary units.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
