package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindScheduler Kind = "scheduler"
	KindConfig    Kind = "config"
	KindMedia     Kind = "media"
	KindFile      Kind = "file"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindScheduler:
		return "Could not arm the overlay hide timer."
	case KindConfig:
		return "Invalid configuration."
	case KindMedia:
		return "Media source could not be opened."
	case KindFile:
		return "File could not be written."
	default:
		return "Operation failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func Scheduler(err error) error {
	return New(KindScheduler, "", err)
}

func Config(msg string, err error) error {
	return New(KindConfig, msg, err)
}

func Media(msg string, err error) error {
	return New(KindMedia, msg, err)
}

func File(msg string, err error) error {
	return New(KindFile, msg, err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// IsFatal reports whether err leaves the overlays unable to auto-hide.
func IsFatal(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindScheduler
}
