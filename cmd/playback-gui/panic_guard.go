package main

import (
	"fmt"

	"fyne.io/fyne/v2"

	"github.com/oukeidos/playback/internal/logger"
)

func withPanicGuard(scope string, onPanic func(any), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r))
			if onPanic != nil {
				onPanic(r)
			}
		}
	}()
	fn()
}

// safeDo runs fn on the fyne main goroutine behind a panic guard.
func safeDo(scope string, fn func()) {
	withPanicGuard(scope+".dispatch", nil, func() {
		fyne.Do(func() {
			withPanicGuard(scope, nil, fn)
		})
	})
}
