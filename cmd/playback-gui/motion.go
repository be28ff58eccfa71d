package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// motionSurface is a transparent widget covering the window that reports
// pointer motion. It is not tappable, so clicks fall through to the widgets
// beneath it.
type motionSurface struct {
	widget.BaseWidget
	onMotion func()
}

func newMotionSurface() *motionSurface {
	m := &motionSurface{}
	m.ExtendBaseWidget(m)
	return m
}

func (m *motionSurface) MouseIn(_ *desktop.MouseEvent) {
	m.moved()
}

func (m *motionSurface) MouseMoved(_ *desktop.MouseEvent) {
	m.moved()
}

func (m *motionSurface) MouseOut() {}

func (m *motionSurface) moved() {
	if m.onMotion != nil {
		withPanicGuard("ui.motion", nil, m.onMotion)
	}
}

func (m *motionSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}
