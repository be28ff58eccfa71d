package main

import (
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/playback/internal/version"
)

const githubURL = "https://github.com/oukeidos/playback"

func buildAboutContent(cfg string) fyne.CanvasObject {
	return container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("App", widget.NewLabel("playback")),
			widget.NewFormItem("Version", widget.NewLabel(version.Version)),
			widget.NewFormItem("Commit", widget.NewLabel(version.Commit)),
			widget.NewFormItem("Build", widget.NewLabel(version.BuildDate)),
			widget.NewFormItem("Links", newHyperlink("GitHub", githubURL)),
		),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Effective configuration", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle(cfg, fyne.TextAlignLeading, fyne.TextStyle{Monospace: true}),
	)
}

func newHyperlink(label, raw string) *widget.Hyperlink {
	u, _ := url.Parse(raw)
	return widget.NewHyperlink(label, u)
}

func (pw *playbackWindow) showAbout() {
	cfg, err := pw.config.YAML()
	if err != nil {
		dialog.ShowError(err, pw.window)
		return
	}
	d := dialog.NewCustom("About", "Close", buildAboutContent(cfg), pw.window)
	d.Resize(fyne.NewSize(420, 360))
	d.Show()
}
