package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

func width(s string) int { return uniseg.StringWidth(s) }

// truncate shortens s to at most limit terminal cells without splitting a
// grapheme cluster, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= limit {
		return s
	}
	var b strings.Builder
	used := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if used+w > limit-1 {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// drawText writes s cluster by cluster so combining marks stay attached.
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	state := -1
	for len(text) > 0 {
		var cluster string
		var w int
		cluster, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		runes := []rune(cluster)
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}
