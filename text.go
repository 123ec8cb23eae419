package rowan

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DisplayWidth returns the number of terminal columns s occupies.
// East-Asian wide characters count as two columns.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateText cuts s so it occupies at most maxCells terminal columns.
// Cutting happens on grapheme-cluster boundaries, so combining marks and
// emoji sequences are never split; a wide cluster that would straddle the
// limit is dropped entirely.
func TruncateText(s string, maxCells int) string {
	if maxCells <= 0 {
		return ""
	}
	if DisplayWidth(s) <= maxCells {
		return s
	}
	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if width+w > maxCells {
			break
		}
		b.WriteString(cluster)
		width += w
	}
	return b.String()
}

// padToWidth right-pads s with spaces to exactly cells columns, truncating
// first when it is too long.
func padToWidth(s string, cells int) string {
	s = TruncateText(s, cells)
	if pad := cells - DisplayWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
