package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphRows is the height of every big glyph.
const glyphRows = 5

// minBigWidth is the narrowest terminal that gets the big clock.
const minBigWidth = 40

// glyphs holds the big clock font, one row per line, "#" for a filled cell.
var glyphs = map[rune][glyphRows]string{
	'0': {"###", "# #", "# #", "# #", "###"},
	'1': {" # ", "## ", " # ", " # ", "###"},
	'2': {"###", "  #", "###", "#  ", "###"},
	'3': {"###", "  #", " ##", "  #", "###"},
	'4': {"# #", "# #", "###", "  #", "  #"},
	'5': {"###", "#  ", "###", "  #", "###"},
	'6': {"###", "#  ", "###", "# #", "###"},
	'7': {"###", "  #", "  #", " # ", " # "},
	'8': {"###", "# #", "###", "# #", "###"},
	'9': {"###", "# #", "###", "  #", "###"},
	':': {" ", "#", " ", "#", " "},
}

// renderClock draws an mm:ss string in the big font. Narrow terminals get
// a single bold line instead.
func renderClock(clock string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < minBigWidth {
		return style.Render(clock)
	}

	var rows [glyphRows]strings.Builder
	first := true
	for _, ch := range clock {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i].WriteString("  ")
			}
			// Each cell is drawn two columns wide so digits look square.
			rows[i].WriteString(strings.NewReplacer("#", "██", " ", "  ").Replace(glyph[i]))
		}
		first = false
	}

	lines := make([]string, glyphRows)
	for i := range rows {
		lines[i] = style.Render(rows[i].String())
	}
	return strings.Join(lines, "\n")
}
