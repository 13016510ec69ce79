package views

import (
	"strconv"
	"strings"

	"github.com/matheus3301/wpnew/internal/compose"
	"github.com/mattn/go-runewidth"
)

// maxChipWidth caps the label of a single chip, in terminal cells.
const maxChipWidth = 20

// chipLine renders users as "[label]" chips in selection order. When width
// (in cells) is positive and too small, the users that do not fit collapse
// into a trailing "+N".
func chipLine(users []compose.User, width int) string {
	var b strings.Builder
	used := 0
	for i, u := range users {
		chip := "[" + runewidth.Truncate(displayName(u.Label()), maxChipWidth, "…") + "]"
		w := runewidth.StringWidth(chip)

		sep := 0
		if i > 0 {
			sep = 1
		}
		reserve := 0
		if rest := len(users) - i - 1; rest > 0 {
			reserve = len(" +" + strconv.Itoa(rest))
		}

		if width > 0 && used+sep+w+reserve > width {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString("+" + strconv.Itoa(len(users)-i))
			return b.String()
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(chip)
		used += sep + w
	}
	return b.String()
}
