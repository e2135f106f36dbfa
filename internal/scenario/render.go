package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/muesli/termenv"
)

var (
	PASSING_ITEM_COLOR     = termenv.ANSIBrightGreen
	NON_PASSING_ITEM_COLOR = termenv.ANSIBrightBlack
	ERROR_COLOR            = termenv.ANSIRed
	STEP_COLOR             = termenv.ANSIBlue
)

// Render writes the two lists of a snapshot, source items passing the predicate are highlighted.
// No escape sequence is written if profile is termenv.Ascii.
func Render(w io.Writer, snapshot Snapshot, profile termenv.Profile) error {
	writer := bufio.NewWriter(w)

	colorize := func(s string, color termenv.Color) string {
		return profile.String(s).Foreground(profile.Convert(color)).String()
	}

	header := fmt.Sprintf("step %d: %s", snapshot.Step, snapshot.Description)
	writer.WriteString(profile.String(header).Foreground(profile.Convert(STEP_COLOR)).Bold().String())
	writer.WriteByte('\n')

	writer.WriteString("  source:   [")
	for i, value := range snapshot.Source {
		if i > 0 {
			writer.WriteByte(' ')
		}
		color := NON_PASSING_ITEM_COLOR
		if i < len(snapshot.Passing) && snapshot.Passing[i] {
			color = PASSING_ITEM_COLOR
		}
		writer.WriteString(colorize(strconv.Itoa(value), color))
	}
	writer.WriteString("]")
	if !snapshot.Attached {
		writer.WriteString(" (detached)")
	}
	writer.WriteByte('\n')

	writer.WriteString("  filtered: [")
	for i, value := range snapshot.Filtered {
		if i > 0 {
			writer.WriteByte(' ')
		}
		writer.WriteString(colorize(strconv.Itoa(value), PASSING_ITEM_COLOR))
	}
	writer.WriteString("]\n")

	if !snapshot.Consistent {
		writer.WriteString(colorize("  inconsistent state", ERROR_COLOR))
		writer.WriteByte('\n')
	}

	return writer.Flush()
}
