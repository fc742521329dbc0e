package outwriter

import (
	"os"

	"golang.org/x/term"
)

// Bounds for the option name column.
const (
	minNameWidth = 12
	maxNameWidth = 48
)

// getTerminalWidth returns the width override when set, else the detected terminal width.
func getTerminalWidth(override int) int {
	if override > 0 {
		return override
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// GetMaxTableNameWidth calculates the maximum width for option names in table output.
// fixedColumns is the number of narrow numeric columns sharing the row.
func GetMaxTableNameWidth(widthOverride, fixedColumns int) int {
	termWidth := getTerminalWidth(widthOverride)

	// Each numeric column takes about 10 characters with padding and borders
	baseWidth := fixedColumns*10 + 4

	available := termWidth - baseWidth
	if available < minNameWidth {
		return minNameWidth
	}
	if available > maxNameWidth {
		return maxNameWidth
	}
	return available
}
