package contract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/decider/schema"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // ExcellentColor marks a clear winner.
	GoodColor      = color.New(color.FgCyan)              // GoodColor marks a solid choice.
	FairColor      = color.New(color.FgYellow)            // FairColor marks a middling choice.
	PoorColor      = color.New(color.FgRed)               // PoorColor marks a weak choice.
)

// Notice colors.
var (
	infoColor  = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
)

// GetColorLabel returns a colored text label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(percentage float64) string {
	text := schema.GetPlainLabel(percentage)

	switch text {
	case schema.ExcellentValue:
		return ExcellentColor.Sprint(text)
	case schema.GoodValue:
		return GoodColor.Sprint(text)
	case schema.FairValue:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateName truncates a display name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for "..." and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ConsoleNotifier prints transient notices, one per line.
type ConsoleNotifier struct {
	Out   io.Writer // defaults to os.Stderr
	Quiet bool      // drop notices, e.g. while stdio carries MCP traffic
}

var _ Notifier = &ConsoleNotifier{} // Compile-time check

// Notify implements the Notifier interface.
func (n *ConsoleNotifier) Notify(level schema.NoticeLevel, message string) {
	if n.Quiet {
		return
	}
	out := n.Out
	if out == nil {
		out = os.Stderr
	}
	var c *color.Color
	switch level {
	case schema.ErrorNotice:
		c = errorColor
	case schema.WarnNotice:
		c = warnColor
	default:
		c = infoColor
	}
	_, _ = c.Fprintln(out, message)
}
