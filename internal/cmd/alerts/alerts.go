// Package alerts prints short status lines for commands. Alerts go to
// stderr so that stdout stays clean for rankings piped into other tools.
package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a potential issue or important notice.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the marker printed before the message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return "✗"
	case LevelWarning:
		return "!"
	case LevelInfo:
		return "•"
	case LevelSuccess:
		return "✓"
	default:
		return "?"
	}
}

func (l Level) color() string {
	switch l {
	case LevelError:
		return "\033[31m"
	case LevelWarning:
		return "\033[33m"
	case LevelInfo:
		return "\033[36m"
	case LevelSuccess:
		return "\033[32m"
	default:
		return ""
	}
}

const reset = "\033[0m"

// Alert represents a status notification.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// New creates a new alert with the given level and message.
func New(level Level, format string, args ...any) *Alert {
	return &Alert{Level: level, Message: fmt.Sprintf(format, args...)}
}

// Success creates a success alert.
func Success(format string, args ...any) *Alert {
	return New(LevelSuccess, format, args...)
}

// Info creates an info alert.
func Info(format string, args ...any) *Alert {
	return New(LevelInfo, format, args...)
}

// Warning creates a warning alert.
func Warning(format string, args ...any) *Alert {
	return New(LevelWarning, format, args...)
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds indented detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the alert as a single line without color.
func (a *Alert) String() string {
	message := a.Level.Icon() + " " + a.Message
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// Writer prints alerts to an io.Writer.
type Writer struct {
	w     io.Writer
	color bool
	quiet bool
}

// NewWriter returns a Writer for w. Color is used only when w is a
// terminal and noColor is false.
func NewWriter(w io.Writer, noColor bool) *Writer {
	color := false
	if f, ok := w.(*os.File); ok && !noColor {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{w: w, color: color}
}

// Quiet suppresses info and success alerts.
func (w *Writer) Quiet(quiet bool) *Writer {
	w.quiet = quiet
	return w
}

// Write prints an alert and its details.
func (w *Writer) Write(a *Alert) {
	if w.quiet && (a.Level == LevelInfo || a.Level == LevelSuccess) {
		return
	}
	line := a.String()
	if w.color {
		line = a.Level.color() + line + reset
	}
	fmt.Fprintln(w.w, line)
	for _, d := range a.Details {
		fmt.Fprintf(w.w, "   %s\n", d)
	}
}
