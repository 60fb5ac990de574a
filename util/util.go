// Package util provides small domain-agnostic helpers shared across reel.
package util

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/reel-cli/reel/filesystem"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Quantify returns a pluralized string representation of a count and its associated labels.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Capitalize transforms the first rune of a string to its uppercase equivalent.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TerminalSize retrieves the current character dimensions of the terminal window.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// PrintErasable writes msg on the current stderr line and returns a func that blanks it again.
// Nothing is printed when stderr is not a terminal.
func PrintErasable(msg string) (erase func()) {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}

	_, _ = fmt.Fprintf(os.Stderr, "\r%s", msg)
	return func() {
		_, _ = fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Max returns the maximum value among arguments.
func Max[T constraints.Ordered](items ...T) (max T) {
	if len(items) == 0 {
		return
	}
	max = items[0]
	for _, item := range items[1:] {
		if item > max {
			max = item
		}
	}
	return
}

// Min returns the minimum value among arguments.
func Min[T constraints.Ordered](items ...T) (min T) {
	if len(items) == 0 {
		return
	}
	min = items[0]
	for _, item := range items[1:] {
		if item < min {
			min = item
		}
	}
	return
}

// Clamp bounds value to [lo, hi].
func Clamp[T constraints.Ordered](value, lo, hi T) T {
	return Max(lo, Min(value, hi))
}

// FormatDuration renders d as m:ss, or h:mm:ss past an hour. Negative values render as 0:00.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int(d / time.Second)
	hours, minutes, seconds := total/3600, (total/60)%60, total%60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// Ignore executes a function and explicitly discards its error return value.
func Ignore(f func() error) {
	_ = f()
}

// Delete recursively removes a file or directory using the virtualized filesystem API.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
