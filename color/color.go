// Package color holds the palette reel renders with.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from an ANSI index or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI
var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Purple   = New("5")
	Cyan     = New("6")
	HiRed    = New("9")
	HiPurple = New("13")
	HiCyan   = New("14")
)

// Transport states. Each maps to the label it colors in the player view.
var (
	Playing = Green
	Paused  = Yellow
	Seeking = New("#ffb703")
	Looping = Cyan
	Failure = Red
)

// Accents for the seek bar gradient, spinner and banners.
var (
	Accent     = New("#cba6f7")
	Secondary  = New("#b4befe")
	BannerText = New("230")
	Banner     = New("62")
)
