// Package icon renders transport and status symbols in the variant chosen by icons.variant:
// emoji, nerd-font glyphs, plain ASCII, kaomoji or Unicode squares.
package icon

import (
	"github.com/reel-cli/reel/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Variant is a family of glyphs.
type Variant string

const (
	Emoji   Variant = "emoji"
	Nerd    Variant = "nerd"
	Plain   Variant = "plain"
	Kaomoji Variant = "kaomoji"
	Squares Variant = "squares"
)

var variants = []Variant{Emoji, Nerd, Plain, Kaomoji, Squares}

// AvailableVariants lists the icons.variant values.
func AvailableVariants() []string {
	return lo.Map(variants, func(v Variant, _ int) string { return string(v) })
}

// CurrentVariant returns the configured variant. Unknown values render nothing.
func CurrentVariant() Variant {
	return Variant(viper.GetString(key.IconsVariant))
}

// In renders i in variant v.
func (i Icon) In(v Variant) string {
	return icons[i][v]
}

// Get renders i in the configured variant.
func Get(i Icon) string {
	return i.In(CurrentVariant())
}
