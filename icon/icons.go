package icon

// Icon identifies a symbol.
type Icon int

const (
	Play Icon = iota + 1
	Pause
	Loop
	Seek
	End
	Success
	Fail
	Progress
)

var icons = map[Icon]map[Variant]string{
	Play: {
		Emoji:   "▶️",
		Nerd:    "",
		Plain:   ">",
		Kaomoji: "(＾▽＾)",
		Squares: "▶",
	},
	Pause: {
		Emoji:   "⏸️",
		Nerd:    "",
		Plain:   "||",
		Kaomoji: "(－_－) zzZ",
		Squares: "⏸",
	},
	Loop: {
		Emoji:   "🔁",
		Nerd:    "",
		Plain:   "@",
		Kaomoji: "(ↁ_ↁ)",
		Squares: "↻",
	},
	Seek: {
		Emoji:   "⏩",
		Nerd:    "",
		Plain:   ">>",
		Kaomoji: "ε=ε=(ノ≧∇≦)ノ",
		Squares: "⏵",
	},
	End: {
		Emoji:   "🏁",
		Nerd:    "",
		Plain:   "#",
		Kaomoji: "(￣ー￣)ゞ",
		Squares: "■",
	},
	Success: {
		Emoji:   "🎉",
		Nerd:    "",
		Plain:   "+",
		Kaomoji: "(ᵔ◡ᵔ)",
		Squares: "▣",
	},
	Fail: {
		Emoji:   "💀",
		Nerd:    "",
		Plain:   "x",
		Kaomoji: "(×_×)",
		Squares: "▨",
	},
	Progress: {
		Emoji:   "⏳",
		Nerd:    "",
		Plain:   "~",
		Kaomoji: "(o_O)",
		Squares: "▤",
	},
}
