package entity

// Theme maps marks to the glyphs a user sees on the board.
type Theme struct {
	ID    string
	X     string
	O     string
	Empty string
}

const DefaultThemeID = "classic"

// Themes - the built-in catalog, in picker order.
var Themes = []Theme{
	{ID: "classic", X: "❌", O: "⭕", Empty: "⬜"},
	{ID: "hearts", X: "❤️", O: "💙", Empty: "🤍"},
	{ID: "animals", X: "🐱", O: "🐶", Empty: "⬜"},
	{ID: "fruits", X: "🍎", O: "🍊", Empty: "⬜"},
	{ID: "space", X: "🌟", O: "🌙", Empty: "⬛"},
	{ID: "emoji", X: "😎", O: "🤓", Empty: "😶"},
}

// ThemeByID - resolves a theme identifier, falling back to classic for
// unknown or unset identifiers.
func ThemeByID(id string) Theme {
	for _, theme := range Themes {
		if theme.ID == id {
			return theme
		}
	}

	return Themes[0]
}

func KnownTheme(id string) bool {
	for _, theme := range Themes {
		if theme.ID == id {
			return true
		}
	}

	return false
}

func (that Theme) Glyph(mark Mark) string {
	switch mark {
	case MarkX:
		return that.X
	case MarkO:
		return that.O
	default:
		return that.Empty
	}
}
