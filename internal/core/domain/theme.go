package domain

// Theme selects a reading color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeStyleID is the stable identifier of the injected theme stylesheet.
// Reinjecting under the same id replaces the previous sheet.
const ThemeStyleID = "theme-style"

const lightStylesheet = `body { background: #ffffff; color: #1a1a1a; }
a { color: #1c7ed6; }`

const darkStylesheet = `body { background: #1a1b1e; color: #d8d8d8; }
a { color: #74c0fc; }
img { filter: brightness(0.85); }`

// Stylesheet returns the CSS injected into rendered sections for the theme.
func (t Theme) Stylesheet() string {
	if t == ThemeDark {
		return darkStylesheet
	}
	return lightStylesheet
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
