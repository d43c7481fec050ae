// Package styles provides shared lipgloss v2 styles for the revdiff TUI.
package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Addition   color.Color
	Deletion   color.Color
	Warning    color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Addition:   lipgloss.Color("#9ece6a"),
		Deletion:   lipgloss.Color("#f7768e"),
		Warning:    lipgloss.Color("#e0af68"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Addition:   lipgloss.Color("#b8bb26"),
		Deletion:   lipgloss.Color("#fb4934"),
		Warning:    lipgloss.Color("#fabd2f"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Color exports for direct use.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorAddition   color.Color
	ColorDeletion   color.Color
	ColorWarning    color.Color
)

// Style exports.
var (
	TitleStyle      lipgloss.Style
	MutedStyle      lipgloss.Style
	ForegroundStyle lipgloss.Style

	// Revision list pane.
	RevisionSelectedStyle lipgloss.Style
	RevisionNormalStyle   lipgloss.Style
	RevisionMetaStyle     lipgloss.Style

	// Diff pane.
	DiffAdditionStyle lipgloss.Style
	DiffDeletionStyle lipgloss.Style
	DiffContextStyle  lipgloss.Style
	DiffHeaderStyle   lipgloss.Style
	DiffStatsStyle    lipgloss.Style

	// Hint affordances.
	HintBarStyle    lipgloss.Style
	HintCountStyle  lipgloss.Style
	HintMutedStyle  lipgloss.Style
	PaneBorderStyle lipgloss.Style
	PaneFocusStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorAddition = p.Addition
	ColorDeletion = p.Deletion
	ColorWarning = p.Warning

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ForegroundStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)

	RevisionSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	RevisionNormalStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	RevisionMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	DiffAdditionStyle = lipgloss.NewStyle().
		Foreground(ColorAddition).
		Background(Dim(ColorAddition, 0.75))
	DiffDeletionStyle = lipgloss.NewStyle().
		Foreground(ColorDeletion).
		Background(Dim(ColorDeletion, 0.75)).
		Strikethrough(true)
	DiffContextStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DiffHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DiffStatsStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	HintBarStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	HintCountStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	HintMutedStyle = lipgloss.NewStyle().
		Foreground(Dim(ColorPrimary, 0.4))

	PaneBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted)
	PaneFocusStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary)
}

// Dim blends c toward the active background by amount (0 keeps c, 1 is
// fully background). Used for subdued change-region backgrounds.
func Dim(c color.Color, amount float64) color.Color {
	from, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	to, ok := colorful.MakeColor(ColorBackground)
	if !ok {
		return c
	}
	return lipgloss.Color(from.BlendLab(to, amount).Hex())
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
