package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - titles
	ColorSecondary Color = "86" // Cyan - table headers
)

// Result colors
const (
	ColorFail Color = "1" // Red - failed scenario or non-zero exit
	ColorPass Color = "2" // Green - passed scenario or zero exit
)

// UI semantic colors
const (
	ColorBorder Color = "240" // Dark gray
	ColorMuted  Color = "241" // Gray - secondary text
	ColorNormal Color = "250" // Default text
)
