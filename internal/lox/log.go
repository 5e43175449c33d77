package lox

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/log/v2"
)

// width caps the level labels at 5 characters so the columns line up.
const width = 5

// levelColors is the palette for the level labels, debug is dimmed because
// the pipeline is chatty at debug level.
var levelColors = map[log.Level]color.Color{
	log.DebugLevel: lipgloss.Color("245"),
	log.InfoLevel:  lipgloss.Color("42"),
	log.WarnLevel:  lipgloss.Color("214"),
	log.ErrorLevel: lipgloss.Color("204"),
	log.FatalLevel: lipgloss.Color("134"),
}

// defaultLogStyles returns the styles for the application logger.
func defaultLogStyles() *log.Styles {
	styles := log.DefaultStyles()

	for level, color := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(strings.ToUpper(level.String())).
			Bold(true).
			MaxWidth(width).
			Foreground(color)
	}

	styles.Prefix = lipgloss.NewStyle().Bold(true).Faint(true)
	styles.Key = lipgloss.NewStyle().Faint(true)
	styles.Separator = lipgloss.NewStyle().Faint(true)

	return styles
}
