package rendering

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nathanieltooley/pokeduel/oracle"
)

var typeColors = map[string]lipgloss.Color{
	oracle.TYPENAME_NORMAL:   lipgloss.Color("#A8A77A"),
	oracle.TYPENAME_FIRE:     lipgloss.Color("#EE8130"),
	oracle.TYPENAME_WATER:    lipgloss.Color("#6390F0"),
	oracle.TYPENAME_ELECTRIC: lipgloss.Color("#F7D02C"),
	oracle.TYPENAME_GRASS:    lipgloss.Color("#7AC74C"),
	oracle.TYPENAME_ICE:      lipgloss.Color("#96D9D6"),
	oracle.TYPENAME_FIGHTING: lipgloss.Color("#C22E28"),
	oracle.TYPENAME_POISON:   lipgloss.Color("#A33EA1"),
	oracle.TYPENAME_GROUND:   lipgloss.Color("#E2BF65"),
	oracle.TYPENAME_FLYING:   lipgloss.Color("#A98FF3"),
	oracle.TYPENAME_PSYCHIC:  lipgloss.Color("#F95587"),
	oracle.TYPENAME_BUG:      lipgloss.Color("#A6B91A"),
	oracle.TYPENAME_ROCK:     lipgloss.Color("#B6A136"),
	oracle.TYPENAME_GHOST:    lipgloss.Color("#735797"),
	oracle.TYPENAME_DRAGON:   lipgloss.Color("#6F35FC"),
	oracle.TYPENAME_DARK:     lipgloss.Color("#705746"),
	oracle.TYPENAME_STEEL:    lipgloss.Color("#B7B7CE"),
	oracle.TYPENAME_FAIRY:    lipgloss.Color("#D685AD"),
}

// TypeColor returns the colour used for an elemental type. Unknown types are grey.
func TypeColor(typeName string) lipgloss.Color {
	color, ok := typeColors[typeName]
	if !ok {
		return lipgloss.Color("#888888")
	}

	return color
}

// TypeStyle renders text on the type's colour with readable text on top
func TypeStyle(typeName string) lipgloss.Style {
	background := TypeColor(typeName)
	return lipgloss.NewStyle().Background(background).Foreground(BestTextColor(background))
}
