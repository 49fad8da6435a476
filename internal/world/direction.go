package world

import (
	"strings"

	"github.com/lawnchairsociety/castaway/internal/names"
)

// Direction is one of the six exit directions a room can have.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	Up
	Down

	numDirections = 6
)

// Directions lists every direction in display order.
var Directions = [numDirections]Direction{North, East, South, West, Up, Down}

var directionCodes = [numDirections]string{
	North: "N",
	South: "S",
	East:  "E",
	West:  "O",
	Up:    "U",
	Down:  "D",
}

// aliases maps every accepted spelling (folded) to its direction.
var aliases = map[string]Direction{
	"n": North, "nord": North, "north": North,
	"s": South, "sud": South, "south": South,
	"e": East, "est": East, "east": East,
	"o": West, "ouest": West, "w": West, "west": West,
	"u": Up, "up": Up, "haut": Up,
	"d": Down, "down": Down, "bas": Down,
}

// String returns the one-letter code shown to players.
func (d Direction) String() string {
	if d < 0 || d >= numDirections {
		return "?"
	}
	return directionCodes[d]
}

// ParseDirection normalizes a player-typed direction or alias.
func ParseDirection(s string) (Direction, bool) {
	d, ok := aliases[names.Key(s)]
	return d, ok
}

// JoinDirections renders directions as "N, E, O".
func JoinDirections(dirs []Direction) string {
	codes := make([]string, len(dirs))
	for i, d := range dirs {
		codes[i] = d.String()
	}
	return strings.Join(codes, ", ")
}
