// Package world provides the game map: coordinate-addressed locations, their
// encounter tables, and the movement directions between them.
package world

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/wildone/internal/game/dialogue"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/quest"
)

// Direction is one of the four compass directions a player can move.
type Direction string

// Compass directions.
const (
	North Direction = "north"
	East  Direction = "east"
	South Direction = "south"
	West  Direction = "west"
)

// StandardDirections lists every movement direction.
var StandardDirections = []Direction{North, East, South, West}

// ParseDirection accepts a full direction name or its first letter.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// Offset returns the coordinate change for one step in d. North increases y.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction, or "" for an unknown direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return ""
	}
}

// Coordinate is a location's position on the map.
type Coordinate struct {
	X int
	Y int
}

// Step returns the coordinate one move away in d.
func (c Coordinate) Step(d Direction) Coordinate {
	dx, dy := d.Offset()
	return Coordinate{X: c.X + dx, Y: c.Y + dy}
}

// String renders the coordinate as "(x, y)".
func (c Coordinate) String() string { return fmt.Sprintf("(%d, %d)", c.X, c.Y) }

// MonsterEncounter is one row of a location's encounter table.
type MonsterEncounter struct {
	MonsterID            int
	ChanceOfEncountering int
}

// Location is one square of the map.
//
// Locations are fully built while the world loads and only read afterwards.
// The trader is the exception: its inventory changes as the player trades.
type Location struct {
	X           int
	Y           int
	Name        string
	Description string
	// Monsters is the weighted encounter table; empty means no encounters.
	Monsters []MonsterEncounter
	// Quests are offered to the player on arrival.
	Quests []*quest.Quest
	// Trader is nil when no trader works here.
	Trader *entity.Trader
	// Dialogue is the root of the conversation shown on arrival; nil for none.
	Dialogue *dialogue.Node
	// Script names a Lua hook run on arrival; empty for none.
	Script string
}

// Coordinate returns the location's position.
func (l *Location) Coordinate() Coordinate { return Coordinate{X: l.X, Y: l.Y} }

// AddMonster sets the encounter weight for monsterID, replacing an existing entry.
func (l *Location) AddMonster(monsterID, chance int) {
	for i, m := range l.Monsters {
		if m.MonsterID == monsterID {
			l.Monsters[i].ChanceOfEncountering = chance
			return
		}
	}
	l.Monsters = append(l.Monsters, MonsterEncounter{MonsterID: monsterID, ChanceOfEncountering: chance})
}

// HasMonsters reports whether the location has an encounter table.
func (l *Location) HasMonsters() bool { return len(l.Monsters) > 0 }
