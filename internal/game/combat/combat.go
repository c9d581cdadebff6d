// Package combat runs one encounter between the player and a monster.
package combat

// State is the phase of a Battle.
type State int

const (
	Initiated State = iota
	PlayerTurn
	OpponentTurn
	Victory
	Defeat
	Fled
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case Initiated:
		return "initiated"
	case PlayerTurn:
		return "player turn"
	case OpponentTurn:
		return "opponent turn"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Fled:
		return "fled"
	default:
		return "unknown"
	}
}

// Concluded reports whether the battle is over.
//
// Postcondition: Returns true iff s is Victory, Defeat or Fled.
func (s State) Concluded() bool {
	return s == Victory || s == Defeat || s == Fled
}

// Side identifies which combatant acts.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

// VictoryEvent describes a won battle.
type VictoryEvent struct {
	MonsterID  int
	Experience int
	Gold       int
	// Items are the type ids of the items taken from the monster.
	Items []int
}
