package entity

import (
	"slices"

	"github.com/cory-johannsen/wildone/internal/game/message"
	"github.com/cory-johannsen/wildone/internal/game/quest"
)

// ExperiencePerLevel is the experience needed to gain one level.
const ExperiencePerLevel = 100

// HitPointsPerLevel is the maximum hit points granted per level on level change.
const HitPointsPerLevel = 10

// Player is the player character.
type Player struct {
	Living

	xp      int
	quests  []*quest.Status
	recipes []*quest.Recipe

	// LeveledUp fires with the new level whenever the level changes.
	LeveledUp message.Signal[int]
}

// NewPlayer creates a player.
//
// Postcondition: Level() == xp/100+1; when that level is not 1,
// MaximumHitPoints() == Level()*10.
func NewPlayer(name string, xp, maxHP, currentHP int, attrs []*Attribute, gold int) *Player {
	p := &Player{Living: newLiving(name, true, maxHP, currentHP, gold, attrs)}
	p.setExperience(xp)
	return p
}

// ExperiencePoints returns the player's experience.
func (p *Player) ExperiencePoints() int { return p.xp }

// AddExperience adds n experience, recomputing level and maximum hit points.
func (p *Player) AddExperience(n int) {
	p.setExperience(p.xp + n)
}

func (p *Player) setExperience(xp int) {
	p.xp = max(xp, 0)
	previous := p.level
	p.level = p.xp/ExperiencePerLevel + 1
	if p.level != previous {
		p.maxHP = p.level * HitPointsPerLevel
		p.hp = min(p.hp, p.maxHP)
		p.LeveledUp.Publish(p.level)
	}
}

// Quests returns the player's quest statuses in the order they were received.
func (p *Player) Quests() []*quest.Status { return slices.Clone(p.quests) }

// QuestStatus returns the player's status for quest id.
func (p *Player) QuestStatus(id int) (*quest.Status, bool) {
	for _, s := range p.quests {
		if s.Quest.ID == id {
			return s, true
		}
	}
	return nil, false
}

// AddQuest records q as received and incomplete. A quest already held is
// returned unchanged.
func (p *Player) AddQuest(q *quest.Quest) *quest.Status {
	if s, ok := p.QuestStatus(q.ID); ok {
		return s
	}
	s := quest.NewStatus(q)
	p.quests = append(p.quests, s)
	return s
}

// RestoreQuest appends a quest status loaded from a save.
func (p *Player) RestoreQuest(s *quest.Status) {
	if _, ok := p.QuestStatus(s.Quest.ID); ok {
		return
	}
	p.quests = append(p.quests, s)
}

// Recipes returns the known recipes in the order they were learned.
func (p *Player) Recipes() []*quest.Recipe { return slices.Clone(p.recipes) }

// KnowsRecipe reports whether recipe id has been learned.
func (p *Player) KnowsRecipe(id int) bool {
	return slices.ContainsFunc(p.recipes, func(r *quest.Recipe) bool { return r.ID == id })
}

// LearnRecipe adds r unless a recipe with the same id is already known.
func (p *Player) LearnRecipe(r *quest.Recipe) {
	if !p.KnowsRecipe(r.ID) {
		p.recipes = append(p.recipes, r)
	}
}
