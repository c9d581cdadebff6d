package save

import (
	"fmt"

	"github.com/cory-johannsen/wildone/internal/game/character"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/game/quest"
	"github.com/cory-johannsen/wildone/internal/game/session"
	"github.com/cory-johannsen/wildone/internal/game/world"
)

// ItemFactory creates item instances by type id.
type ItemFactory interface {
	Create(typeID int) (*item.Item, error)
}

// QuestCatalog resolves quest and recipe ids.
type QuestCatalog interface {
	Quest(id int) (*quest.Quest, error)
	Recipe(id int) (*quest.Recipe, error)
}

// Capture snapshots the player and location of g.
func Capture(g *session.Game) *Document {
	p := g.Player()
	rec := &PlayerRecord{
		Name:             p.Name(),
		ExperiencePoints: p.ExperiencePoints(),
		MaximumHitPoints: p.MaximumHitPoints(),
		CurrentHitPoints: p.CurrentHitPoints(),
		Gold:             p.Gold(),
		Attributes:       []Attribute{},
		Inventory:        []int{},
		Quests:           []QuestRecord{},
		Recipes:          []int{},
	}
	for _, a := range p.Attributes() {
		rec.Attributes = append(rec.Attributes, Attribute{
			Key:           a.Key,
			DisplayName:   a.DisplayName,
			Notation:      a.Notation,
			BaseValue:     a.BaseValue,
			ModifiedValue: a.ModifiedValue,
		})
	}
	for _, it := range p.Inventory().Items() {
		rec.Inventory = append(rec.Inventory, it.TypeID)
	}
	for _, s := range p.Quests() {
		rec.Quests = append(rec.Quests, QuestRecord{QuestID: s.Quest.ID, Completed: s.Completed})
	}
	for _, r := range p.Recipes() {
		rec.Recipes = append(rec.Recipes, r.ID)
	}
	loc := g.Location()
	return &Document{Player: rec, X: loc.X, Y: loc.Y}
}

// Restore rebuilds the player described by doc and returns it with the
// coordinate it was saved at. The first weapon and consumable held are
// equipped.
//
// Postcondition: unknown item, quest or recipe ids produce an error wrapping
// registry.ErrMissingTemplate; invalid documents wrap ErrCorruptSaveFile.
func Restore(doc *Document, items ItemFactory, quests QuestCatalog) (*entity.Player, world.Coordinate, error) {
	if err := doc.Validate(); err != nil {
		return nil, world.Coordinate{}, err
	}
	rec := doc.Player
	attrs := make([]*entity.Attribute, 0, len(rec.Attributes))
	for _, a := range rec.Attributes {
		attrs = append(attrs, &entity.Attribute{
			Key:           a.Key,
			DisplayName:   a.DisplayName,
			Notation:      a.Notation,
			BaseValue:     a.BaseValue,
			ModifiedValue: a.ModifiedValue,
		})
	}
	p := entity.NewPlayer(rec.Name, rec.ExperiencePoints, rec.MaximumHitPoints, rec.CurrentHitPoints, attrs, rec.Gold)

	for _, id := range rec.Inventory {
		it, err := items.Create(id)
		if err != nil {
			return nil, world.Coordinate{}, fmt.Errorf("restoring inventory: %w", err)
		}
		p.AddItemToInventory(it)
	}
	for _, qr := range rec.Quests {
		q, err := quests.Quest(qr.QuestID)
		if err != nil {
			return nil, world.Coordinate{}, fmt.Errorf("restoring quests: %w", err)
		}
		p.RestoreQuest(&quest.Status{Quest: q, Completed: qr.Completed})
	}
	for _, id := range rec.Recipes {
		r, err := quests.Recipe(id)
		if err != nil {
			return nil, world.Coordinate{}, fmt.Errorf("restoring recipes: %w", err)
		}
		p.LearnRecipe(r)
	}
	character.EquipDefaults(p)
	return p, world.Coordinate{X: doc.X, Y: doc.Y}, nil
}
