package npc

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/game/registry"
	"github.com/cory-johannsen/wildone/internal/game/world"
)

// Registry holds the base monsters and the live traders.
//
// Base monsters are never handed out; Spawn always returns a fresh clone.
// Traders are shared: the same *entity.Trader is returned for every lookup so
// its stock persists between visits.
type Registry struct {
	monsters *registry.Registry[int, *entity.Monster]
	traders  *registry.Registry[int, *entity.Trader]
	items    *item.Registry
	dice     *dice.Service
	logger   *zap.Logger
}

// NewRegistry returns an empty Registry.
//
// Precondition: items, d and logger must be non-nil.
func NewRegistry(items *item.Registry, d *dice.Service, logger *zap.Logger) *Registry {
	return &Registry{
		monsters: registry.New[int, *entity.Monster]("monster"),
		traders:  registry.New[int, *entity.Trader]("trader"),
		items:    items,
		dice:     d,
		logger:   logger,
	}
}

// Load registers every template in f.
//
// Postcondition: referenced item ids must exist; otherwise the error wraps
// registry.ErrMissingTemplate.
func (r *Registry) Load(f *TemplateFile) error {
	for _, m := range f.Monsters {
		if err := r.AddMonster(m); err != nil {
			return err
		}
	}
	for _, t := range f.Traders {
		if err := r.AddTrader(t); err != nil {
			return err
		}
	}
	return nil
}

// AddMonster builds the base monster for tmpl and registers it.
func (r *Registry) AddMonster(tmpl *MonsterTemplate) error {
	weapon, err := r.items.Create(tmpl.WeaponID)
	if err != nil {
		return fmt.Errorf("monster %d weapon: %w", tmpl.ID, err)
	}
	for _, l := range tmpl.Loot {
		if !r.items.Has(l.ItemID) {
			return fmt.Errorf("monster %d loot: item %d: %w", tmpl.ID, l.ItemID, registry.ErrMissingTemplate)
		}
	}
	attrs := []*entity.Attribute{{
		Key:           entity.DexterityKey,
		DisplayName:   "Dexterity",
		Notation:      "3d6",
		BaseValue:     tmpl.Dexterity,
		ModifiedValue: tmpl.Dexterity,
	}}
	m := entity.NewMonster(tmpl.ID, tmpl.Name, tmpl.MaxHP, attrs, weapon, tmpl.RewardXP, tmpl.Gold)
	for _, l := range tmpl.Loot {
		m.AddItemToLootTable(l.ItemID, l.Percentage)
	}
	return r.monsters.Register(tmpl.ID, m)
}

// AddTrader builds a trader stocked with one fresh instance per unit of each
// inventory line and registers it.
func (r *Registry) AddTrader(tmpl *TraderTemplate) error {
	t := entity.NewTrader(tmpl.ID, tmpl.Name)
	for _, q := range tmpl.Inventory {
		for range q.Quantity {
			it, err := r.items.Create(q.ItemID)
			if err != nil {
				return fmt.Errorf("trader %d stock: %w", tmpl.ID, err)
			}
			t.AddItemToInventory(it)
		}
	}
	return r.traders.Register(tmpl.ID, t)
}

// HasMonster reports whether monster id is registered.
func (r *Registry) HasMonster(id int) bool {
	_, ok := r.monsters.Lookup(id)
	return ok
}

// Trader returns the shared trader with id.
func (r *Registry) Trader(id int) (*entity.Trader, error) { return r.traders.Get(id) }

// Spawn returns a fresh monster cloned from base monster id, with loot rolled
// into its inventory.
//
// Postcondition: the error wraps registry.ErrMissingTemplate for unknown ids.
func (r *Registry) Spawn(id int) (*entity.Monster, error) {
	base, err := r.monsters.Get(id)
	if err != nil {
		return nil, err
	}
	m := base.Clone()
	m.InstanceID = uuid.NewString()
	for _, itemID := range RollLoot(m.LootTable, r.dice) {
		it, err := r.items.Create(itemID)
		if err != nil {
			return nil, err
		}
		m.AddItemToInventory(it)
	}
	r.logger.Debug("monster spawned",
		zap.Int("monster_id", id),
		zap.String("instance_id", m.InstanceID),
		zap.Int("loot", m.Inventory().Len()),
	)
	return m, nil
}

// MonsterAt rolls an encounter for loc.
//
// Postcondition: returns (nil, nil) when loc has no encounter table.
func (r *Registry) MonsterAt(loc *world.Location) (*entity.Monster, error) {
	id, ok := SelectEncounter(loc.Monsters, r.dice)
	if !ok {
		return nil, nil
	}
	return r.Spawn(id)
}
