package console

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/wildone/internal/game/command"
	"github.com/cory-johannsen/wildone/internal/game/inventory"
	"github.com/cory-johannsen/wildone/internal/game/item"
	"github.com/cory-johannsen/wildone/internal/game/quest"
	"github.com/cory-johannsen/wildone/internal/game/world"
)

func (c *Console) move(name string) {
	dir, err := world.ParseDirection(name)
	if err != nil {
		c.printf("You don't know how to '%s'.", name)
		return
	}
	before := c.cfg.Game.Location()
	c.cfg.Game.Move(dir)
	if c.cfg.Game.Location() == before {
		c.println("You cannot go that way.")
		return
	}
	c.header()
}

// header prints the location name and description.
func (c *Console) header() {
	loc := c.cfg.Game.Location()
	c.println("")
	c.println(loc.Name)
	if loc.Description != "" {
		c.println(loc.Description)
	}
}

func (c *Console) look() {
	c.header()
	g := c.cfg.Game
	if m := g.Monster(); m != nil {
		c.printf("There is a %s here (%s).", strings.ToLower(m.Name()), m.HealthDescription())
	}
	if g.HasTrader() {
		c.printf("%s is here to trade.", g.Trader().Name())
	}
	if g.Dialogue() != nil {
		c.println("Someone here wants to talk.")
	}
	c.exits()
}

func (c *Console) exits() {
	exits := c.cfg.Game.Exits()
	if len(exits) == 0 {
		c.println("There is no way out.")
		return
	}
	names := make([]string, len(exits))
	for i, d := range exits {
		names[i] = string(d)
	}
	c.printf("Exits: %s", strings.Join(names, ", "))
}

func (c *Console) talk() {
	cur := c.cfg.Game.Dialogue()
	if cur == nil {
		c.println("There is no one to talk to here.")
		return
	}
	if cur.Done() {
		cur.Reset()
	}
	c.println(cur.Text())
	c.options()
}

func (c *Console) options() {
	cur := c.cfg.Game.Dialogue()
	if cur == nil || cur.Done() {
		return
	}
	for i, opt := range cur.Options() {
		c.printf("  %d. %s", i+1, opt)
	}
}

func (c *Console) choose(p command.ParseResult) {
	n, ok := p.Number()
	if !ok {
		c.println("Choose which number?")
		return
	}
	c.cfg.Game.ChooseDialogue(n - 1)
	c.flush()
	c.options()
}

func (c *Console) use() {
	if c.cfg.Game.Player().CurrentConsumable() == nil {
		c.println("You have nothing ready to use.")
		return
	}
	c.cfg.Game.UseCurrentConsumable()
}

func (c *Console) status() {
	p := c.cfg.Game.Player()
	c.printf("%s, level %d", p.Name(), p.Level())
	c.printf("Hit points: %s", p.HitPoints())
	c.printf("Experience: %d", p.ExperiencePoints())
	c.printf("Gold: %d", p.Gold())
	for _, a := range p.Attributes() {
		c.printf("  %-14s %d", a.DisplayName, a.ModifiedValue)
	}
	if w := p.CurrentWeapon(); w != nil {
		c.printf("Wielding: %s", w.Name)
	}
	if r := p.CurrentConsumable(); r != nil {
		c.printf("Ready: %s", r.Name)
	}
}

func (c *Console) inventory() {
	grouped := c.cfg.Game.Player().Inventory().Grouped()
	if len(grouped) == 0 {
		c.println("You are not carrying anything.")
		return
	}
	c.println("You are carrying:")
	for _, g := range grouped {
		c.printf("  %d %s", g.Quantity, g.Item.Name)
	}
}

func (c *Console) quests() {
	statuses := c.cfg.Game.Player().Quests()
	if len(statuses) == 0 {
		c.println("You have no quests.")
		return
	}
	for _, s := range statuses {
		state := "in progress"
		if s.Completed {
			state = "complete"
		}
		c.printf("%s (%s)", s.Quest.Name, state)
	}
}

func (c *Console) quantities(qs []inventory.ItemQuantity) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = fmt.Sprintf("%d %s", q.Quantity, c.cfg.Items.Name(q.ItemID))
	}
	return strings.Join(parts, ", ")
}

func (c *Console) recipes() {
	known := c.cfg.Game.Player().Recipes()
	if len(known) == 0 {
		c.println("You do not know any recipes.")
		return
	}
	for i, r := range known {
		c.printf("  %d. %s: %s", i+1, r.Name, c.quantities(r.Ingredients))
	}
}

// recipe finds a known recipe by list number or case-insensitive name.
func (c *Console) recipe(p command.ParseResult) (*quest.Recipe, bool) {
	known := c.cfg.Game.Player().Recipes()
	if n, ok := p.Number(); ok {
		if n <= len(known) {
			return known[n-1], true
		}
		return nil, false
	}
	for _, r := range known {
		if strings.EqualFold(r.Name, p.RawArgs) {
			return r, true
		}
	}
	return nil, false
}

func (c *Console) craft(p command.ParseResult) {
	if p.RawArgs == "" {
		c.println(usage("craft"))
		return
	}
	r, ok := c.recipe(p)
	if !ok {
		c.println("You do not know that recipe.")
		return
	}
	c.cfg.Game.CraftItemUsing(r)
}

// typeIn returns the type id of the first item in inv named name, or 0.
// Session operations narrate the failure for an unknown type id.
func typeIn(inv inventory.Inventory, name string) int {
	for _, it := range inv.Items() {
		if strings.EqualFold(it.Name, name) {
			return it.TypeID
		}
	}
	return 0
}

func (c *Console) owned(name string) int {
	return typeIn(c.cfg.Game.Player().Inventory(), name)
}

func (c *Console) wield(p command.ParseResult) {
	if p.RawArgs == "" {
		c.println(usage("wield"))
		return
	}
	c.cfg.Game.EquipWeapon(c.owned(p.RawArgs))
}

func (c *Console) ready(p command.ParseResult) {
	if p.RawArgs == "" {
		c.println(usage("ready"))
		return
	}
	c.cfg.Game.EquipConsumable(c.owned(p.RawArgs))
}

func (c *Console) wares() {
	g := c.cfg.Game
	if !g.HasTrader() {
		c.println("There is no one to trade with here.")
		return
	}
	t := g.Trader()
	grouped := t.Inventory().Grouped()
	if len(grouped) == 0 {
		c.printf("%s has nothing for sale.", t.Name())
		return
	}
	c.printf("%s sells:", t.Name())
	for _, row := range grouped {
		c.printf("  %d %s, %s each", row.Quantity, row.Item.Name, price(row.Item))
	}
}

func price(it *item.Item) string {
	if it.Price == 1 {
		return "1 gold"
	}
	return fmt.Sprintf("%d gold", it.Price)
}

func (c *Console) buy(p command.ParseResult) {
	if p.RawArgs == "" {
		c.println(usage("buy"))
		return
	}
	typeID := 0
	if t := c.cfg.Game.Trader(); t != nil {
		typeID = typeIn(t.Inventory(), p.RawArgs)
	}
	c.cfg.Game.BuyItem(typeID)
}

func (c *Console) sell(p command.ParseResult) {
	if p.RawArgs == "" {
		c.println(usage("sell"))
		return
	}
	c.cfg.Game.SellItem(c.owned(p.RawArgs))
}

func (c *Console) help() {
	c.println("Available commands:")
	byCategory := c.registry.CommandsByCategory()
	for _, cat := range command.CategoryOrder {
		cmds := byCategory[cat.Name]
		if len(cmds) == 0 {
			continue
		}
		c.printf("  %s:", cat.Label)
		for _, cmd := range cmds {
			name := cmd.Name
			if cmd.Usage != "" {
				name += " " + cmd.Usage
			}
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			c.printf("    %-18s %s%s", name, cmd.Help, aliases)
		}
	}
}
