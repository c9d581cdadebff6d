package item

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/wildone/internal/game/dice"
)

// Combatant is the view of a living entity that item actions operate on.
type Combatant interface {
	Name() string
	IsPlayer() bool
	// Dexterity returns the modified DEX attribute, or 0 when absent.
	Dexterity() int
	TakeDamage(hitPoints int)
	Heal(hitPoints int)
}

// Action is behaviour attached to an item. Execute reports its narrative
// through report before applying its effect to target.
type Action interface {
	Execute(actor, target Combatant, report func(string))
}

// Subject renders c as a sentence subject: "You" or "The rat".
func Subject(c Combatant) string {
	if c.IsPlayer() {
		return "You"
	}
	return "The " + strings.ToLower(c.Name())
}

// object renders c as a sentence object; self is used when c is the player.
func object(c Combatant, self string) string {
	if c.IsPlayer() {
		return self
	}
	return "the " + strings.ToLower(c.Name())
}

func points(n int) string {
	if n > 1 {
		return fmt.Sprintf("%d points", n)
	}
	return fmt.Sprintf("%d point", n)
}

// AttackSucceeded resolves the contested DEX check used for both attacks and
// initiative:
//
//	roll(100) <= 50 + (attackerDEX² - targetDEX²)/10 + (roll(1d20) - 10)
//
// The division is exact (decimal); both sides are scaled by 10 so the
// comparison stays in integers. The d20 is rolled before the d100.
func AttackSucceeded(d *dice.Service, attackerDex, targetDex int) bool {
	dexterityOffset10 := attackerDex*attackerDex - targetDex*targetDex
	randomOffset := d.RollDice(20, 1, 0) - 10
	return 10*d.RollDice(100, 1, 0) <= 500+dexterityOffset10+10*randomOffset
}

// AttackWithWeapon damages the target by the weapon's damage notation when the
// contested DEX check succeeds.
type AttackWithWeapon struct {
	damage dice.Expression
	dice   *dice.Service
}

// NewAttackWithWeapon builds the action for a weapon.
//
// Postcondition: returns an error wrapping dice.ErrInvalidNotation when
// damage does not parse.
func NewAttackWithWeapon(d *dice.Service, damage string) (*AttackWithWeapon, error) {
	expr, err := dice.Parse(damage)
	if err != nil {
		return nil, err
	}
	return &AttackWithWeapon{damage: expr, dice: d}, nil
}

// Damage returns the damage notation.
func (a *AttackWithWeapon) Damage() string { return a.damage.String() }

// Execute reports a hit or miss, applying damage only on a hit.
func (a *AttackWithWeapon) Execute(actor, target Combatant, report func(string)) {
	actorName := Subject(actor)
	targetName := object(target, "you")
	if !AttackSucceeded(a.dice, actor.Dexterity(), target.Dexterity()) {
		report(fmt.Sprintf("%s missed %s.", actorName, targetName))
		return
	}
	damage := a.dice.RollExpression(a.damage).Total()
	report(fmt.Sprintf("%s hit %s for %s.", actorName, targetName, points(damage)))
	target.TakeDamage(damage)
}

// Heal restores a fixed number of hit points to the target.
type Heal struct {
	Amount int
}

// Execute reports the heal and applies it.
func (h Heal) Execute(actor, target Combatant, report func(string)) {
	report(fmt.Sprintf("%s heal %s for %s.", Subject(actor), object(target, "yourself"), points(h.Amount)))
	target.Heal(h.Amount)
}

// ScriptOutcome is what an item script asks the engine to do.
type ScriptOutcome struct {
	Message string
	Damage  int
	Heal    int
}

// ScriptRunner runs a named item hook. Implemented by the Lua scripting manager.
type ScriptRunner interface {
	RunItemHook(hook string, actor, target Combatant) (ScriptOutcome, error)
}

// ScriptedAction delegates an item's behaviour to a script hook.
type ScriptedAction struct {
	Hook   string
	Runner ScriptRunner
}

// Execute runs the hook, reports its message, then applies damage and healing.
// A failing hook does nothing; the runner logs the failure.
func (s ScriptedAction) Execute(actor, target Combatant, report func(string)) {
	out, err := s.Runner.RunItemHook(s.Hook, actor, target)
	if err != nil {
		return
	}
	if out.Message != "" {
		report(out.Message)
	}
	if out.Damage > 0 {
		target.TakeDamage(out.Damage)
	}
	if out.Heal > 0 {
		target.Heal(out.Heal)
	}
}
