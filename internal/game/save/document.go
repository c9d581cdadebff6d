// Package save converts a running game to and from its persisted form.
package save

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrCorruptSaveFile is returned when saved data cannot be decoded or is
// missing required fields.
var ErrCorruptSaveFile = errors.New("corrupt save file")

// ErrSaveFileNotFound is returned when a save slot does not exist.
var ErrSaveFileNotFound = errors.New("save file not found")

// Attribute is a persisted player attribute.
type Attribute struct {
	Key           string `json:"key"`
	DisplayName   string `json:"display_name"`
	Notation      string `json:"dice_notation"`
	BaseValue     int    `json:"base_value"`
	ModifiedValue int    `json:"modified_value"`
}

// QuestRecord is a persisted quest status.
type QuestRecord struct {
	QuestID   int  `json:"quest_id"`
	Completed bool `json:"is_completed"`
}

// PlayerRecord is the persisted player.
type PlayerRecord struct {
	Name             string        `json:"name"`
	ExperiencePoints int           `json:"experience_points"`
	MaximumHitPoints int           `json:"maximum_hit_points"`
	CurrentHitPoints int           `json:"current_hit_points"`
	Gold             int           `json:"gold"`
	Attributes       []Attribute   `json:"attributes"`
	Inventory        []int         `json:"inventory"`
	Quests           []QuestRecord `json:"quests"`
	Recipes          []int         `json:"recipes"`
}

// Document is the persisted game: the player and where they stand.
type Document struct {
	Player *PlayerRecord `json:"player"`
	X      int           `json:"x_coordinate"`
	Y      int           `json:"y_coordinate"`
}

// NewSlot returns a fresh save slot name.
func NewSlot() string { return uuid.NewString() }

// Validate reports every missing or out-of-range field.
//
// Postcondition: the error wraps ErrCorruptSaveFile.
func (d *Document) Validate() error {
	var errs []error
	p := d.Player
	if p == nil {
		return fmt.Errorf("%w: player missing", ErrCorruptSaveFile)
	}
	if p.Name == "" {
		errs = append(errs, errors.New("player.name must not be empty"))
	}
	if p.ExperiencePoints < 0 || p.Gold < 0 {
		errs = append(errs, errors.New("player.experience_points and player.gold must be >= 0"))
	}
	if p.MaximumHitPoints < 1 {
		errs = append(errs, errors.New("player.maximum_hit_points must be >= 1"))
	}
	if p.CurrentHitPoints < 1 || p.CurrentHitPoints > p.MaximumHitPoints {
		errs = append(errs, fmt.Errorf("player.current_hit_points must be in [1, %d]", p.MaximumHitPoints))
	}
	for i, a := range p.Attributes {
		if a.Key == "" {
			errs = append(errs, fmt.Errorf("player.attributes[%d].key must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrCorruptSaveFile, errors.Join(errs...))
	}
	return nil
}

// Keys every saved document must carry. A null value counts as missing.
var (
	documentKeys  = []string{"player", "x_coordinate", "y_coordinate"}
	playerKeys    = []string{"name", "experience_points", "maximum_hit_points", "current_hit_points", "gold", "attributes", "inventory", "quests", "recipes"}
	attributeKeys = []string{"key", "display_name", "dice_notation", "base_value", "modified_value"}
	questKeys     = []string{"quest_id", "is_completed"}
)

// missingKeys decodes data as an object and names every key of keys that is
// absent or null, prefixed with path.
func missingKeys(data json.RawMessage, path string, keys []string) ([]error, map[string]json.RawMessage) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return []error{fmt.Errorf("%s must be an object", path)}, nil
	}
	var errs []error
	for _, k := range keys {
		if v, ok := obj[k]; !ok || string(v) == "null" {
			errs = append(errs, fmt.Errorf("%s%s missing", path, k))
		}
	}
	return errs, obj
}

// checkRequired reports every required key absent from a raw document.
func checkRequired(data []byte) error {
	errs, doc := missingKeys(data, "document.", documentKeys)
	if doc == nil || len(errs) > 0 {
		return errors.Join(errs...)
	}
	errs, player := missingKeys(doc["player"], "player.", playerKeys)
	if player == nil {
		return errors.Join(errs...)
	}
	errs = append(errs, missingInList(player["attributes"], "player.attributes", attributeKeys)...)
	errs = append(errs, missingInList(player["quests"], "player.quests", questKeys)...)
	return errors.Join(errs...)
}

func missingInList(data json.RawMessage, path string, keys []string) []error {
	if data == nil {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		return []error{fmt.Errorf("%s must be a list", path)}
	}
	var errs []error
	for i, entry := range list {
		e, _ := missingKeys(entry, fmt.Sprintf("%s[%d].", path, i), keys)
		errs = append(errs, e...)
	}
	return errs
}

// Decode parses and validates a saved document.
//
// Postcondition: on failure the error wraps ErrCorruptSaveFile. Every field
// of the document, the player, each attribute and each quest is required.
func Decode(data []byte) (*Document, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrCorruptSaveFile)
	}
	if err := checkRequired(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSaveFile, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSaveFile, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode renders doc as indented JSON.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding save: %w", err)
	}
	return data, nil
}
