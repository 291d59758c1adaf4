package entity

import (
	"fmt"
	"math"
)

// EquipmentType is the slot an equipment card occupies.
type EquipmentType string

const (
	Head     EquipmentType = "Helma"
	Arm      EquipmentType = "Ruka"
	Body     EquipmentType = "Tělo"
	Modifier EquipmentType = "Bonus"
)

// EquipmentTypes lists the valid equipment types in display order.
var EquipmentTypes = []EquipmentType{Head, Arm, Body, Modifier}

// ParseEquipmentType validates s against the known equipment types.
func ParseEquipmentType(s string) (EquipmentType, error) {
	for _, t := range EquipmentTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: equipment type %q", ErrInvalidEnum, s)
}

// Bonus values double as rarity levels.
const (
	MinBonus = 1
	MaxBonus = 5
)

// Monster levels are limited to the difficulty table.
const (
	MinLevel = 1
	MaxLevel = 34
)

// Equipment is an item card. Condition is empty when the card has none.
type Equipment struct {
	Name      string
	Bonus     int
	Type      EquipmentType
	Condition string
	Amount    int
}

func (e Equipment) Kind() Kind    { return KindEquipment }
func (e Equipment) Label() string { return e.Name }
func (e Equipment) Quantity() int { return e.Amount }

// HasCondition reports whether the card carries a usage condition.
func (e Equipment) HasCondition() bool { return e.Condition != "" }

var equipmentColumns = []string{"name", "bonus", "type", "condition", "amount"}

// ParseEquipment parses a row of name, bonus, type, condition and amount.
func ParseEquipment(cells []string) (Equipment, error) {
	r, err := newRow(KindEquipment, equipmentColumns, cells)
	if err != nil {
		return Equipment{}, err
	}
	name, err := r.name(0)
	if err != nil {
		return Equipment{}, err
	}
	bonus, err := r.integer(1, MinBonus, MaxBonus+1)
	if err != nil {
		return Equipment{}, err
	}
	typ, err := ParseEquipmentType(r.str(2))
	if err != nil {
		return Equipment{}, r.fail(2, err)
	}
	amount, err := r.integer(4, 0, math.MaxInt)
	if err != nil {
		return Equipment{}, err
	}
	return Equipment{
		Name:      name,
		Bonus:     bonus,
		Type:      typ,
		Condition: r.str(3),
		Amount:    amount,
	}, nil
}

// Monster is a monster card.
type Monster struct {
	Name   string
	Level  int
	Amount int
}

func (m Monster) Kind() Kind    { return KindMonster }
func (m Monster) Label() string { return m.Name }
func (m Monster) Quantity() int { return m.Amount }

var monsterColumns = []string{"name", "level", "amount"}

// ParseMonster parses a row of name, level and amount.
func ParseMonster(cells []string) (Monster, error) {
	r, err := newRow(KindMonster, monsterColumns, cells)
	if err != nil {
		return Monster{}, err
	}
	name, err := r.name(0)
	if err != nil {
		return Monster{}, err
	}
	level, err := r.integer(1, MinLevel, MaxLevel+1)
	if err != nil {
		return Monster{}, err
	}
	amount, err := r.integer(2, 0, math.MaxInt)
	if err != nil {
		return Monster{}, err
	}
	return Monster{Name: name, Level: level, Amount: amount}, nil
}

// Curse is a curse card with a free-text description.
type Curse struct {
	Name        string
	Description string
	Amount      int
}

func (c Curse) Kind() Kind    { return KindCurse }
func (c Curse) Label() string { return c.Name }
func (c Curse) Quantity() int { return c.Amount }

var curseColumns = []string{"name", "description", "amount"}

// ParseCurse parses a row of name, description and amount.
func ParseCurse(cells []string) (Curse, error) {
	r, err := newRow(KindCurse, curseColumns, cells)
	if err != nil {
		return Curse{}, err
	}
	name, err := r.name(0)
	if err != nil {
		return Curse{}, err
	}
	amount, err := r.integer(2, 0, math.MaxInt)
	if err != nil {
		return Curse{}, err
	}
	return Curse{Name: name, Description: r.str(1), Amount: amount}, nil
}

// Bonus is a one-shot bonus card.
type Bonus struct {
	Name   string
	Bonus  int
	Amount int
}

func (b Bonus) Kind() Kind    { return KindBonus }
func (b Bonus) Label() string { return b.Name }
func (b Bonus) Quantity() int { return b.Amount }

// The third column holds notes that are not printed.
var bonusColumns = []string{"name", "bonus", "note", "amount"}

// ParseBonus parses a row of name, bonus, an ignored note and amount.
func ParseBonus(cells []string) (Bonus, error) {
	r, err := newRow(KindBonus, bonusColumns, cells)
	if err != nil {
		return Bonus{}, err
	}
	name, err := r.name(0)
	if err != nil {
		return Bonus{}, err
	}
	bonus, err := r.integer(1, MinBonus, MaxBonus+1)
	if err != nil {
		return Bonus{}, err
	}
	amount, err := r.integer(3, 0, math.MaxInt)
	if err != nil {
		return Bonus{}, err
	}
	return Bonus{Name: name, Bonus: bonus, Amount: amount}, nil
}
