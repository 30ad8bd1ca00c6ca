package player

import "strings"

// MaxHealth caps healing effects.
const MaxHealth = 100

// Player is the mutable state of one adventurer: where they are, what
// they carry, and their vitals. Health, experience and level are carried
// state; no command ever decrements them.
type Player struct {
	Name       string   `json:"name"`
	Room       string   `json:"room"`
	Inventory  []string `json:"inventory"`
	Health     int      `json:"health"`
	Experience int      `json:"experience"`
	Level      int      `json:"level"`
}

// New creates a player in the given starting room with an empty inventory.
func New(startRoom string) *Player {
	return &Player{
		Name:      "Adventurer",
		Room:      startRoom,
		Inventory: make([]string, 0),
		Health:    MaxHealth,
		Level:     1,
	}
}

// AddItem appends an item to the inventory, preserving its original case.
// Duplicates are permitted; order is acquisition order.
func (p *Player) AddItem(name string) {
	p.Inventory = append(p.Inventory, name)
}

// RemoveItem removes the first case-insensitive match from the inventory.
// It reports whether anything was removed.
func (p *Player) RemoveItem(name string) bool {
	for i, it := range p.Inventory {
		if strings.EqualFold(it, name) {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// HasItem reports whether the inventory holds a case-insensitive match.
func (p *Player) HasItem(name string) bool {
	for _, it := range p.Inventory {
		if strings.EqualFold(it, name) {
			return true
		}
	}
	return false
}

// Heal restores health, capped at MaxHealth.
func (p *Player) Heal(amount int) {
	p.Health += amount
	if p.Health > MaxHealth {
		p.Health = MaxHealth
	}
}
