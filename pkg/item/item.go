package item

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Item describes one entry of the game's item catalog. Weapons carry a
// Damage value; consumables carry a Heal value and are removed on use.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       int    `json:"value,omitempty"`
	Usable      bool   `json:"usable,omitempty"`
	Consumable  bool   `json:"consumable,omitempty"`
	Damage      int    `json:"damage,omitempty"`
	Heal        int    `json:"heal,omitempty"`
}

// IsWeapon reports whether the item can be wielded in a fight.
func (i Item) IsWeapon() bool {
	return i.Damage > 0
}

var titleCaser = cases.Title(language.English)

// Card renders the detailed examine view of the item.
func (i Item) Card() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 %s\n", titleCaser.String(i.Name))
	fmt.Fprintf(&b, "📝 %s\n", i.Description)
	if i.Damage > 0 {
		fmt.Fprintf(&b, "⚔️ Damage: %d\n", i.Damage)
	}
	if i.Heal > 0 {
		fmt.Fprintf(&b, "💚 Restores: %d health\n", i.Heal)
	}
	if i.Value > 0 {
		fmt.Fprintf(&b, "💰 Value: %d gold", i.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}

// catalog holds every item in the game, keyed by lowercase name.
var catalog = map[string]Item{
	"stick": {
		Name:        "stick",
		Description: "A sturdy wooden stick, perfect for poking things or as a makeshift weapon.",
		Value:       1,
	},
	"stone": {
		Name:        "stone",
		Description: "A smooth river stone that fits perfectly in your palm.",
		Value:       1,
	},
	"rope": {
		Name:        "rope",
		Description: "A length of weathered but strong rope. Could be useful for climbing.",
		Value:       5,
	},
	"coin": {
		Name:        "coin",
		Description: "An old golden coin with mysterious symbols etched on both sides.",
		Value:       10,
	},
	"flowers": {
		Name:        "flowers",
		Description: "Beautiful wildflowers that seem to glow with an inner light.",
		Value:       3,
		Usable:      true,
		Consumable:  true,
		Heal:        10,
	},
	"berries": {
		Name:        "berries",
		Description: "Sweet forest berries that look delicious and nourishing.",
		Value:       5,
		Usable:      true,
		Consumable:  true,
		Heal:        15,
	},
	"crystal": {
		Name:        "crystal",
		Description: "A mysterious crystal that pulses with magical energy.",
		Value:       25,
		Usable:      true,
	},
	"torch": {
		Name:        "torch",
		Description: "A wooden torch wrapped in oil-soaked cloth. Perfect for dark places.",
		Value:       8,
		Usable:      true,
	},
	"gem": {
		Name:        "gem",
		Description: "A precious gem that sparkles with inner fire.",
		Value:       50,
	},
	"rusty sword": {
		Name:        "rusty sword",
		Description: "An old sword with a rusty blade, but still sharp enough to be dangerous.",
		Value:       20,
		Usable:      true,
		Damage:      15,
	},
	"magic wand": {
		Name:        "magic wand",
		Description: "A slender wand carved from ancient wood, thrumming with arcane power.",
		Value:       40,
		Usable:      true,
		Damage:      20,
	},
}

// Get looks up an item by name, case-insensitively.
func Get(name string) (Item, bool) {
	it, ok := catalog[strings.ToLower(name)]
	return it, ok
}
