package player

import "testing"

func TestNew(t *testing.T) {
	p := New("forest_entrance")
	if p.Room != "forest_entrance" {
		t.Errorf("Room = %q", p.Room)
	}
	if len(p.Inventory) != 0 {
		t.Errorf("new player inventory should be empty, got %v", p.Inventory)
	}
	if p.Health != MaxHealth || p.Level != 1 || p.Experience != 0 {
		t.Errorf("unexpected vitals: %+v", p)
	}
}

func TestInventory(t *testing.T) {
	p := New("a")
	p.AddItem("stick")
	p.AddItem("Stone")
	p.AddItem("stick") // duplicates permitted

	if !p.HasItem("STICK") || !p.HasItem("stone") {
		t.Error("HasItem should match case-insensitively")
	}

	if !p.RemoveItem("STICK") {
		t.Fatal("RemoveItem failed")
	}
	// Only the first instance goes; acquisition order is preserved.
	if len(p.Inventory) != 2 || p.Inventory[0] != "Stone" || p.Inventory[1] != "stick" {
		t.Errorf("inventory after removal = %v", p.Inventory)
	}

	if p.RemoveItem("torch") {
		t.Error("RemoveItem of an absent item should report false")
	}
}

func TestHeal_Caps(t *testing.T) {
	p := New("a")
	p.Health = 95
	p.Heal(15)
	if p.Health != MaxHealth {
		t.Errorf("Health = %d, want %d", p.Health, MaxHealth)
	}
}
