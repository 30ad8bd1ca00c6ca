package world

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/kmswanson/greenwood/pkg/command"
)

// Room is one location in the game world. Topology and descriptions are
// immutable after load; Items holds the room's initial contents only.
// Per-session mutable item state lives in an ItemState.
type Room struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ShortDesc   string            `json:"short_desc,omitempty"`
	Exits       map[string]string `json:"exits,omitempty"`   // direction → room key
	Items       []string          `json:"items,omitempty"`   // initial items
	Enemies     []string          `json:"enemies,omitempty"` // static per room
}

// World is a directed graph of rooms keyed by stable identifier.
type World struct {
	Rooms map[string]*Room `json:"rooms"`
	Start string           `json:"start"`
}

// Room returns the room with the given key, or nil if it does not exist.
func (w *World) Room(key string) *Room {
	return w.Rooms[key]
}

// Validate checks the graph invariants: the start room exists, every exit
// direction is a cardinal direction, and every exit target resolves to an
// existing room. A failed check is fatal at startup.
func (w *World) Validate() error {
	if len(w.Rooms) == 0 {
		return fmt.Errorf("world has no rooms")
	}
	if _, ok := w.Rooms[w.Start]; !ok {
		return fmt.Errorf("start room %q does not exist", w.Start)
	}
	for key, room := range w.Rooms {
		if room == nil {
			return fmt.Errorf("room %q is empty", key)
		}
		for dir, target := range room.Exits {
			if _, ok := command.ParseDirection(dir); !ok {
				return fmt.Errorf("room %q has invalid exit direction %q", key, dir)
			}
			if _, ok := w.Rooms[target]; !ok {
				return fmt.Errorf("room %q exit %s points to unknown room %q", key, dir, target)
			}
		}
	}
	return nil
}

// ItemState is the mutable per-session item inventory of every room,
// keyed by room identifier. It is kept apart from the room graph so that
// sessions never alias each other's item lists.
type ItemState map[string][]string

// NewItemState copies the initial item lists out of the world.
func (w *World) NewItemState() ItemState {
	state := make(ItemState, len(w.Rooms))
	for key, room := range w.Rooms {
		items := make([]string, len(room.Items))
		copy(items, room.Items)
		state[key] = items
	}
	return state
}

// Load reads a world from a JSON file holding a map of room objects
// (the format written by the world generator) and validates it. The start
// room is "forest_entrance" when present, otherwise the first room key in
// sorted order.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}

	var rooms map[string]*Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world file: %w", err)
	}

	w := FromRooms(rooms)
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("world file %s failed validation: %w", path, err)
	}
	return w, nil
}

// FromRooms builds a world around an existing room map, choosing a start
// room deterministically.
func FromRooms(rooms map[string]*Room) *World {
	w := &World{Rooms: rooms}
	if _, ok := rooms[DefaultStart]; ok {
		w.Start = DefaultStart
		return w
	}
	keys := make([]string, 0, len(rooms))
	for key := range rooms {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		w.Start = keys[0]
	}
	return w
}

// Save writes the world's room map to a JSON file in the same format
// accepted by Load.
func (w *World) Save(path string) error {
	data, err := json.MarshalIndent(w.Rooms, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal world: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write world file: %w", err)
	}
	return nil
}
