package world

// DefaultStart is the starting room of the built-in world.
const DefaultStart = "forest_entrance"

// Default returns the built-in five-room forest world.
func Default() *World {
	return &World{
		Start: DefaultStart,
		Rooms: map[string]*Room{
			"forest_entrance": {
				Name:        "Forest Entrance",
				Description: "You stand at the edge of a mysterious forest. Ancient trees tower above you, their branches creating a canopy that filters the sunlight into dancing patterns on the forest floor.",
				ShortDesc:   "The entrance to a mysterious forest",
				Exits: map[string]string{
					"north": "forest_path",
					"east":  "old_well",
				},
				Items:   []string{"stick", "stone"},
				Enemies: []string{},
			},
			"forest_path": {
				Name:        "Forest Path",
				Description: "A winding path leads deeper into the forest. You hear the distant sound of running water and the rustling of small creatures in the underbrush.",
				ShortDesc:   "A winding forest path",
				Exits: map[string]string{
					"south": "forest_entrance",
					"north": "forest_clearing",
					"west":  "dark_cave",
				},
				Items:   []string{"berries"},
				Enemies: []string{"forest sprite"},
			},
			"old_well": {
				Name:        "Old Well",
				Description: "An ancient stone well sits in a small clearing. Moss covers its weathered stones, and a rusty bucket hangs from a frayed rope. The well seems to whisper secrets of ages past.",
				ShortDesc:   "An ancient stone well",
				Exits: map[string]string{
					"west":  "forest_entrance",
					"north": "forest_clearing",
				},
				Items:   []string{"rope", "coin"},
				Enemies: []string{},
			},
			"forest_clearing": {
				Name:        "Forest Clearing",
				Description: "A beautiful clearing opens up before you, bathed in golden sunlight. Wildflowers bloom in abundance, and butterflies dance among them. This feels like a place of peace and magic.",
				ShortDesc:   "A peaceful forest clearing",
				Exits: map[string]string{
					"south": "forest_path",
					"east":  "old_well",
					"west":  "dark_cave",
				},
				Items:   []string{"flowers", "crystal"},
				Enemies: []string{},
			},
			"dark_cave": {
				Name:        "Dark Cave",
				Description: "The cave entrance yawns before you like a hungry mouth. Cool, damp air flows from within, carrying strange echoes and the scent of earth and mystery.",
				ShortDesc:   "A dark, mysterious cave",
				Exits: map[string]string{
					"east":  "forest_path",
					"south": "forest_clearing",
				},
				Items:   []string{"torch", "gem"},
				Enemies: []string{"cave troll"},
			},
		},
	}
}
