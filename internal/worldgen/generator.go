// Package worldgen builds new game worlds by asking a language model for a
// JSON room map and validating the result against the world invariants.
package worldgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kmswanson/greenwood/pkg/world"
)

// exampleJSON shows the model the exact room structure it must produce.
const exampleJSON = `{
    "rooms": {
        "forest_entrance": {
            "name": "Forest Entrance",
            "description": "You stand at the edge of a mysterious forest.",
            "short_desc": "The entrance to a mysterious forest",
            "exits": {
                "north": "forest_path"
            },
            "items": ["stick"],
            "enemies": []
        }
    }
}`

const promptTemplate = `You are a highly-specialized AI assistant for generating data for text-based adventure games.
Your task is to generate a JSON object representing the rooms of a game world.
The output must be a single, complete, valid JSON object and nothing else. Do not include any conversational text, explanations, or code blocks.
The top-level JSON object should have a single key, "rooms", which contains a dictionary of room objects.
The room keys should be lowercase, using underscores instead of spaces (e.g., 'forest_entrance').
Exits may only use the directions north, south, east and west, and every exit must point at a room key that exists in the same object.

Generate a JSON object for a game world with the theme: %s.
The world should contain %d rooms.
The structure for each room must exactly match this example:
%s`

// Narrator produces text from a prompt. Satisfied by services.NarrationService.
type Narrator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generator turns a theme into a validated world.
type Generator struct {
	narrator Narrator
	logger   *slog.Logger
}

func New(narrator Narrator, logger *slog.Logger) *Generator {
	return &Generator{
		narrator: narrator,
		logger:   logger,
	}
}

// generatedWorld matches the wrapped object the prompt asks for.
type generatedWorld struct {
	Rooms map[string]*world.Room `json:"rooms"`
}

// Generate asks the model for a world with the given theme and room count,
// parses the reply, and validates the room graph. The returned world is ready
// for play or for world.Save.
func (g *Generator) Generate(ctx context.Context, theme string, roomCount int) (*world.World, error) {
	if theme == "" {
		return nil, fmt.Errorf("theme cannot be empty")
	}
	if roomCount < 1 {
		return nil, fmt.Errorf("room count must be at least 1, got %d", roomCount)
	}

	prompt := fmt.Sprintf(promptTemplate, theme, roomCount, exampleJSON)
	g.logger.Info("generating world", "theme", theme, "rooms", roomCount)

	raw, err := g.narrator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("world generation failed: %w", err)
	}

	var gen generatedWorld
	if err := json.Unmarshal([]byte(stripFences(raw)), &gen); err != nil {
		return nil, fmt.Errorf("failed to parse generated world JSON: %w", err)
	}
	if len(gen.Rooms) == 0 {
		return nil, fmt.Errorf("generated world has no rooms")
	}

	w := world.FromRooms(gen.Rooms)
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("generated world failed validation: %w", err)
	}

	g.logger.Info("world generated", "rooms", len(w.Rooms), "start", w.Start)
	return w, nil
}

// stripFences removes a markdown code fence some models wrap JSON output in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
