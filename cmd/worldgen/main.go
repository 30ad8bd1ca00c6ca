package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kmswanson/greenwood/internal/config"
	"github.com/kmswanson/greenwood/internal/logger"
	"github.com/kmswanson/greenwood/internal/services"
	"github.com/kmswanson/greenwood/internal/worldgen"
)

func main() {
	theme := flag.String("theme", "", "theme of the world to generate (required)")
	rooms := flag.Int("rooms", 5, "number of rooms to generate")
	output := flag.String("o", "generated_world.json", "output file")
	flag.Parse()

	if *theme == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -theme <theme> [-rooms N] [-o file.json]\n", os.Args[0])
		os.Exit(1)
	}

	cfg := config.Load()
	log, err := logger.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	maxTokens, timeout := generationBudget(cfg)
	narrator := services.NewOllamaService(cfg.OllamaHost, cfg.ModelName, maxTokens, cfg.Temperature, timeout, log)

	fmt.Printf("Generating a %d-room world with theme %q...\n", *rooms, *theme)

	generator := worldgen.New(narrator, log)
	w, err := generator.Generate(context.Background(), *theme, *rooms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := w.Save(*output); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save world: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("World with %d rooms saved to %s (start: %s)\n", len(w.Rooms), *output, w.Start)
}

// generationBudget widens the configured narration limits for world
// generation. The defaults are sized for short combat lines; a full rooms
// object needs a bigger token budget and a wait to match.
func generationBudget(cfg *config.Config) (int, time.Duration) {
	maxTokens := cfg.MaxTokens
	if maxTokens < 2000 {
		maxTokens = 2000
	}
	timeout := cfg.NarrationTimeout
	if timeout < 5*time.Minute {
		timeout = 5 * time.Minute
	}
	return maxTokens, timeout
}
