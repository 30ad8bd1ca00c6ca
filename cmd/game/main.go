package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kmswanson/greenwood/internal/config"
	"github.com/kmswanson/greenwood/internal/logger"
	"github.com/kmswanson/greenwood/internal/services"
	"github.com/kmswanson/greenwood/pkg/game"
	"github.com/kmswanson/greenwood/pkg/player"
	"github.com/kmswanson/greenwood/pkg/world"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	log, err := logger.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	log.Info("game starting", "environment", cfg.Environment, "model", cfg.ModelName)

	w, err := loadWorld(cfg)
	if err != nil {
		log.Error("failed to load world", "error", err)
		fmt.Fprintf(os.Stderr, "💥 Fatal error: %v\n", err)
		return 1
	}

	narrator := services.NewOllamaService(cfg.OllamaHost, cfg.ModelName, cfg.MaxTokens, cfg.Temperature, cfg.NarrationTimeout, log)
	if err := narrator.Ping(context.Background()); err != nil {
		log.Warn("narration service unreachable, combat will use fallback text", "error", err)
	}

	p := player.New(w.Start)
	eng := game.New(w, p, w.NewItemState(), narrator, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printWelcome()
	if view, _ := eng.Execute(ctx, "look"); view != "" {
		fmt.Println(view)
	}

	return gameLoop(ctx, eng, os.Stdin, os.Stdout, log)
}

// gameLoop runs the interactive session until the player quits, input ends,
// or ctx is cancelled. Reads happen in their own goroutine because a signal
// does not unblock a pending stdin read; the select below must win on
// ctx.Done() even while a read is outstanding.
func gameLoop(ctx context.Context, eng *game.Engine, in io.Reader, out io.Writer, log *slog.Logger) int {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, "\n> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\n\nGame shutting down gracefully...")
			log.Info("game interrupted")
			return 0

		case err := <-readErr:
			if err != nil {
				log.Error("input error", "error", err)
				return 1
			}
			fmt.Fprintln(out, "\n"+game.ExitMessage)
			return 0

		case line := <-lines:
			input := strings.TrimSpace(line)
			if input == "" {
				continue
			}
			log.Debug("user input", "input", input)

			response, quit := eng.Execute(ctx, input)
			if response != "" {
				fmt.Fprintln(out, response)
			}
			if quit {
				log.Info("game ended by user")
				return 0
			}
		}
	}
}

func loadWorld(cfg *config.Config) (*world.World, error) {
	if cfg.WorldFile != "" {
		slog.Info("loading world file", "path", cfg.WorldFile)
		return world.Load(cfg.WorldFile)
	}
	w := world.Default()
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func printWelcome() {
	line := strings.Repeat("=", 50)
	fmt.Println("\n" + line)
	fmt.Println("    🏰 WELCOME TO GREENWOOD 🏰")
	fmt.Println(line)
	fmt.Println("Type 'help' for commands or 'quit' to exit")
	fmt.Println("Commands support abbreviations (e.g., 'm n' for 'move north')")
	fmt.Println(strings.Repeat("-", 50))
}
