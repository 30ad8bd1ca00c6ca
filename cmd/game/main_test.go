package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/kmswanson/greenwood/internal/services"
	"github.com/kmswanson/greenwood/pkg/game"
	"github.com/kmswanson/greenwood/pkg/player"
	"github.com/kmswanson/greenwood/pkg/world"
)

func newTestEngine() *game.Engine {
	w := world.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return game.New(w, player.New(w.Start), w.NewItemState(), services.NewMockNarrationService(), logger)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// A cancelled context must end the loop even while the reader is blocked
// mid-read with no line pending.
func TestGameLoop_CancelWhileBlockedOnInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer

	done := make(chan int, 1)
	go func() {
		done <- gameLoop(ctx, newTestEngine(), pr, &out, testLogger())
	}()

	cancel()

	select {
	case code := <-done:
		if code != 0 {
			t.Errorf("exit code = %d, want 0", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancellation")
	}

	if !strings.Contains(out.String(), "shutting down gracefully") {
		t.Errorf("output missing shutdown message: %q", out.String())
	}
}

func TestGameLoop_Quit(t *testing.T) {
	var out bytes.Buffer
	code := gameLoop(context.Background(), newTestEngine(), strings.NewReader("quit\n"), &out, testLogger())
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out.String(), game.ExitMessage) {
		t.Errorf("output missing exit message: %q", out.String())
	}
}

func TestGameLoop_EOF(t *testing.T) {
	var out bytes.Buffer
	code := gameLoop(context.Background(), newTestEngine(), strings.NewReader(""), &out, testLogger())
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out.String(), game.ExitMessage) {
		t.Errorf("output missing exit message: %q", out.String())
	}
}

func TestGameLoop_ExecutesCommands(t *testing.T) {
	var out bytes.Buffer
	input := "grab stick\n\nquit\n"
	code := gameLoop(context.Background(), newTestEngine(), strings.NewReader(input), &out, testLogger())
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "You grabbed the stick!") {
		t.Errorf("output missing command response: %q", out.String())
	}
}
