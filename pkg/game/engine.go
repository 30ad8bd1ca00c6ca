package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kmswanson/greenwood/pkg/command"
	"github.com/kmswanson/greenwood/pkg/item"
	"github.com/kmswanson/greenwood/pkg/player"
	"github.com/kmswanson/greenwood/pkg/world"
)

// Narrator is the capability the engine consumes for combat flavor text.
// Implementations must bound their own wait; any error (unreachable, timed
// out, bad status) makes the engine fall back to deterministic text.
type Narrator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ExitMessage is printed when the player quits the session.
const ExitMessage = "Thanks for playing! Goodbye! 👋"

const unrecognizedMessage = "❓ I don't understand that command. Type 'help' for available commands."

// Engine executes canonical commands against a shared world topology and
// per-session player/item state. One command is fully processed before the
// next is accepted; the engine itself holds no locks.
type Engine struct {
	world    *world.World
	items    world.ItemState
	player   *player.Player
	narrator Narrator
	logger   *slog.Logger
}

// New creates an engine around existing session state. A nil item state is
// initialized from the world's initial room contents.
func New(w *world.World, p *player.Player, items world.ItemState, narrator Narrator, logger *slog.Logger) *Engine {
	if items == nil {
		items = w.NewItemState()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		world:    w,
		items:    items,
		player:   p,
		narrator: narrator,
		logger:   logger,
	}
}

// Player returns the engine's player state.
func (e *Engine) Player() *player.Player { return e.player }

// Items returns the engine's per-room item state.
func (e *Engine) Items() world.ItemState { return e.items }

// Execute interprets one line of raw input and runs it. It returns the
// response text and whether the session should terminate. Empty input
// returns an empty response and is a no-op.
func (e *Engine) Execute(ctx context.Context, raw string) (response string, quit bool) {
	cmd := command.Interpret(raw)
	if cmd == nil {
		return "", false
	}

	switch cmd.Action {
	case command.ActionQuit:
		e.logger.Info("session ended by player")
		return ExitMessage, true
	case command.ActionHelp:
		return HelpText, false
	case command.ActionUnrecognized:
		e.logger.Info("command processed", "action", cmd.Action, "input", raw)
		return unrecognizedMessage, false
	}

	// Unexpected failures during a single command are reported and
	// recovered; the session survives.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("command execution error", "action", cmd.Action, "error", fmt.Sprint(r))
			response = fmt.Sprintf("❌ Error executing command: %v", r)
			quit = false
		}
	}()

	response = e.dispatch(ctx, cmd)
	e.logger.Info("command processed", "action", cmd.Action, "room", e.player.Room)
	return response, false
}

func (e *Engine) dispatch(ctx context.Context, cmd *command.Command) string {
	switch cmd.Action {
	case command.ActionLook:
		return e.look(cmd.Direction)
	case command.ActionMove:
		return e.move(cmd.Direction)
	case command.ActionGrab:
		return e.grab(cmd.Argument)
	case command.ActionInventory:
		return e.inventory()
	case command.ActionUse:
		return e.use(cmd.Argument)
	case command.ActionExamine:
		return e.examine(cmd.Argument)
	case command.ActionFight:
		return e.fight(ctx, cmd.Argument)
	default:
		return fmt.Sprintf("❓ Unknown command: %s", cmd.Action)
	}
}

func (e *Engine) currentRoom() *world.Room {
	room := e.world.Room(e.player.Room)
	if room == nil {
		panic(fmt.Sprintf("player is in unknown room %q", e.player.Room))
	}
	return room
}

func (e *Engine) look(dir command.Direction) string {
	room := e.currentRoom()
	if dir == "" {
		return e.renderRoom(e.player.Room)
	}

	target, ok := room.Exits[string(dir)]
	if !ok {
		// A peek at nothing is a successful no-op, not an error.
		return fmt.Sprintf("👀 You see nothing interesting to the %s.", dir)
	}
	next := e.world.Room(target)
	short := next.ShortDesc
	if short == "" {
		short = "A mysterious area"
	}
	return fmt.Sprintf("👀 To the %s: %s - %s", dir, next.Name, short)
}

// renderRoom builds the full room view: name, description, items when any
// are present, and exits in fixed north/south/east/west order. Movement
// responses reuse this render.
func (e *Engine) renderRoom(key string) string {
	room := e.world.Room(key)

	var b strings.Builder
	fmt.Fprintf(&b, "🏠 %s\n", room.Name)
	fmt.Fprintf(&b, "📝 %s\n", room.Description)

	if items := e.items[key]; len(items) > 0 {
		fmt.Fprintf(&b, "📦 Items here: %s\n", strings.Join(items, ", "))
	}

	var exits []string
	for _, dir := range command.Directions {
		if _, ok := room.Exits[string(dir)]; ok {
			exits = append(exits, string(dir))
		}
	}
	if len(exits) > 0 {
		fmt.Fprintf(&b, "🚪 Exits: %s", strings.Join(exits, ", "))
	} else {
		b.WriteString("🚪 No obvious exits")
	}
	return b.String()
}

func (e *Engine) move(dir command.Direction) string {
	if dir == "" {
		return "🚶 Move where? Specify a direction (north, south, east, west)"
	}

	room := e.currentRoom()
	target, ok := room.Exits[string(dir)]
	if !ok {
		return fmt.Sprintf("🚫 You can't go %s from here.", dir)
	}

	e.player.Room = target
	e.logger.Info("player moved", "direction", dir, "room", target)
	return e.renderRoom(target)
}

func (e *Engine) grab(name string) string {
	if name == "" {
		return "🤏 Grab what? Specify an item name."
	}

	roomItems := e.items[e.player.Room]
	for i, it := range roomItems {
		if strings.EqualFold(it, name) {
			// First match wins; the original casing is what goes into
			// the inventory.
			e.player.AddItem(it)
			e.items[e.player.Room] = append(roomItems[:i], roomItems[i+1:]...)
			e.logger.Info("player grabbed item", "item", it, "room", e.player.Room)
			return fmt.Sprintf("✅ You grabbed the %s!", it)
		}
	}
	return fmt.Sprintf("📦 There's no '%s' here to grab.", name)
}

func (e *Engine) inventory() string {
	if len(e.player.Inventory) == 0 {
		return "🎒 Your inventory is empty."
	}

	var b strings.Builder
	b.WriteString("🎒 Inventory:\n")
	for _, name := range e.player.Inventory {
		if it, ok := item.Get(name); ok {
			fmt.Fprintf(&b, "  • %s - %s...\n", name, truncate(it.Description, 50))
		} else {
			fmt.Fprintf(&b, "  • %s\n", name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (e *Engine) use(name string) string {
	if name == "" {
		return "🔧 Use what? Specify an item name."
	}
	if !e.player.HasItem(name) {
		return fmt.Sprintf("❌ You don't have '%s' in your inventory.", name)
	}

	it, ok := item.Get(name)
	if !ok {
		return fmt.Sprintf("❓ Unknown item: %s", name)
	}
	if !it.Usable {
		return fmt.Sprintf("🚫 You can't use the %s.", name)
	}

	var result string
	switch {
	case it.IsWeapon():
		result = fmt.Sprintf("You brandish the %s menacingly! (Damage: %d)", it.Name, it.Damage)
	case it.Heal > 0:
		e.player.Heal(it.Heal)
		result = fmt.Sprintf("You consume the %s and restore %d health!", it.Name, it.Heal)
	default:
		result = fmt.Sprintf("You use the %s.", it.Name)
	}

	if it.Consumable {
		e.player.RemoveItem(name)
		result += fmt.Sprintf(" The %s is consumed.", it.Name)
	}

	e.logger.Info("player used item", "item", it.Name)
	return result
}

func (e *Engine) examine(name string) string {
	if name == "" {
		return "🔍 Examine what? Specify an item name."
	}

	inRoom := false
	for _, it := range e.items[e.player.Room] {
		if strings.EqualFold(it, name) {
			inRoom = true
			break
		}
	}

	if e.player.HasItem(name) || inRoom {
		if it, ok := item.Get(name); ok {
			return "🔍 " + it.Card()
		}
		return fmt.Sprintf("❓ You can't find details about '%s'.", name)
	}
	return fmt.Sprintf("❌ There's no '%s' here or in your inventory.", name)
}

func (e *Engine) fight(ctx context.Context, target string) string {
	if target == "" {
		return "⚔️ Fight what? You need to specify a target."
	}

	room := e.currentRoom()
	if len(room.Enemies) == 0 {
		return "⚔️ There's nothing to fight here."
	}

	text, err := e.narrator.Generate(ctx, e.fightPrompt(room, target))
	if err != nil {
		e.logger.Warn("narration unavailable, using fallback", "target", target, "error", err)
		return fmt.Sprintf("⚔️ You engage the %s in combat! The battle is fierce but you emerge victorious!", target)
	}

	e.logger.Info("fight narrated", "target", target)
	return "⚔️ " + text
}

// fightPrompt embeds the scene and the player's gear into the narration
// request. Fight never mutates player, room or item state.
func (e *Engine) fightPrompt(room *world.Room, target string) string {
	inventory := "empty"
	if len(e.player.Inventory) > 0 {
		inventory = strings.Join(e.player.Inventory, ", ")
	}

	var weapons []string
	for _, name := range e.player.Inventory {
		if it, ok := item.Get(name); ok && it.IsWeapon() {
			weapons = append(weapons, it.Name)
		}
	}
	weaponText := ""
	if len(weapons) > 0 {
		weaponText = fmt.Sprintf(" You are wielding: %s", strings.Join(weapons, ", "))
	}

	return fmt.Sprintf(`The player is fighting a %s in %s.
The room description: %s
Player inventory: %s
%s

Generate a short, exciting fight outcome (2-3 sentences).
Make it adventurous but not too violent.`,
		target, room.Name, room.Description, inventory, weaponText)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
