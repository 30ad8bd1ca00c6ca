package command

import "strings"

// Action is the canonical verb a piece of player input resolves to.
type Action string

const (
	ActionLook         Action = "look"
	ActionMove         Action = "move"
	ActionGrab         Action = "grab"
	ActionInventory    Action = "inventory"
	ActionUse          Action = "use"
	ActionExamine      Action = "examine"
	ActionFight        Action = "fight"
	ActionQuit         Action = "quit"
	ActionHelp         Action = "help"
	ActionUnrecognized Action = "unrecognized"
)

// Direction is one of the four cardinal exits a room may have.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions lists the cardinal directions in render order.
var Directions = []Direction{North, South, East, West}

// actionAliases maps each canonical action to its accepted surface forms.
// The first form is the canonical spelling shown in help text.
var actionAliases = map[Action][]string{
	ActionLook:      {"look", "l"},
	ActionMove:      {"move", "m", "go"},
	ActionGrab:      {"grab", "g", "take", "get"},
	ActionInventory: {"inventory", "i", "inv"},
	ActionUse:       {"use", "u"},
	ActionExamine:   {"examine", "x"},
	ActionFight:     {"fight", "f", "attack", "battle"},
}

var directionAliases = map[Direction][]string{
	North: {"north", "n"},
	South: {"south", "s"},
	East:  {"east", "e"},
	West:  {"west", "w"},
}

// Meta-action literals, matched against the whole trimmed input before
// any alias parsing happens.
var (
	quitLiterals = []string{"quit", "exit", "q"}
	helpLiterals = []string{"help", "h", "?"}
)

// Command is the canonical form of one line of player input.
type Command struct {
	Action    Action
	Direction Direction // set only for look/move with a recognized direction
	Argument  string    // free text for grab/use/examine/fight, lowercased
}

// Interpret turns raw player input into a canonical command. Empty input
// (after trimming) yields nil; the caller should treat that as a no-op.
// Input whose first token matches no alias yields ActionUnrecognized.
func Interpret(raw string) *Command {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	lowered := strings.ToLower(trimmed)
	if contains(quitLiterals, lowered) {
		return &Command{Action: ActionQuit}
	}
	if contains(helpLiterals, lowered) {
		return &Command{Action: ActionHelp}
	}

	parts := strings.Fields(lowered)
	action, ok := findAction(parts[0])
	if !ok {
		return &Command{Action: ActionUnrecognized}
	}

	cmd := &Command{Action: action}
	if len(parts) < 2 {
		return cmd
	}

	if action == ActionLook || action == ActionMove {
		if dir, ok := findDirection(parts[1]); ok {
			// Tokens after the direction are discarded.
			cmd.Direction = dir
			return cmd
		}
	}
	cmd.Argument = strings.Join(parts[1:], " ")
	return cmd
}

func findAction(token string) (Action, bool) {
	for action, aliases := range actionAliases {
		if contains(aliases, token) {
			return action, true
		}
	}
	return "", false
}

func findDirection(token string) (Direction, bool) {
	for dir, aliases := range directionAliases {
		if contains(aliases, token) {
			return dir, true
		}
	}
	return "", false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ParseDirection resolves a direction alias outside of full command
// interpretation. Used by world validation and the world generator.
func ParseDirection(s string) (Direction, bool) {
	return findDirection(strings.ToLower(strings.TrimSpace(s)))
}
