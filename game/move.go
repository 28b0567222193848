package game

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandType identifies the kind of order sent to the engine.
type CommandType int

const (
	MoveCommand CommandType = iota
	SpawnCommand
	ConstructCommand
)

// Command is a single order in the engine's text protocol.
type Command struct {
	Type   CommandType
	ShipID int
	Action Action // Direction or Stay, only for MoveCommand
}

func Move(shipID int, action Action) Command {
	return Command{Type: MoveCommand, ShipID: shipID, Action: action}
}

func Spawn() Command {
	return Command{Type: SpawnCommand, Action: Produce}
}

func Build(shipID int) Command {
	return Command{Type: ConstructCommand, ShipID: shipID, Action: Construct}
}

func (c Command) String() string {
	switch c.Type {
	case MoveCommand:
		return fmt.Sprintf("m %d %s", c.ShipID, c.Action)
	case SpawnCommand:
		return "g"
	case ConstructCommand:
		return fmt.Sprintf("c %d", c.ShipID)
	default:
		return ""
	}
}

// FormatCommands joins commands into one protocol line without the newline.
func FormatCommands(commands []Command) string {
	tokens := make([]string, 0, len(commands))
	for _, command := range commands {
		tokens = append(tokens, command.String())
	}
	return strings.Join(tokens, " ")
}

// ParseCommands decodes a protocol command line.
func ParseCommands(line string) ([]Command, error) {
	fields := strings.Fields(line)
	commands := []Command{}
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "g":
			commands = append(commands, Spawn())
		case "c":
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("construct command missing ship id")
			}
			id, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return nil, fmt.Errorf("invalid ship id %q: %w", fields[i+1], err)
			}
			commands = append(commands, Build(id))
			i++
		case "m":
			if i+2 >= len(fields) {
				return nil, fmt.Errorf("move command missing arguments")
			}
			id, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return nil, fmt.Errorf("invalid ship id %q: %w", fields[i+1], err)
			}
			action, err := ParseAction(fields[i+2])
			if err != nil {
				return nil, fmt.Errorf("invalid move for ship %d: %w", id, err)
			}
			commands = append(commands, Move(id, action))
			i += 2
		default:
			return nil, fmt.Errorf("unknown command %q", fields[i])
		}
	}
	return commands, nil
}

// Orders is the joint action of one turn: an action per ship plus the players
// asking for a new ship.
type Orders struct {
	Actions map[int]Action
	Spawns  []int
}

func NewOrders() Orders {
	return Orders{Actions: map[int]Action{}}
}

// Add merges a player's commands into the orders.
func (o *Orders) Add(player int, commands []Command) {
	if o.Actions == nil {
		o.Actions = map[int]Action{}
	}
	for _, command := range commands {
		switch command.Type {
		case MoveCommand:
			o.Actions[command.ShipID] = command.Action
		case SpawnCommand:
			o.Spawns = append(o.Spawns, player)
		case ConstructCommand:
			o.Actions[command.ShipID] = Construct
		}
	}
}
