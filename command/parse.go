package command

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/zucenko/conga/model"
)

var (
	ErrEmpty        = errors.New("empty command")
	ErrUnknownVerb  = errors.New("unknown command")
	ErrAmbiguous    = errors.New("ambiguous command")
	ErrBadArgs      = errors.New("bad arguments")
	ErrBadDirection = errors.New("unknown direction")
	ErrNotForwarded = errors.New("command is handled locally")
)

type Command struct {
	Verb      Verb
	Row, Col  int
	Direction model.Direction
	Ticks     int
}

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Usage() []string {
	return p.registry.Usage()
}

// Parse turns one line of player input into a Command. Verbs and directions
// tolerate small typos.
func (p *Parser) Parse(raw string) (Command, error) {
	tokens := tokenise(normaliseInput(raw))
	if len(tokens) == 0 {
		return Command{}, ErrEmpty
	}
	verb, err := p.registry.matchVerb(tokens[0])
	if err != nil {
		return Command{}, fmt.Errorf("%q: %w", tokens[0], err)
	}
	def, _ := p.registry.command(verb)
	cmd := Command{Verb: verb}
	args := tokens[1:]

	switch def.Args {
	case ARGS_NONE:
		if len(args) != 0 {
			return Command{}, fmt.Errorf("usage: %s: %w", def.Usage, ErrBadArgs)
		}
	case ARGS_COUNT:
		cmd.Ticks = 1
		if len(args) > 1 {
			return Command{}, fmt.Errorf("usage: %s: %w", def.Usage, ErrBadArgs)
		}
		if len(args) == 1 {
			n, ok := parseIndex(args[0])
			if !ok || n == 0 {
				return Command{}, fmt.Errorf("usage: %s: %w", def.Usage, ErrBadArgs)
			}
			cmd.Ticks = n
		}
	case ARGS_CELL, ARGS_CELL_DIR:
		want := 2
		if def.Args == ARGS_CELL_DIR {
			want = 3
		}
		if len(args) != want {
			return Command{}, fmt.Errorf("usage: %s: %w", def.Usage, ErrBadArgs)
		}
		row, okRow := parseIndex(args[0])
		col, okCol := parseIndex(args[1])
		if !okRow || !okCol {
			return Command{}, fmt.Errorf("usage: %s: %w", def.Usage, ErrBadArgs)
		}
		cmd.Row, cmd.Col = row, col
		if def.Args == ARGS_CELL_DIR {
			d, err := matchDirection(args[2])
			if err != nil {
				return Command{}, fmt.Errorf("%q: %w", args[2], err)
			}
			cmd.Direction = d
		}
	}
	return cmd, nil
}

func matchDirection(token string) (model.Direction, error) {
	if d, ok := directionWords[token]; ok {
		return d, nil
	}
	if len(token) < 3 {
		return 0, ErrBadDirection
	}
	best := -1
	hits := map[model.Direction]int{}
	for word, d := range directionWords {
		if len(word) < 2 {
			continue
		}
		dist := levenshtein.ComputeDistance(token, word)
		if dist > levenshteinLimit(len(word)) {
			continue
		}
		if prev, ok := hits[d]; !ok || dist < prev {
			hits[d] = dist
		}
		if best < 0 || dist < best {
			best = dist
		}
	}
	var dir model.Direction
	n := 0
	for d, dist := range hits {
		if dist == best {
			dir = d
			n++
		}
	}
	switch n {
	case 0:
		return 0, ErrBadDirection
	case 1:
		return dir, nil
	default:
		return 0, ErrAmbiguous
	}
}

// Message converts a command into the wire form a game session applies.
// Verbs that only steer the local driver return ErrNotForwarded.
func (c Command) Message() (model.ClientMessage, error) {
	switch c.Verb {
	case CONGA:
		return model.ClientMessage{Action: model.ACT_CONGA}, nil
	case ROTATE:
		return model.ClientMessage{Action: model.ACT_ROTATE, Row: c.Row, Col: c.Col, Direction: c.Direction}, nil
	case DRAG:
		return model.ClientMessage{Action: model.ACT_DRAG, Row: c.Row, Col: c.Col, Direction: c.Direction}, nil
	case DETONATE:
		return model.ClientMessage{Action: model.ACT_DETONATE, Row: c.Row, Col: c.Col}, nil
	case RESET:
		return model.ClientMessage{Action: model.ACT_RESET}, nil
	case SHOW:
		return model.ClientMessage{Action: model.ACT_SHOW}, nil
	default:
		return model.ClientMessage{}, fmt.Errorf("%s: %w", c.Verb, ErrNotForwarded)
	}
}
