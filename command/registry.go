package command

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Verb string

const (
	CONGA    Verb = "conga"
	ROTATE   Verb = "rotate"
	DRAG     Verb = "drag"
	DETONATE Verb = "detonate"
	TICK     Verb = "tick"
	SHOW     Verb = "show"
	RESET    Verb = "reset"
	HELP     Verb = "help"
	QUIT     Verb = "quit"
)

// Args describes what a verb expects after it.
type Args int

const (
	ARGS_NONE Args = iota
	ARGS_CELL
	ARGS_CELL_DIR
	ARGS_COUNT
)

type CommandDef struct {
	Verb    Verb
	Aliases []string
	Args    Args
	Usage   string
}

type phrase struct {
	verb  Verb
	alias string
}

type Registry struct {
	commands map[Verb]CommandDef
	order    []Verb
	phrases  []phrase
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[Verb]CommandDef)}
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterCommand(CommandDef{Verb: CONGA, Aliases: []string{"c", "go", "dance"}, Usage: "conga"})
	r.RegisterCommand(CommandDef{Verb: ROTATE, Aliases: []string{"rot", "turn", "face"}, Args: ARGS_CELL_DIR, Usage: "rotate <row> <col> <dir>"})
	r.RegisterCommand(CommandDef{Verb: DRAG, Aliases: []string{"move", "push"}, Args: ARGS_CELL_DIR, Usage: "drag <row> <col> <dir>"})
	r.RegisterCommand(CommandDef{Verb: DETONATE, Aliases: []string{"boom", "tap", "det"}, Args: ARGS_CELL, Usage: "detonate <row> <col>"})
	r.RegisterCommand(CommandDef{Verb: TICK, Aliases: []string{"t", "wait"}, Args: ARGS_COUNT, Usage: "tick [n]"})
	r.RegisterCommand(CommandDef{Verb: SHOW, Aliases: []string{"look", "ls"}, Usage: "show"})
	r.RegisterCommand(CommandDef{Verb: RESET, Aliases: []string{"restart"}, Usage: "reset"})
	r.RegisterCommand(CommandDef{Verb: HELP, Aliases: []string{"h"}, Usage: "help"})
	r.RegisterCommand(CommandDef{Verb: QUIT, Aliases: []string{"q", "exit"}, Usage: "quit"})
	return r
}

func (r *Registry) RegisterCommand(c CommandDef) {
	if c.Verb == "" {
		return
	}
	if _, ok := r.commands[c.Verb]; !ok {
		r.order = append(r.order, c.Verb)
	}
	r.commands[c.Verb] = c
	r.phrases = append(r.phrases, phrase{verb: c.Verb, alias: string(c.Verb)})
	for _, a := range c.Aliases {
		if n := normaliseInput(a); n != "" {
			r.phrases = append(r.phrases, phrase{verb: c.Verb, alias: n})
		}
	}
}

func (r *Registry) command(v Verb) (CommandDef, bool) {
	c, ok := r.commands[v]
	return c, ok
}

// Usage lists one line per registered verb, in registration order.
func (r *Registry) Usage() []string {
	lines := make([]string, 0, len(r.order))
	for _, v := range r.order {
		lines = append(lines, r.commands[v].Usage)
	}
	return lines
}

type candidate struct {
	verb Verb
	rank int
}

const (
	rankExact = iota
	rankPrefix
	rankFuzzy
)

// matchVerb resolves a token to a verb: an exact alias wins, then a unique
// prefix of at least two letters, then the closest alias within the edit
// distance limit. Several verbs at the best rank make the token ambiguous.
func (r *Registry) matchVerb(token string) (Verb, error) {
	var cands []candidate
	for _, p := range r.phrases {
		switch {
		case token == p.alias:
			cands = append(cands, candidate{p.verb, rankExact})
		case len(token) >= 2 && strings.HasPrefix(p.alias, token):
			cands = append(cands, candidate{p.verb, rankPrefix})
		case len(token) >= 3:
			dist := levenshtein.ComputeDistance(token, p.alias)
			if dist <= levenshteinLimit(len(p.alias)) {
				cands = append(cands, candidate{p.verb, rankFuzzy + dist})
			}
		}
	}
	if len(cands) == 0 {
		return "", ErrUnknownVerb
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].rank < cands[j].rank })
	best := cands[0]
	for _, c := range cands[1:] {
		if c.rank > best.rank {
			break
		}
		if c.verb != best.verb {
			return "", ErrAmbiguous
		}
	}
	return best.verb, nil
}
