package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/conga/command"
	"github.com/zucenko/conga/model"
	"github.com/zucenko/conga/server"
)

// settleTicks bounds how long a conga turn may play out before the prompt
// returns.
const settleTicks = 500

type player struct {
	tc     *model.TurnController
	events *model.EventLog
	parser *command.Parser
	out    io.Writer
}

func newPlayer(cfg model.LevelConfig, out io.Writer) (*player, error) {
	events := &model.EventLog{}
	tc, err := model.Start(cfg, events, model.DefaultStats())
	if err != nil {
		return nil, err
	}
	return &player{tc: tc, events: events, parser: command.New(), out: out}, nil
}

func (p *player) show() {
	fmt.Fprintf(p.out, "level %d  turn %d  actions %d  score %d\n",
		p.tc.Config.Number, p.tc.Turns, p.tc.ActionsRemaining(), p.events.Score)
	fmt.Fprint(p.out, p.tc.Level.Grid.String())
	if p.tc.Over() {
		fmt.Fprintln(p.out, "level over")
	}
}

func (p *player) report() {
	for _, e := range p.events.Drain() {
		switch e.Type {
		case model.EV_SCORE:
			fmt.Fprintf(p.out, "  %+d %s\n", e.Delta, e.Stat)
		case model.EV_SETTLED, model.EV_CONGA:
		default:
			fmt.Fprintf(p.out, "  %s #%d at %d,%d\n", e.Type.Name(), e.Id, e.Row, e.Col)
		}
	}
}

// exec runs one line of input. It reports false once the player quits.
func (p *player) exec(line string) bool {
	cmd, err := p.parser.Parse(line)
	if errors.Is(err, command.ErrEmpty) {
		return true
	}
	if err != nil {
		fmt.Fprintln(p.out, err)
		return true
	}
	switch cmd.Verb {
	case command.QUIT:
		return false
	case command.HELP:
		for _, u := range p.parser.Usage() {
			fmt.Fprintln(p.out, "  "+u)
		}
		return true
	case command.TICK:
		for i := 0; i < cmd.Ticks; i++ {
			p.tc.Update(model.TickDuration)
		}
	default:
		m, err := cmd.Message()
		if err != nil {
			fmt.Fprintln(p.out, err)
			return true
		}
		if err := p.tc.Apply(m); err != nil {
			fmt.Fprintln(p.out, err)
			return true
		}
		if cmd.Verb == command.RESET {
			p.events.Drain()
			p.events.Score = 0
		}
		if cmd.Verb == command.CONGA && !p.tc.Settle(settleTicks) {
			log.Warn("turn did not settle")
		}
	}
	p.report()
	p.show()
	return true
}

func (p *player) run(in io.Reader) error {
	p.show()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(p.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(p.out)
			return scanner.Err()
		}
		if !p.exec(strings.TrimSpace(scanner.Text())) {
			return nil
		}
	}
}

func main() {
	number := flag.Int("level", 1, "level number to play")
	levelsFile := flag.String("levels", os.Getenv("LEVELS_FILE"), "level file, built-in levels when empty")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	levels, err := server.LoadLevels(*levelsFile)
	if err != nil {
		log.Fatalln(err)
	}
	var cfg *model.LevelConfig
	for i := range levels {
		if levels[i].Number == *number {
			cfg = &levels[i]
		}
	}
	if cfg == nil {
		log.Fatalf("no level %d", *number)
	}
	p, err := newPlayer(*cfg, os.Stdout)
	if err != nil {
		log.Fatalln(err)
	}
	if err := p.run(os.Stdin); err != nil {
		log.Fatalln(err)
	}
}
