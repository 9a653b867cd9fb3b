package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/conga/model"
)

func TestNormalisationTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  CONGA  ", want: "conga"},
		{in: "rotate 1,2 LEFT!", want: "rotate 1 2 left"},
		{in: "\tdrag\t0  3   up\n", want: "drag 0 3 up"},
		{in: "???", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normaliseInput(tt.in), tt.in)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"conga", Command{Verb: CONGA}},
		{"go", Command{Verb: CONGA}},
		{"conag", Command{Verb: CONGA}},
		{"rotate 1 2 left", Command{Verb: ROTATE, Row: 1, Col: 2, Direction: model.LEFT}},
		{"rot 0 0 n", Command{Verb: ROTATE, Direction: model.UP}},
		{"roatte 3 1 rigth", Command{Verb: ROTATE, Row: 3, Col: 1, Direction: model.RIGHT}},
		{"dragg 2 2 dwn", Command{Verb: DRAG, Row: 2, Col: 2, Direction: model.DOWN}},
		{"push 4 0 lft", Command{Verb: DRAG, Row: 4, Direction: model.LEFT}},
		{"detonat 1 1", Command{Verb: DETONATE, Row: 1, Col: 1}},
		{"boom 0 2", Command{Verb: DETONATE, Col: 2}},
		{"tick", Command{Verb: TICK, Ticks: 1}},
		{"wait 25", Command{Verb: TICK, Ticks: 25}},
		{"shoe", Command{Verb: SHOW}},
		{"restart", Command{Verb: RESET}},
		{"h", Command{Verb: HELP}},
		{"exit", Command{Verb: QUIT}},
	}
	p := New()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := p.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"xyzzy", ErrUnknownVerb},
		{"d", ErrUnknownVerb},
		{"conga now", ErrBadArgs},
		{"rotate 1 2", ErrBadArgs},
		{"rotate a 2 up", ErrBadArgs},
		{"drag 1 2 sideways", ErrBadDirection},
		{"detonate 1", ErrBadArgs},
		{"tick 0", ErrBadArgs},
		{"tick 1 2", ErrBadArgs},
	}
	p := New()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := p.Parse(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegistry_Ambiguous(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand(CommandDef{Verb: "spin", Usage: "spin"})
	r.RegisterCommand(CommandDef{Verb: "spit", Usage: "spit"})

	_, err := r.matchVerb("sp")
	assert.ErrorIs(t, err, ErrAmbiguous)
	_, err = r.matchVerb("spix")
	assert.ErrorIs(t, err, ErrAmbiguous)

	v, err := r.matchVerb("spin")
	require.NoError(t, err)
	assert.Equal(t, Verb("spin"), v)
	assert.Equal(t, []string{"spin", "spit"}, r.Usage())
}

func TestCommand_Message(t *testing.T) {
	p := New()
	cmd, err := p.Parse("rotate 2 3 east")
	require.NoError(t, err)
	m, err := cmd.Message()
	require.NoError(t, err)
	assert.Equal(t, model.ClientMessage{Action: model.ACT_ROTATE, Row: 2, Col: 3, Direction: model.RIGHT}, m)

	cmd, err = p.Parse("detonate 0 1")
	require.NoError(t, err)
	m, err = cmd.Message()
	require.NoError(t, err)
	assert.Equal(t, model.ACT_DETONATE, m.Action)

	for _, local := range []string{"tick", "help", "quit"} {
		cmd, err = p.Parse(local)
		require.NoError(t, err)
		_, err = cmd.Message()
		assert.ErrorIs(t, err, ErrNotForwarded, local)
	}
}
