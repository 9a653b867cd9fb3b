package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/conga/model"
)

func TestPlayer_Run(t *testing.T) {
	out := &strings.Builder{}
	p, err := newPlayer(model.LevelConfig{Number: 5, Actions: 2, Layout: [][]int{{5, 1, 6}}}, out)
	require.NoError(t, err)

	input := strings.Join([]string{
		"",
		"help",
		"xyzzy",
		"conga",
		"conag",
		"rotate 0 0 up",
		"quit",
		"conga",
	}, "\n")
	require.NoError(t, p.run(strings.NewReader(input)))

	assert.Equal(t, 2, p.tc.Turns, "input after quit is ignored")
	assert.True(t, p.tc.Over())
	assert.Equal(t, model.DefaultStats().GotchiSave, p.events.Score)

	text := out.String()
	assert.Contains(t, text, "rotate <row> <col> <dir>")
	assert.Contains(t, text, "unknown command")
	assert.Contains(t, text, "TELEPORTED")
	assert.Contains(t, text, model.ErrNotAgent.Error())
	assert.Contains(t, text, "level over")
}

func TestPlayer_ResetAndTick(t *testing.T) {
	out := &strings.Builder{}
	p, err := newPlayer(model.LevelConfig{Number: 1, Layout: [][]int{{2}, {1}, {10}}}, out)
	require.NoError(t, err)

	assert.True(t, p.exec("conga"))
	assert.Equal(t, model.DefaultStats().RedDamage, p.events.Score)
	assert.True(t, p.exec("tick 3"))

	assert.True(t, p.exec("reset"))
	assert.Zero(t, p.events.Score)
	assert.Zero(t, p.tc.Turns)
	assert.Equal(t, [][]int{{2}, {1}, {10}}, p.tc.Level.Grid.Layout())
	assert.False(t, p.exec("q"))
}
