package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countStat(log *EventLog, stat Stat) int {
	n := 0
	for _, e := range log.Events {
		if e.Type == EV_SCORE && e.Stat == stat {
			n++
		}
	}
	return n
}

func TestExplode_BurnsBlast(t *testing.T) {
	tc, sink := start(t, [][]int{
		{1, 2, 1},
		{1, 8, 1},
		{1, 1, 4},
	})
	north, southEast := occ(tc, 0, 1), occ(tc, 2, 2)
	grenade := occ(tc, 1, 1)

	tc.Level.Explode(grenade)

	assert.Equal(t, BURNT, north.Agent.Status)
	assert.Equal(t, BURNT, southEast.Agent.Status)
	assert.True(t, tc.Level.Grid.IsEmpty(1, 1))
	assert.Equal(t, EXPLODED, grenade.Grenade.Fuse)
	assert.Equal(t, 1, countStat(sink, RED_ACTIVATE))
	assert.Equal(t, 2, sink.Count(EV_BURNT))
}

func TestExplode_Idempotent(t *testing.T) {
	tc, sink := start(t, [][]int{
		{2, 8},
		{1, 1},
	})
	grenade := occ(tc, 0, 1)

	tc.Level.Explode(grenade)
	tc.Level.Explode(grenade)

	assert.Equal(t, 1, sink.Count(EV_EXPLODED))
	assert.Equal(t, 1, countStat(sink, RED_ACTIVATE))
	assert.Equal(t, 1, sink.Count(EV_BURNT))
	assert.Equal(t, DefaultStats().RedActivate, sink.Score)
}

func TestExplode_ChainedDetonationIsDeferred(t *testing.T) {
	tc, sink := start(t, [][]int{{8, 8, 1, 8}})
	first, second, far := occ(tc, 0, 0), occ(tc, 0, 1), occ(tc, 0, 3)

	tc.Level.Explode(first)
	assert.Equal(t, LIVE, second.Grenade.Fuse, "neighbour waits for its fuse")
	assert.Equal(t, second, occ(tc, 0, 1))
	assert.Equal(t, 1, tc.Level.Scheduler.Pending())

	tc.Update(TickDuration)
	assert.Equal(t, LIVE, second.Grenade.Fuse)

	require.True(t, tc.Settle(100))
	assert.Equal(t, EXPLODED, second.Grenade.Fuse)
	assert.True(t, tc.Level.Grid.IsEmpty(0, 1))
	assert.Equal(t, LIVE, far.Grenade.Fuse, "outside the second blast")
	assert.Equal(t, 2, sink.Count(EV_EXPLODED))
}

func TestExplode_DestroysItems(t *testing.T) {
	tc, _ := start(t, [][]int{
		{9, 10, 7},
		{1, 8, 6},
	})
	tc.Level.Explode(occ(tc, 1, 1))

	g := tc.Level.Grid
	assert.True(t, g.IsEmpty(0, 0), "milkshake destroyed")
	assert.True(t, g.IsEmpty(0, 1), "cactus destroyed")
	assert.Equal(t, BLOCK, occ(tc, 0, 2).Kind)
	assert.Equal(t, PORTAL, occ(tc, 1, 2).Kind)
}

func TestExplode_SkipsOutOfBounds(t *testing.T) {
	tc, sink := start(t, [][]int{{8}})
	tc.Level.Explode(occ(tc, 0, 0))
	assert.True(t, tc.Level.Grid.IsEmpty(0, 0))
	assert.Equal(t, 1, sink.Count(EV_EXPLODED))
}

func TestHazardCheck_Neighbourhood(t *testing.T) {
	tests := []struct {
		name   string
		layout [][]int
		hit    bool
	}{
		{"orthogonal", [][]int{{1, 10, 1}, {1, 2, 1}, {1, 1, 1}}, true},
		{"diagonal", [][]int{{10, 1, 1}, {1, 2, 1}, {1, 1, 1}}, true},
		{"far", [][]int{{1, 1, 1, 10}, {1, 2, 1, 1}, {1, 1, 1, 1}}, false},
		{"none", [][]int{{1, 1}, {2, 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, sink := start(t, tt.layout)
			agent := tc.Level.Grid.Agents()[0]
			assert.Equal(t, tt.hit, tc.Level.HazardCheck(agent))
			assert.Equal(t, tt.hit, agent.Agent.Spiked)
			if tt.hit {
				assert.Equal(t, 1, sink.Count(EV_DAMAGED))
			} else {
				assert.Zero(t, sink.Count(EV_DAMAGED))
			}
		})
	}
}

func TestContact_Table(t *testing.T) {
	tc, _ := start(t, [][]int{{2, 7, 10, 3}})
	mover := occ(tc, 0, 0)
	assert.Equal(t, CONTACT_BLOCKED, tc.Level.Contact(mover, occ(tc, 0, 1)))
	assert.Equal(t, CONTACT_BLOCKED, tc.Level.Contact(mover, occ(tc, 0, 2)))
	assert.Equal(t, CONTACT_BLOCKED, tc.Level.Contact(mover, occ(tc, 0, 3)))
	assert.Equal(t, CONTACT_BLOCKED, tc.Level.Contact(mover, nil))
}
