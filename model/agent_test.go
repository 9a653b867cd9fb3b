package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discover(t *testing.T, layout [][]int) *Grid {
	t.Helper()
	g, err := DecodeLayout(layout, 0)
	require.NoError(t, err)
	rs := &Resolver{Level: &Level{Grid: g, Sink: &EventLog{}, Stats: DefaultStats(), Scheduler: NewScheduler()}}
	rs.Discover()
	return g
}

func TestFindLeader(t *testing.T) {
	// (0,0) faces right at (0,1), which faces down
	g := discover(t, [][]int{
		{5, 2},
		{1, 1},
	})
	follower, _ := g.CellAt(0, 0)
	leader, _ := g.CellAt(0, 1)

	assert.Equal(t, leader, follower.Leader(g))
	assert.Nil(t, leader.Leader(g))
	assert.Equal(t, follower, leader.Followers(g)[LEFT])
	assert.True(t, leader.HasFollower())
	assert.False(t, follower.HasFollower())
}

func TestFindLeader_MutualFaceOff(t *testing.T) {
	g := discover(t, [][]int{{5, 3}})
	a, _ := g.CellAt(0, 0)
	b, _ := g.CellAt(0, 1)

	assert.False(t, a.HasLeader())
	assert.False(t, b.HasLeader())
	assert.False(t, a.HasFollower())
	assert.False(t, b.HasFollower())
}

func TestFindLeader_IgnoresObstacles(t *testing.T) {
	g := discover(t, [][]int{{5, 7, 3, 6}})
	a, _ := g.CellAt(0, 0)
	b, _ := g.CellAt(0, 2)
	assert.False(t, a.HasLeader())
	assert.False(t, b.HasLeader())
}

func TestFindLeader_OutOfBounds(t *testing.T) {
	g := discover(t, [][]int{{4}})
	a, _ := g.CellAt(0, 0)
	assert.False(t, a.HasLeader())
}

func TestFindFollowers_AllSlots(t *testing.T) {
	// centre faces down at an empty cell; three neighbours face it
	g := discover(t, [][]int{
		{1, 2, 1},
		{5, 2, 3},
		{1, 1, 1},
	})
	centre, _ := g.CellAt(1, 1)
	f := centre.Followers(g)
	assert.Nil(t, f[DOWN])
	assert.NotNil(t, f[LEFT])
	assert.NotNil(t, f[UP])
	assert.NotNil(t, f[RIGHT])
	assert.Equal(t, Pos{1, 0}, f[LEFT].Pos())
	assert.Equal(t, Pos{0, 1}, f[UP].Pos())
	assert.Equal(t, Pos{1, 2}, f[RIGHT].Pos())
}

func TestDiscovery_BurntExcluded(t *testing.T) {
	g, err := DecodeLayout([][]int{{5, 5, 2}}, 0)
	require.NoError(t, err)
	middle, _ := g.CellAt(0, 1)
	middle.Agent.Status = BURNT

	rs := &Resolver{Level: &Level{Grid: g, Sink: &EventLog{}, Scheduler: NewScheduler()}}
	live := rs.Discover()

	assert.Len(t, live, 2)
	first, _ := g.CellAt(0, 0)
	last, _ := g.CellAt(0, 2)
	assert.False(t, first.HasLeader(), "burnt agent cannot lead")
	assert.False(t, middle.HasLeader(), "burnt agent cannot follow")
	assert.False(t, last.HasFollower())
}

func TestIsUpchainStatus(t *testing.T) {
	g := discover(t, [][]int{{5, 5, 5, 1}})
	tail, _ := g.CellAt(0, 0)
	mid, _ := g.CellAt(0, 1)
	head, _ := g.CellAt(0, 2)

	head.Agent.Status = CONGOTCHING
	assert.True(t, tail.IsUpchainStatus(g, CONGOTCHING))
	assert.True(t, mid.IsUpchainStatus(g, CONGOTCHING))
	assert.False(t, head.IsUpchainStatus(g, CONGOTCHING))
	assert.False(t, tail.IsUpchainStatus(g, JUMPING))
}

func TestIsUpchainStatus_AfterMove(t *testing.T) {
	tc, _ := start(t, [][]int{
		{2},
		{2},
		{2},
		{1},
	})
	g := tc.Level.Grid
	back, mid, root := occ(tc, 0, 0), occ(tc, 1, 0), occ(tc, 2, 0)

	_, err := tc.ResolveTurn()
	require.NoError(t, err)

	// links follow the members to their new cells
	assert.Nil(t, root.Leader(g))
	assert.Equal(t, root, mid.Leader(g))
	assert.Equal(t, mid, back.Leader(g))
	assert.Equal(t, [4]*Occupant{UP: mid}, root.Followers(g))
	assert.Equal(t, [4]*Occupant{UP: back}, mid.Followers(g))

	assert.Equal(t, READY_TO_JUMP, back.Agent.Status)
	assert.False(t, back.IsUpchainStatus(g, READY_TO_JUMP), "own status is not upchain")
	assert.True(t, back.IsUpchainStatus(g, CONGOTCHING))
	assert.False(t, root.IsUpchainStatus(g, CONGOTCHING))

	require.True(t, tc.Settle(200))
	assert.False(t, back.IsUpchainStatus(g, CONGOTCHING))
}

func TestLinks_AfterMove_BrokenAndTeleported(t *testing.T) {
	tc, _ := start(t, [][]int{
		{1, 1, 1},
		{5, 4, 1},
		{1, 4, 1},
	})
	g := tc.Level.Grid
	left, root, below := occ(tc, 1, 0), occ(tc, 1, 1), occ(tc, 2, 1)

	_, err := tc.ResolveTurn()
	require.NoError(t, err)
	assert.Equal(t, root, below.Leader(g))
	assert.Nil(t, left.Leader(g), "left behind by its leader")
	assert.False(t, left.HasLeader())
	assert.Equal(t, [4]*Occupant{DOWN: below}, root.Followers(g))

	tc, _ = start(t, [][]int{{5, 5, 6}})
	g = tc.Level.Grid
	follower := occ(tc, 0, 0)
	_, err = tc.ResolveTurn()
	require.NoError(t, err)
	assert.Equal(t, follower, occ(tc, 0, 1))
	assert.Nil(t, follower.Leader(g), "leader went through the portal")
	assert.False(t, follower.IsUpchainStatus(g, TELEPORTING))
}

func TestIsUpchainStatus_Loop(t *testing.T) {
	g := discover(t, [][]int{
		{5, 2},
		{4, 3},
	})
	a, _ := g.CellAt(0, 0)
	assert.NotNil(t, a.Leader(g))
	assert.False(t, a.IsUpchainStatus(g, JUMPING))
}
