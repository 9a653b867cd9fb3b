package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/conga/command"
	"github.com/zucenko/conga/model"
)

type GameServer struct {
	GameSessions []*GameSession
	GameRequests chan GameRequest
	Upgrader     *websocket.Upgrader

	Levels []model.LevelConfig
	Stats  model.Stats
	Tick   time.Duration
	Scores *Scoreboard
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_OVER
	GS_ERR
	GS_CLOSED
)

// GameSession runs one puzzle for one connected player. All of its fields
// are owned by its Loop goroutine.
type GameSession struct {
	State                 GameSessionState
	Controller            *model.TurnController
	Log                   *model.EventLog
	PlayerSessions        []*PlayerSession
	Errors                chan int32
	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest
	Done                  chan struct{}

	tick    time.Duration
	parser  *command.Parser
	scores  *Scoreboard
	settled bool
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	Id          int32
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage
	closed         chan struct{}

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}

type GameContextAwaiting struct {
	ResponseCode ResponseCode
	GameSession  *GameSession
}

type GameRequest struct {
	Level               int
	GameContextAwaiting chan GameContextAwaiting
}

type PlayerConnectRequest struct {
	Con      *websocket.Conn
	GameOver chan struct{}
}

type PlayerEvent struct {
	Player  int32
	Message model.ClientMessage
}

// LevelInfo is one entry of the level catalogue served over HTTP.
type LevelInfo struct {
	Number  int  `json:"number"`
	Rows    int  `json:"rows"`
	Cols    int  `json:"cols"`
	Actions int  `json:"actions"`
	Best    int  `json:"best"`
	Played  bool `json:"played"`
}

// Scoreboard keeps the best finished score per level.
type Scoreboard struct {
	mu   sync.Mutex
	best map[int]int
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{best: make(map[int]int)}
}

// Submit records score and reports whether it beat the previous best.
func (s *Scoreboard) Submit(level, score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.best[level]
	if ok && prev >= score {
		return false
	}
	s.best[level] = score
	return true
}

func (s *Scoreboard) Best(level int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	score, ok := s.best[level]
	return score, ok
}
