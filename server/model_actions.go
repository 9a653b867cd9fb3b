package server

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/conga/command"
	"github.com/zucenko/conga/model"
)

func NewGameServer(levels []model.LevelConfig, tick time.Duration) *GameServer {
	if tick <= 0 {
		tick = DEFAULT_TICK
	}
	return &GameServer{
		GameSessions: make([]*GameSession, 0),
		GameRequests: make(chan GameRequest),
		Upgrader:     &websocket.Upgrader{},
		Levels:       levels,
		Stats:        model.DefaultStats(),
		Tick:         tick,
		Scores:       NewScoreboard(),
	}
}

// HandleHttpCall upgrades GET /play/:level to a websocket and plays that
// level until the connection drops.
func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		level, err := strconv.Atoi(way.Param(r.Context(), "level"))
		if err != nil {
			w.WriteHeader(HTTP_BAD_REQUEST)
			return
		}
		log.WithField("level", level).Info("HandleHttpCall - connection received")

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{Level: level, GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			log.Debugf("HandleHttpCall GameContextAwaiting <- code:%d", gca.ResponseCode)
			if gca.ResponseCode != GAME_READY {
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already answered the request
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			gca.GameSession.Errors <- 0
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{
			Con:      con,
			GameOver: gameOver}:
		case <-time.After(timeout):
			gca.GameSession.Errors <- 0
			return
		}

		// wait till game over
		<-gameOver
		log.WithField("level", level).Info("HandleHttpCall done")
	}
}

// HandleLevels lists the level catalogue with the best score seen so far.
func (s *GameServer) HandleLevels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos := make([]LevelInfo, 0, len(s.Levels))
		for _, l := range s.Levels {
			info := LevelInfo{Number: l.Number, Rows: len(l.Layout), Actions: l.Actions}
			if info.Rows > 0 {
				info.Cols = len(l.Layout[0])
			}
			info.Best, info.Played = s.Scores.Best(l.Number)
			infos = append(infos, info)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(infos); err != nil {
			log.WithError(err).Warn("HandleLevels encode")
		}
	}
}

func (s *GameServer) level(number int) (model.LevelConfig, bool) {
	for _, l := range s.Levels {
		if l.Number == number {
			return l, true
		}
	}
	return model.LevelConfig{}, false
}

func (s *GameServer) Loop(ctx context.Context) {
	log.Info("GameServer.Loop starting")
	for {
		select {
		case <-ctx.Done():
			log.Info("GameServer.Loop stopped")
			return
		case gameReq := <-s.GameRequests:
			s.prune()
			cfg, found := s.level(gameReq.Level)
			if !found {
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_NOT_FOUND}
				continue
			}
			gs, err := NewGameSession(cfg, s.Stats, s.Tick, s.Scores)
			if err != nil {
				log.WithError(err).WithField("level", cfg.Number).Warn("GameServer.Loop cannot start level")
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_INVALIDE}
				continue
			}
			go gs.Loop()
			s.GameSessions = append(s.GameSessions, gs)
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  gs,
			}
		}
	}
}

// prune forgets sessions whose loop has finished.
func (s *GameServer) prune() {
	live := s.GameSessions[:0]
	for _, gs := range s.GameSessions {
		select {
		case <-gs.Done:
		default:
			live = append(live, gs)
		}
	}
	s.GameSessions = live
}

func NewGameSession(cfg model.LevelConfig, stats model.Stats, tick time.Duration, scores *Scoreboard) (*GameSession, error) {
	events := &model.EventLog{}
	tc, err := model.Start(cfg, events, stats)
	if err != nil {
		return nil, err
	}
	return &GameSession{
		State:                 GS_NEW,
		Controller:            tc,
		Log:                   events,
		PlayerSessions:        make([]*PlayerSession, 0),
		Errors:                make(chan int32),
		Events:                make(chan PlayerEvent, 10),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		Done:                  make(chan struct{}),
		tick:                  tick,
		parser:                command.New(),
		scores:                scores,
		settled:               true,
	}, nil
}

func (gs *GameSession) Loop() {
	logger := log.WithField("level", gs.Controller.Config.Number)
	logger.Info("GameSession.Loop start")
	ticker := time.NewTicker(gs.tick)
	defer ticker.Stop()
	dt := float32(gs.tick.Seconds())

	for {
		select {
		case pcr := <-gs.PlayerConnectRequests:
			if gs.State != GS_NEW {
				logger.Warn("GameSession.Loop refusing second player")
				close(pcr.GameOver)
				continue
			}
			ps := gs.addPlayer(pcr.Con, pcr.GameOver)
			gs.State = GS_PLAY
			ps.State = PS_PLAY
			gs.send(gs.MakeGameSetupMessage(ps))
		case errPlayer := <-gs.Errors:
			logger.WithField("player", errPlayer).Info("GameSession.Loop closing")
			if gs.State != GS_OVER {
				gs.State = GS_ERR
			}
			gs.stop(errPlayer)
			return
		case pe := <-gs.Events:
			gs.send(gs.Turn(pe.Message))
		case <-ticker.C:
			if gs.State != GS_PLAY && gs.State != GS_OVER {
				continue
			}
			gs.Controller.Update(dt)
			settled := gs.Controller.Settled()
			events := gs.Log.Drain()
			if len(events) == 0 && settled == gs.settled {
				continue
			}
			gs.settled = settled
			gs.send(model.ServerMessage{
				Snapshots: []model.Snapshot{gs.Controller.MakeSnapshot(gs.Log.Score)},
				Events:    events,
			})
			gs.checkOver()
		}
	}
}

// Turn applies one player message and answers with the resulting board.
// Refused actions come back in Errors; they never end the session.
func (gs *GameSession) Turn(m model.ClientMessage) model.ServerMessage {
	msg := model.ServerMessage{}
	if m.Action == model.ACT_TEXT {
		text := m.Text
		cmd, err := gs.parser.Parse(text)
		if err == nil {
			m, err = cmd.Message()
		}
		if err != nil {
			log.WithError(err).WithField("text", text).Warn("GameSession.Turn bad command")
			msg.Errors = append(msg.Errors, err.Error())
			msg.Snapshots = []model.Snapshot{gs.Controller.MakeSnapshot(gs.Log.Score)}
			return msg
		}
	}

	if err := gs.Controller.Apply(m); err != nil {
		log.WithFields(log.Fields{
			"action": m.Action.Name(),
			"row":    m.Row,
			"col":    m.Col,
		}).WithError(err).Warn("GameSession.Turn refused")
		msg.Errors = append(msg.Errors, err.Error())
	} else if m.Action == model.ACT_RESET {
		gs.Log.Drain()
		gs.Log.Score = 0
		gs.State = GS_PLAY
	}

	gs.settled = gs.Controller.Settled()
	msg.Events = gs.Log.Drain()
	msg.Snapshots = []model.Snapshot{gs.Controller.MakeSnapshot(gs.Log.Score)}
	gs.checkOver()
	return msg
}

func (gs *GameSession) checkOver() {
	if gs.State != GS_PLAY || !gs.Controller.Over() {
		return
	}
	gs.State = GS_OVER
	level, score := gs.Controller.Config.Number, gs.Log.Score
	best := gs.scores.Submit(level, score)
	log.WithFields(log.Fields{
		"level": level,
		"score": score,
		"best":  best,
	}).Info("GameSession over")
}

// send never blocks the session loop; a full outbox drops the message.
func (gs *GameSession) send(msg model.ServerMessage) {
	for _, ps := range gs.PlayerSessions {
		select {
		case ps.MessagesToSend <- msg:
		default:
			log.WithField("player", ps.Id).Warn("GameSession.send outbox FULL, dropping")
		}
	}
}

func (gs *GameSession) stop(errPlayer int32) {
	gs.Controller.End()
	for _, ps := range gs.PlayerSessions {
		if ps.Id == errPlayer {
			ps.State = PS_ERR
		} else {
			ps.State = PS_OVER
		}
		close(ps.closed)
		close(ps.GameOver)
	}
	if gs.State != GS_ERR {
		gs.State = GS_CLOSED
	}
	close(gs.Done)
}

func (gs *GameSession) addPlayer(
	conn *websocket.Conn,
	gameOver chan struct{},
) *PlayerSession {
	ps := &PlayerSession{
		State:          PS_NEW,
		Id:             int32(len(gs.PlayerSessions) + 1),
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, 10),
		closed:         make(chan struct{}),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Temporary() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.PlayerSessions = append(gs.PlayerSessions, ps)
	return ps
}

func (gs *GameSession) MakeGameSetupMessage(ps *PlayerSession) model.ServerMessage {
	tc := gs.Controller
	return model.ServerMessage{
		Setup: []model.Setup{{
			Level:     tc.Config.Number,
			Rows:      tc.Level.Grid.Rows(),
			Cols:      tc.Level.Grid.Cols(),
			CellSize:  tc.Level.Grid.CellSize(),
			Actions:   tc.ActionsRemaining(),
			PlayerKey: ps.Id,
		}},
		Snapshots: []model.Snapshot{tc.MakeSnapshot(gs.Log.Score)},
	}
}

// fail reports a broken connection unless the session is already closing.
func (ps *PlayerSession) fail() {
	select {
	case ps.GameSession.Errors <- ps.Id:
	case <-ps.closed:
	}
}

func (ps *PlayerSession) LoopChannelRead() {
	log.Debug("LoopChannelRead STARTED")
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			log.Debugf("LoopChannelRead err reading message from Conn %v", err)
			ps.fail()
			break
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.WithError(err).Warn("LoopChannelRead cant decode")
			ps.fail()
			break
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		select {
		case ps.GameSession.Events <- PlayerEvent{Player: ps.Id, Message: cm}:
		case <-ps.closed:
			return
		default:
			log.Warnf("Dropping %s from socket, GameSession.Events FULL", cm.Action.Name())
		}
	}
	log.Debug("LoopChannelRead ENDED")
}

// this function only consumes. no worries about full buffer stuck
func (ps *PlayerSession) LoopChannelWrite() {
	log.Debug("PlayerSession.LoopChannelWrite STARTED")
	for {
		select {
		case <-ps.closed:
			log.Debug("LoopChannelWrite ENDED")
			return
		case mes := <-ps.MessagesToSend:
			if err := ps.write(mes); err != nil {
				log.WithError(err).Warn("PlayerSession.LoopChannelWrite")
				ps.fail()
				return
			}
			ps.DebugOutMessages++
		}
	}
}

func (ps *PlayerSession) write(mes model.ServerMessage) error {
	w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
