package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/play/:level"
const URI_LEVELS = "/levels"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.GameServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_LEVELS, s.GameServer.HandleLevels())
}
