package main

import (
	"context"
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/conga/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	cfg, err := server.ConfigFromEnv()
	if err != nil {
		log.Fatalln(err)
	}
	log.SetLevel(cfg.LogLevel)

	levels, err := server.LoadLevels(cfg.LevelsFile)
	if err != nil {
		log.Fatalln(err)
	}
	log.WithField("levels", len(levels)).Info("levels loaded")

	Server := Server{
		GameServer: server.NewGameServer(levels, cfg.Tick),
	}
	go Server.GameServer.Loop(context.Background())
	Server.routes()
	log.Printf("Listening on port %s", cfg.Port)
	log.Fatalln(http.ListenAndServe(":"+cfg.Port, Server.router))
}
