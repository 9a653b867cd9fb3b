package server

import (
	"fmt"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

const DEFAULT_PORT = "8080"
const DEFAULT_TICK = 20 * time.Millisecond

type ResponseCode int

const (
	GAME_READY ResponseCode = iota
	GAME_NOT_FOUND
	GAME_INVALIDE
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case GAME_READY:
		return HTTP_SUCCESS
	case GAME_NOT_FOUND:
		return HTTP_NOT_FOUND
	case GAME_INVALIDE:
		return HTTP_BAD_REQUEST
	default:
		panic(h)
	}
}

func (gss GameSessionState) Name() string {
	switch gss {
	case GS_NEW:
		return "GS_NEW"
	case GS_PLAY:
		return "GS_PLAY"
	case GS_OVER:
		return "GS_OVER"
	case GS_ERR:
		return "GS_ERR"
	case GS_CLOSED:
		return "GS_CLOSED"
	default:
		return fmt.Sprintf("n/a:%d", gss)
	}
}

func (ps PlayerSessionState) Name() string {
	switch ps {
	case PS_NEW:
		return "NEW"
	case PS_PLAY:
		return "PLAY"
	case PS_OVER:
		return "OVER"
	case PS_ERR:
		return "ERR"
	default:
		return "N/A"
	}
}

// Config is read from the environment.
type Config struct {
	Port       string
	LevelsFile string
	LogLevel   log.Level
	Tick       time.Duration
}

func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Port:       os.Getenv("PORT"),
		LevelsFile: os.Getenv("LEVELS_FILE"),
		LogLevel:   log.InfoLevel,
		Tick:       DEFAULT_TICK,
	}
	if cfg.Port == "" {
		cfg.Port = DEFAULT_PORT
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsed, err := log.ParseLevel(lvl)
		if err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = parsed
	}
	if ms := os.Getenv("TICK_MS"); ms != "" {
		n, err := strconv.Atoi(ms)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("TICK_MS %q: %w", ms, ErrBadConfig)
		}
		cfg.Tick = time.Duration(n) * time.Millisecond
	}
	return cfg, nil
}
