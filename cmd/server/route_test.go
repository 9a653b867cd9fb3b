package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/conga/server"
)

func TestRoutes(t *testing.T) {
	levels, err := server.LoadLevels("")
	require.NoError(t, err)
	s := Server{GameServer: server.NewGameServer(levels, 0)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.GameServer.Loop(ctx)
	s.routes()

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, URI_LEVELS, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var infos []server.LevelInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&infos))
	assert.Len(t, infos, len(levels))

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/play/404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, URI_LEVELS, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
