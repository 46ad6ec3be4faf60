package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, res, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, res.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, message string) wsReply {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(message)))
	var reply wsReply
	require.NoError(t, conn.ReadJSON(&reply))
	require.NotNil(t, reply.Session)
	return reply
}

func TestWebSocketGameLoop(t *testing.T) {
	srv := newTestServer(t, newTestApp(t))

	created := decodeBody[GameSessionDTO](t, post(t, srv.URL+"/?width=16&height=16&mine_count=40"))
	conn := dial(t, srv.URL+"/"+created.SessionId+"/connect")

	var hello wsReply
	require.NoError(t, conn.ReadJSON(&hello))
	require.NotNil(t, hello.Session)
	assert.Equal(t, created.SessionId, hello.Session.SessionId)
	assert.Equal(t, mines.Fresh, hello.Session.State)

	reply := exchange(t, conn, "o 0 0\ng")
	assert.Empty(t, reply.Error)
	assert.Equal(t, mines.Active, reply.Session.State)
	assert.True(t, reply.Session.Grid.At(16, 0, 0).Open())

	reply = exchange(t, conn, "jump 1 1")
	assert.NotEmpty(t, reply.Error)
	assert.Equal(t, mines.Active, reply.Session.State)

	reply = exchange(t, conn, "o 99 0")
	assert.Contains(t, reply.Error, "outside of 16x16 board")

	reply = exchange(t, conn, "r")
	assert.Empty(t, reply.Error)
	assert.True(t, reply.Session.Dead)
	assert.NotNil(t, reply.Session.EndedAt)

	reply = exchange(t, conn, "o 1 1")
	assert.Contains(t, reply.Error, mines.ErrGameOver.Error())

	require.NoError(t, conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	))
}

func TestWebSocketUnknownSession(t *testing.T) {
	srv := newTestServer(t, newTestApp(t))
	_, res, err := websocket.DefaultDialer.Dial(
		"ws"+strings.TrimPrefix(srv.URL, "http")+"/00000000-0000-0000-0000-000000000000/connect", nil,
	)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
