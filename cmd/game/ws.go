package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/input"
	"github.com/vancomm/minesweeper-engine/internal/metrics"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type wsReply struct {
	Session *GameSessionDTO `json:"session"`
	Error   string          `json:"error,omitempty"`
}

// handleConnect upgrades to a WebSocket that takes newline separated
// commands and answers every message with the session state.
func (app *application) handleConnect(w http.ResponseWriter, r *http.Request) {
	sess, ok := app.loadSession(w, r)
	if !ok {
		return
	}
	if !app.owns(r, sess) {
		app.unauthorized(w)
		return
	}

	conn, err := app.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		app.logger.Debug("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	app.logger.Debug("established WS connection", slog.String("id", sess.ID.String()))

	err = app.wsRunGameLoop(conn, sess)
	if err != nil && !websocket.IsCloseError(err,
		websocket.CloseNormalClosure, websocket.CloseGoingAway,
	) {
		app.logger.Warn("error in ws loop", slog.Any("error", err))
	}
}

func (app *application) wsRunGameLoop(conn *websocket.Conn, sess *session.Session) error {
	if err := conn.WriteJSON(wsReply{Session: NewGameSessionDTO(sess.Snapshot())}); err != nil {
		return fmt.Errorf("unable to write json: %w", err)
	}
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			continue
		}

		var reply wsReply
		cmds, err := command.ParseAll(string(buf))
		if err != nil {
			reply = wsReply{Session: NewGameSessionDTO(sess.Snapshot()), Error: err.Error()}
		} else {
			snap, err := sess.Do(func(ctrl *input.Controller) error {
				return command.ApplyAll(ctrl, cmds)
			})
			for _, cmd := range cmds {
				metrics.Move(string(cmd.Verb), err)
			}
			reply = wsReply{Session: NewGameSessionDTO(snap)}
			if err != nil {
				reply.Error = err.Error()
			}
		}

		if err := conn.WriteJSON(reply); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}
