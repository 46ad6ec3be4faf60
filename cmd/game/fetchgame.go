package main

import "net/http"

func (app *application) handleFetchGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := app.loadSession(w, r)
	if !ok {
		return
	}
	app.replyWithJSON(w, NewGameSessionDTO(sess.Snapshot()))
}
