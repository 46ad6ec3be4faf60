package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var (
	ErrUnauthorized     = errors.New("you are not allowed to execute this operation")
	ErrAccountsDisabled = errors.New("player accounts are not configured")
	ErrRecordsDisabled  = errors.New("game records are not configured")
)

type application struct {
	logger   *slog.Logger
	store    *session.Store
	repo     *repository.Queries // nil without a database
	cookies  *config.Cookies     // nil without JWT keys
	ws       *config.WebSocket
	board    config.Board
	origins  []string
	basePath string
}

func (app *application) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /{$}", app.handleNewGame)
	mux.HandleFunc("GET /{id}", app.handleFetchGame)
	mux.HandleFunc("POST /{id}/move", app.handleMove)
	mux.HandleFunc("POST /{id}/forfeit", app.handleForfeit)
	mux.HandleFunc("GET /{id}/connect", app.handleConnect)
	mux.HandleFunc("GET /highscores", app.handleFetchHighscores)
	mux.HandleFunc("POST /register", app.handleRegister)
	mux.HandleFunc("POST /login", app.handleLogin)
	mux.HandleFunc("POST /logout", app.handleLogout)
	mux.HandleFunc("GET /status", app.handleStatus)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (app *application) Handler() http.Handler {
	var h http.Handler = app.ServeMux()
	if app.basePath != "" {
		h = http.StripPrefix(app.basePath, h)
	}
	return middleware.Wrap(
		h,
		middleware.Auth(app.logger, app.cookies),
		middleware.Cors(app.origins),
		middleware.Recover(app.logger),
		middleware.Logging(app.logger),
	)
}

func (app *application) replyWithJSON(w http.ResponseWriter, v any) {
	handlers.SendJSONOrLog(w, app.logger, http.StatusOK, v)
}

func (app *application) badRequest(w http.ResponseWriter, err error) {
	handlers.SendErrorOrLog(w, app.logger, http.StatusBadRequest, err)
}

func (app *application) unauthorized(w http.ResponseWriter) {
	handlers.SendErrorOrLog(w, app.logger, http.StatusUnauthorized, ErrUnauthorized)
}

func (app *application) notFound(w http.ResponseWriter, err error) {
	handlers.SendErrorOrLog(w, app.logger, http.StatusNotFound, err)
}

func (app *application) unavailable(w http.ResponseWriter, err error) {
	handlers.SendErrorOrLog(w, app.logger, http.StatusServiceUnavailable, err)
}

func (app *application) internalError(w http.ResponseWriter, msg string, args ...any) {
	handlers.InternalError(w, app.logger, msg, args...)
}

// moveFailed maps a failed board operation to a response.
func (app *application) moveFailed(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, command.ErrBadCommand),
		errors.Is(err, command.ErrBadArgs):
		app.badRequest(w, err)
	case errors.Is(err, mines.ErrGameOver):
		handlers.SendErrorOrLog(w, app.logger, http.StatusConflict, err)
	default:
		app.internalError(w, "board operation failed", slog.Any("error", err))
	}
}

func (app *application) playerId(r *http.Request) *int64 {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		return nil
	}
	id := claims.PlayerId
	return &id
}

// loadSession resolves the {id} path value, replying on failure.
func (app *application) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		app.badRequest(w, errors.New("invalid session id"))
		return nil, false
	}
	sess, err := app.store.Get(id)
	if err != nil {
		app.notFound(w, err)
		return nil, false
	}
	return sess, true
}

// owns reports whether the request may change sess. Anonymous sessions
// are open to anyone holding the id.
func (app *application) owns(r *http.Request, sess *session.Session) bool {
	if sess.PlayerID == nil {
		return true
	}
	id := app.playerId(r)
	return id != nil && *id == *sess.PlayerID
}
