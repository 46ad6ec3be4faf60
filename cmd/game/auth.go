package main

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

var (
	ErrPasswordTooLong    = errors.New("password too long")
	ErrUsernameTaken      = errors.New("username taken")
	ErrBadCredentials     = errors.New("wrong username or password")
	ErrBadCredentialsBody = errors.New("request body must contain url-encoded username and password")
)

func (app *application) accountsEnabled(w http.ResponseWriter) bool {
	if app.repo == nil || app.cookies == nil {
		app.unavailable(w, ErrAccountsDisabled)
		return false
	}
	return true
}

func (app *application) decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsDTO, bool) {
	if err := r.ParseForm(); err != nil {
		app.badRequest(w, ErrBadCredentialsBody)
		return CredentialsDTO{}, false
	}
	dto, err := decode[CredentialsDTO](r.PostForm)
	if err != nil {
		app.badRequest(w, err)
		return dto, false
	}
	if len([]byte(dto.Password)) > 72 {
		app.badRequest(w, ErrPasswordTooLong)
		return dto, false
	}
	return dto, true
}

func (app *application) issueCookies(w http.ResponseWriter, player *repository.Player) bool {
	claims := config.NewPlayerClaims(
		player.PlayerId, player.Username, time.Now(), app.cookies.JWT().TokenLifetime(),
	)
	if err := app.cookies.Issue(w, claims); err != nil {
		app.internalError(w, "failed to set auth cookies", slog.Any("error", err))
		return false
	}
	return true
}

func (app *application) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !app.accountsEnabled(w) {
		return
	}
	dto, ok := app.decodeCredentials(w, r)
	if !ok {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		app.internalError(w, "unable to hash password", slog.Any("error", err))
		return
	}

	player, err := app.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     dto.Username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		handlers.SendErrorOrLog(w, app.logger, http.StatusConflict, ErrUsernameTaken)
		return
	}
	if err != nil {
		app.internalError(w, "unable to insert player", slog.Any("error", err))
		return
	}

	if app.issueCookies(w, player) {
		app.replyWithJSON(w, PlayerDTO{player.PlayerId, player.Username})
	}
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !app.accountsEnabled(w) {
		return
	}
	dto, ok := app.decodeCredentials(w, r)
	if !ok {
		return
	}

	player, err := app.repo.FetchPlayer(r.Context(), dto.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		handlers.SendErrorOrLog(w, app.logger, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		app.internalError(w, "could not fetch player from db", slog.Any("error", err))
		return
	}

	err = bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(dto.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		handlers.SendErrorOrLog(w, app.logger, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		app.internalError(w, "bcrypt compare error", slog.Any("error", err))
		return
	}

	if app.issueCookies(w, player) {
		app.replyWithJSON(w, PlayerDTO{player.PlayerId, player.Username})
	}
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	if app.cookies != nil {
		app.cookies.Clear(w)
	}
	app.replyWithJSON(w, StatusDTO{LoggedIn: false})
}

func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		app.replyWithJSON(w, StatusDTO{LoggedIn: false})
		return
	}
	app.replyWithJSON(w, StatusDTO{
		LoggedIn: true,
		Player:   &PlayerDTO{claims.PlayerId, claims.Username},
	})
}
