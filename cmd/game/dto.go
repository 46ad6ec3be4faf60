package main

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var (
	decoder  = newDecoder()
	validate = validator.New(validator.WithRequiredStructEnabled())
)

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func decode[T any](src url.Values) (T, error) {
	var dto T
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, err
	}
	if err := validate.Struct(dto); err != nil {
		return dto, err
	}
	return dto, nil
}

type NewGameDTO struct {
	Width     int  `schema:"width" validate:"gte=0,lte=1000"`
	Height    int  `schema:"height" validate:"gte=0,lte=1000"`
	MineCount int  `schema:"mine_count" validate:"gte=0"`
	X         *int `schema:"x" validate:"required_with=Y"`
	Y         *int `schema:"y" validate:"required_with=X"`
}

// Params fills omitted dimensions from defaults.
func (dto NewGameDTO) Params(defaults session.Params) session.Params {
	p := defaults
	if dto.Width > 0 {
		p.Width = dto.Width
	}
	if dto.Height > 0 {
		p.Height = dto.Height
	}
	if dto.MineCount > 0 {
		p.MineCount = dto.MineCount
	}
	return p
}

var moveVerbs = map[string]command.Verb{
	"open":       command.Open,
	"flag":       command.Flag,
	"chord":      command.Chord,
	"click":      command.Click,
	"rightclick": command.RightClick,
}

type MoveDTO struct {
	Move string `schema:"move,required" validate:"oneof=open flag chord click rightclick"`
	X    int    `schema:"x,required"`
	Y    int    `schema:"y,required"`
}

func (dto MoveDTO) Command() command.Command {
	return command.Command{Verb: moveVerbs[dto.Move], X: dto.X, Y: dto.Y}
}

type HighscoreDTO struct {
	Width     int    `schema:"width" validate:"required_with=Height MineCount,gte=0"`
	Height    int    `schema:"height" validate:"required_with=Width MineCount,gte=0"`
	MineCount int    `schema:"mine_count" validate:"required_with=Width Height,gte=0"`
	Username  string `schema:"username" validate:"omitempty,max=32"`
	Limit     int    `schema:"limit" validate:"gte=0,lte=1000"`
}

type GameSessionDTO struct {
	SessionId string      `json:"session_id"`
	Grid      mines.Grid  `json:"grid"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	MineCount int         `json:"mine_count"`
	Flags     int         `json:"flags"`
	State     mines.State `json:"state"`
	Dead      bool        `json:"dead"`
	Won       bool        `json:"won"`
	StartedAt int64       `json:"started_at"`
	EndedAt   *int64      `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(snap session.Snapshot) *GameSessionDTO {
	var endedAt *int64
	if snap.EndedAt != nil {
		e := snap.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		SessionId: snap.ID.String(),
		Grid:      snap.Grid,
		Width:     snap.Params.Width,
		Height:    snap.Params.Height,
		MineCount: snap.Params.MineCount,
		Flags:     snap.Flags,
		State:     snap.State,
		Dead:      snap.Dead(),
		Won:       snap.Won(),
		StartedAt: snap.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}

type PlayerDTO struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type StatusDTO struct {
	LoggedIn bool       `json:"logged_in"`
	Player   *PlayerDTO `json:"player,omitempty"`
}

type CredentialsDTO struct {
	Username string `schema:"username,required" validate:"min=3,max=32,alphanum"`
	Password string `schema:"password,required" validate:"min=6,max=72"`
}
