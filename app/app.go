package app

import (
	"database/sql"

	"github.com/go-chi/jwtauth/v5"

	"github.com/Chandima0406/NovaScript/config"
)

type App struct {
	*sql.DB
	TokenAuth *jwtauth.JWTAuth
	config.Config
}

func New(db *sql.DB, cfg config.Config) App {
	return App{
		DB:        db,
		TokenAuth: jwtauth.New("HS256", []byte(cfg.JWTSecret), nil),
		Config:    cfg,
	}
}
