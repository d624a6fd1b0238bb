package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/Chandima0406/NovaScript/app"
	"github.com/Chandima0406/NovaScript/config"
	"github.com/Chandima0406/NovaScript/database"
	"github.com/Chandima0406/NovaScript/log"
	"github.com/Chandima0406/NovaScript/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	handler := routes.Wire(app.New(db, cfg))

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Addr)
	return srv.ListenAndServe()
}
