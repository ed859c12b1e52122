package main

import (
	"net/http"
	"os"
	"time"

	"pawclinic/internal/platform/logger"
	"pawclinic/internal/router"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	log := logger.NewFromEnv()

	r := router.NewRouter(router.Options{Log: log})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
