package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexlindsay/chron-server/internal/events"
	"github.com/alexlindsay/chron-server/internal/httpserver"
	"github.com/alexlindsay/chron-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := events.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load event sets")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/chron.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db)
	port := getEnv("PORT", "3000")
	log.Info().Str("port", port).Msg("starting chron-server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
