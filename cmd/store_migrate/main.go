package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"crossmatch/internal/logging"
	sqlstore "crossmatch/internal/storage/sqlite"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logging.InitFromEnv()

	store, err := sqlstore.Open(os.Getenv("SQLITE_PATH"))
	if err != nil {
		logging.Fatalf("[store-migrate] open sqlite: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		logging.Fatalf("[store-migrate] migrate: %v", err)
	}
	logging.Infof("[store-migrate] schema ready at %s", store.Path())
}
