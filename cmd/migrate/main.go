package main

import (
	"log"
	"os"

	"github.com/kudzimusar/schoolrun-bus-app/config"
	"github.com/kudzimusar/schoolrun-bus-app/db"
)

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := db.Migrate(cfg.PostgresDSN, direction); err != nil {
		log.Fatalf("migrate %s: %v", direction, err)
	}

	log.Printf("migrations %s: done", direction)
}
