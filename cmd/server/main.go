package main

import (
	"fmt"
	"log"

	"cpms/internal/config"
	"cpms/internal/database"
	"cpms/internal/server"
)

func main() {
	cfg := config.Load()

	db, err := database.Init(cfg.DBDSN)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	r := server.NewRouter(cfg, db)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
