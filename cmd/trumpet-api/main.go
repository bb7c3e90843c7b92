package main

import (
	"log"

	"trumpet/internal/config"
	"trumpet/internal/dbmysql"
	"trumpet/internal/di"
)

func main() {
	cfg := config.Load()
	log.Println("configuration loaded")

	db, err := dbmysql.NewMySQL(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	server := di.InitializeServer(db, cfg)
	log.Println("dependencies wired")

	if err := server.Listen(cfg.Addr()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
