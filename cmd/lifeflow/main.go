package main

import (
	"log"
	"os"

	"github.com/lifeflow/core/cmd/lifeflow/commands"
)

// @title LifeFlow API
// @version 1.0
// @description Local API over the LifeFlow personal productivity store

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
