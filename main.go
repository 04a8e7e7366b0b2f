package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gstbook/cmd"
	"gstbook/internal/config"
	"gstbook/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load(os.Getenv("GSTBOOK_CONFIG"))
	if err != nil {
		log.Printf("Warning: Could not load configuration: %v", err)
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else {
		if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		cmd.SetConfig(cfg)
	}

	log := logger.WithComponent("main")
	log.Debug().Msg("Starting gstbook")

	cmd.Execute()
}
