package main

import (
	"context"
	"log"

	"github.com/barathvelmu/deterministic-voice-intelligence/internal/bootstrap"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/config"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/server"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/tracer"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
