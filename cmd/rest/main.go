package main

import (
	"context"
	"log"

	"ad-marketplace-be/internal/bootstrap"
	"ad-marketplace-be/internal/config"
	"ad-marketplace-be/internal/server"
	"ad-marketplace-be/internal/tracer"
	"ad-marketplace-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.ActorRegistry.Shutdown()

	// 4. Start Background Services
	// Note: In a larger app, we might use an errgroup or supervisor here
	go func() {
		log.Println("Background: Starting Expiry Consumer...")
		if err := container.ExpiryService.Consume(context.Background()); err != nil {
			log.Printf("Background Expiry Consumer Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Expiry Sweep...")
		container.ExpiryService.Run(context.Background())
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
