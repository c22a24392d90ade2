package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"duck-royale/internal/api"
	"duck-royale/internal/config"
	"duck-royale/internal/game"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 no .env file, using environment variables only")
	}

	cfg := config.Load()
	log.Printf("🦆 Duck Royale server: %d ticks/s, arena %.0f, %d slots, %s match",
		cfg.Game.TickRate, cfg.Game.ArenaRadius, cfg.Game.MaxPlayers, cfg.Game.MatchDuration)

	hub := api.NewHub()
	engine := game.NewEngine(cfg.Game, hub)
	hub.BindEngine(engine)

	server := api.NewServer(engine, hub, api.Config{
		StaticDir: cfg.Server.StaticDir,
	})

	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		api.StartDebugServer(api.DefaultObservabilityConfig())
	}

	engine.Start()

	go func() {
		addr := ":" + strconv.Itoa(cfg.Server.Port)
		if err := server.Start(addr); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	log.Println("✅ ready")
	<-quit

	log.Println("🛑 shutting down")
	server.Stop()
	engine.Stop()
}
