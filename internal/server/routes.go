package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"beastduel/internal/config"
	"beastduel/internal/dataset"
	"beastduel/internal/db"
	"beastduel/internal/game"
	"beastduel/internal/rooms"
)

func Run() error {
	appCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pool, err := dataset.Load(appCfg.DatasetPath)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	gameCfg, err := game.LoadConfig(appCfg.TuningPath)
	if err != nil {
		return fmt.Errorf("loading tuning: %w", err)
	}

	roomStore := rooms.NewStore(pool, gameCfg)
	srv := NewServer(roomStore, appCfg.AudioDefault, gameCfg.RoundDelay)

	// Optional database connection
	if appCfg.DatabaseURL != "" {
		database, err := db.Connect(appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running without database)\n", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			srv.DB = database
			srv.GuessBuffer = make(chan db.GuessEvent, 1000)
			go guessBatchWriter(database, srv.GuessBuffer)
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without database")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /games", srv.handleCreateGame)
	mux.HandleFunc("GET /game/round", srv.handleRound)
	mux.HandleFunc("POST /game/guess", srv.handleGuess)
	mux.HandleFunc("POST /game/audio", srv.handleAudio)
	mux.HandleFunc("POST /game/quit", srv.handleQuit)
	mux.HandleFunc("GET /game/events", srv.handleEvents)
	mux.HandleFunc("GET /game/ws", srv.handleWS)
	mux.HandleFunc("GET /health", srv.handleHealth)
	mux.HandleFunc("GET /analytics/me", srv.handleAnalyticsMe)
	mux.HandleFunc("GET /analytics/leaderboard", srv.handleAnalyticsLeaderboard)
	mux.HandleFunc("GET /analytics/daily", srv.handleAnalyticsDaily)
	mux.HandleFunc("GET /analytics/player/", srv.handleAnalyticsPlayer)
	mux.HandleFunc("GET /analytics/game/", srv.handleAnalyticsGame)

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, mux)
}

func guessBatchWriter(database *db.DB, buffer chan db.GuessEvent) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	batch := make([]db.GuessEvent, 0, 50)

	for {
		select {
		case ev := <-buffer:
			batch = append(batch, ev)
			if len(batch) >= 50 {
				if err := database.BatchRecordGuesses(batch); err != nil {
					log.Printf("[DB] BatchRecordGuesses error: %v\n", err)
				}
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				if err := database.BatchRecordGuesses(batch); err != nil {
					log.Printf("[DB] BatchRecordGuesses error: %v\n", err)
				}
				batch = batch[:0]
			}
		}
	}
}
