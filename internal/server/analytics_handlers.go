package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"beastduel/internal/analytics"
	"beastduel/internal/game"
)

func (s *Server) handleAnalyticsMe(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics requires a database connection")
		return
	}

	idCookie, err := r.Cookie("player_id")
	if err != nil {
		writeError(w, http.StatusUnauthorized, "no player identity")
		return
	}

	q := analytics.NewQueries(s.DB)
	stats, err := q.GetPlayerLifetimeStats(idCookie.Value)
	if err != nil {
		log.Printf("[Analytics] player stats error: %v\n", err)
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAnalyticsLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics requires a database connection")
		return
	}

	q := analytics.NewQueries(s.DB)
	category := r.URL.Query().Get("cat")
	if category == "" {
		category = "score"
	}

	entries, err := q.GetLeaderboard(category, 10)
	if err != nil {
		log.Printf("[Analytics] leaderboard error: %v\n", err)
		writeError(w, http.StatusBadRequest, "unknown leaderboard category")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAnalyticsDaily(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics requires a database connection")
		return
	}

	seedKey := r.URL.Query().Get("date")
	if seedKey == "" {
		seedKey = game.DailyKey(time.Now())
	}

	q := analytics.NewQueries(s.DB)
	entries, err := q.GetDailyLeaderboard(seedKey, 10)
	if err != nil {
		log.Printf("[Analytics] daily leaderboard error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "error loading daily leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": seedKey, "entries": entries})
}

func (s *Server) handleAnalyticsPlayer(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics requires a database connection")
		return
	}

	// /analytics/player/{id}
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 4 {
		writeError(w, http.StatusBadRequest, "player ID required")
		return
	}
	playerID := parts[3]

	q := analytics.NewQueries(s.DB)
	stats, err := q.GetPlayerLifetimeStats(playerID)
	if err != nil {
		log.Printf("[Analytics] player stats error: %v\n", err)
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAnalyticsGame(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics requires a database connection")
		return
	}

	// /analytics/game/{id}
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 4 {
		writeError(w, http.StatusBadRequest, "game ID required")
		return
	}
	gameID := parts[3]

	q := analytics.NewQueries(s.DB)
	recap, err := q.GetGameRecap(gameID)
	if err != nil {
		log.Printf("[Analytics] game recap error: %v\n", err)
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, recap)
}
