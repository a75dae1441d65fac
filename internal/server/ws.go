package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"beastduel/internal/criteria"
	"beastduel/internal/wshub"
)

// handleWS upgrades the connection and runs the read loop. Guesses and
// audio toggles arrive as JSON messages; every state change is pushed
// back to all of the room's connections.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		writeError(w, http.StatusNotFound, "no active game")
		return
	}

	playerID := uuid.New().String()
	if idCookie, err := r.Cookie("player_id"); err == nil && idCookie.Value != "" {
		playerID = idCookie.Value
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	client := &wshub.Client{
		PlayerID: playerID,
		Conn:     conn,
		Send:     make(chan []byte, 16),
	}
	room.Hub.Register(client)
	defer room.Hub.Unregister(playerID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go client.WritePump(ctx)

	// Current state straight away so a reconnecting client can resume.
	room.Hub.Broadcast(map[string]any{"t": "round", "round": s.viewRound(room)})

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var msg wshub.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "guess":
			side := criteria.SideLeft
			if msg.Side == "right" {
				side = criteria.SideRight
			}
			resp, _, err := s.doGuess(room, side)
			if err != nil {
				room.Hub.Broadcast(map[string]any{"t": "error", "error": err.Error()})
				continue
			}
			room.Hub.Broadcast(map[string]any{"t": "result", "result": resp})
		case "audio":
			room.Game.SetAudioAllowed(msg.On)
			room.Hub.Broadcast(map[string]any{"t": "round", "round": s.viewRound(room)})
		}
	}
}
