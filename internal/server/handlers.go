package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"beastduel/internal/analytics"
	"beastduel/internal/criteria"
	"beastduel/internal/dataset"
	"beastduel/internal/db"
	"beastduel/internal/game"
	"beastduel/internal/rooms"
)

type Server struct {
	Rooms        *rooms.Store
	AudioDefault bool
	RoundDelay   time.Duration
	DB           *db.DB            // nil if no database configured
	GuessBuffer  chan db.GuessEvent // nil if no database configured

	mu    sync.Mutex
	asked map[string]askedRound // room code -> when its current round was posed
}

type askedRound struct {
	round int
	at    time.Time
}

func NewServer(roomStore *rooms.Store, audioDefault bool, roundDelay time.Duration) *Server {
	return &Server{
		Rooms:        roomStore,
		AudioDefault: audioDefault,
		RoundDelay:   roundDelay,
		asked:        make(map[string]askedRound),
	}
}

// markRound records when a round was first seen so reaction times can be
// measured against it.
func (s *Server) markRound(code string, round int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.asked[code]; ok && prev.round == round {
		return
	}
	s.asked[code] = askedRound{round: round, at: time.Now()}
}

func (s *Server) askedAt(code string, round int) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.asked[code]; ok && prev.round == round {
		return prev.at
	}
	return time.Now()
}

// getRoom resolves the current room from the room_code cookie.
func (s *Server) getRoom(r *http.Request) *rooms.Room {
	cookie, err := r.Cookie("room_code")
	if err != nil {
		return nil
	}
	return s.Rooms.Get(cookie.Value)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Handle] encode error: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type animalView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Scientific  string `json:"scientific_name,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ImageCredit string `json:"image_credit,omitempty"`
}

type roundView struct {
	Scene     string     `json:"scene"`
	Round     int        `json:"round"`
	Score     int        `json:"score"`
	Prompt    string     `json:"prompt,omitempty"`
	Criterion string     `json:"criterion,omitempty"`
	Kind      string     `json:"kind,omitempty"`
	Unit      string     `json:"unit,omitempty"`
	Bridged   bool       `json:"bridged,omitempty"`
	Media     string     `json:"media,omitempty"`
	Left      *animalView `json:"left,omitempty"`
	Right     *animalView `json:"right,omitempty"`
}

func viewAnimal(a *dataset.Animal) *animalView {
	return &animalView{
		ID:          a.ID,
		Name:        a.Name,
		Scientific:  a.ScientificName,
		ImageURL:    a.ImageURL,
		ImageCredit: a.ImageCredit,
	}
}

// viewRound shapes the current round for clients. Attribute values are
// withheld until the round is answered.
func (s *Server) viewRound(room *rooms.Room) roundView {
	g := room.Game
	if g.Scene() != game.ScenePlaying {
		return roundView{Scene: string(g.Scene()), Round: g.RoundNumber(), Score: g.Score()}
	}
	r := g.CurrentRound()
	if r == nil {
		return roundView{Scene: string(g.Scene()), Score: g.Score()}
	}

	s.markRound(room.Code, g.RoundNumber())

	v := roundView{
		Scene:     string(game.ScenePlaying),
		Round:     g.RoundNumber(),
		Score:     g.Score(),
		Prompt:    r.Prompt(),
		Criterion: string(r.Criterion.Key),
		Kind:      r.Criterion.Kind.String(),
		Unit:      r.Criterion.Unit,
		Bridged:   r.Bridged,
		Left:      viewAnimal(r.Left),
		Right:     viewAnimal(r.Right),
	}
	if r.Criterion.Kind == criteria.KindAudioTarget && r.Context != nil {
		v.Media = r.Context.Value
	}
	return v
}

type createGameRequest struct {
	Name  string `json:"name"`
	Mode  string `json:"mode"`
	Audio *bool  `json:"audio"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	fmt.Println("[Handle:CreateGame] Request Received")

	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode := game.ModeUnlimited
	if req.Mode == string(game.ModeDaily) {
		mode = game.ModeDaily
	}
	audio := s.AudioDefault
	if req.Audio != nil {
		audio = *req.Audio
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Anonymous"
	}

	playerID := uuid.New().String()
	if idCookie, err := r.Cookie("player_id"); err == nil && idCookie.Value != "" {
		playerID = idCookie.Value
	}

	room, err := s.Rooms.Create(playerID, name, mode, audio)
	if err != nil {
		log.Println(err)
		writeError(w, http.StatusInternalServerError, "failed to create game")
		return
	}

	if s.DB != nil {
		if err := s.DB.UpsertPlayer(playerID, name); err != nil {
			log.Printf("[DB] UpsertPlayer error: %v\n", err)
		} else {
			gameID, err := s.DB.CreateGame(room.Code, playerID, string(mode), room.Game.SeedKey())
			if err != nil {
				log.Printf("[DB] CreateGame error: %v\n", err)
			} else {
				room.GameRecordID = gameID
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "room_code",
		Value:    room.Code,
		Path:     "/",
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "player_id",
		Value:    playerID,
		Path:     "/",
		HttpOnly: true,
	})

	fmt.Printf("[Handle:CreateGame] Created room %s (%s)\n", room.Code, mode)
	writeJSON(w, http.StatusCreated, map[string]any{
		"code":     room.Code,
		"mode":     string(mode),
		"seed_key": room.Game.SeedKey(),
		"round":    s.viewRound(room),
	})
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		writeError(w, http.StatusNotFound, "no active game")
		return
	}
	writeJSON(w, http.StatusOK, s.viewRound(room))
}

type guessRequest struct {
	Side string `json:"side"`
}

type guessResponse struct {
	Correct     bool   `json:"correct"`
	WinningSide string `json:"winning_side"`
	LeftValue   string `json:"left_value"`
	RightValue  string `json:"right_value"`
	Score       int    `json:"score"`
	GameOver    bool   `json:"game_over"`
	NextRoundMs int64  `json:"next_round_ms,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		writeError(w, http.StatusNotFound, "no active game")
		return
	}

	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	side := criteria.SideLeft
	switch req.Side {
	case "left":
	case "right":
		side = criteria.SideRight
	default:
		writeError(w, http.StatusBadRequest, "side must be left or right")
		return
	}

	resp, status, err := s.doGuess(room, side)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// doGuess grades a guess, records it, and closes out the game record on
// a loss. Shared by the HTTP and WebSocket paths.
func (s *Server) doGuess(room *rooms.Room, side criteria.Side) (guessResponse, int, error) {
	roundNo := room.Game.RoundNumber()
	current := room.Game.CurrentRound()

	res, err := room.Game.Guess(side)
	if err != nil {
		switch err {
		case game.ErrGameOver:
			return guessResponse{}, http.StatusConflict, err
		case game.ErrRoundPending:
			return guessResponse{}, http.StatusConflict, err
		default:
			return guessResponse{}, http.StatusInternalServerError, err
		}
	}

	answeredAt := time.Now()
	if s.GuessBuffer != nil && room.GameRecordID != "" && current != nil {
		askedAt := s.askedAt(room.Code, roundNo)
		select {
		case s.GuessBuffer <- db.GuessEvent{
			GameID:       room.GameRecordID,
			PlayerID:     room.PlayerID,
			RoundNo:      roundNo,
			CriterionKey: string(current.Criterion.Key),
			Bridged:      current.Bridged,
			GuessedSide:  side.String(),
			Correct:      res.Correct,
			AskedAt:      askedAt,
			AnsweredAt:   answeredAt,
			ReactionMs:   int(answeredAt.Sub(askedAt).Milliseconds()),
		}:
		default:
			log.Println("[DB] Guess buffer full, dropping event")
		}
	}

	if res.GameOver {
		s.finishGameRecord(room, res.Score)
	}

	resp := guessResponse{
		Correct:     res.Correct,
		WinningSide: res.WinningSide.String(),
		LeftValue:   res.LeftValue,
		RightValue:  res.RightValue,
		Score:       res.Score,
		GameOver:    res.GameOver,
	}
	if res.Correct && !res.GameOver {
		resp.NextRoundMs = s.RoundDelay.Milliseconds()
	}
	return resp, http.StatusOK, nil
}

// finishGameRecord persists the final score and runs badge evaluation.
func (s *Server) finishGameRecord(room *rooms.Room, finalScore int) {
	if s.DB == nil || room.GameRecordID == "" {
		return
	}
	if err := s.DB.FinishGame(room.GameRecordID, finalScore); err != nil {
		log.Printf("[DB] FinishGame error: %v\n", err)
		return
	}

	q := analytics.NewQueries(s.DB)
	gameStats, err := q.GetPlayerGameStats(room.GameRecordID, room.PlayerID)
	if err != nil {
		log.Printf("[DB] GetPlayerGameStats error: %v\n", err)
		return
	}
	for _, b := range analytics.EvaluateGameBadges(*gameStats) {
		gID := room.GameRecordID
		if err := s.DB.AwardBadge(room.PlayerID, string(b.ID), &gID); err != nil {
			log.Printf("[DB] AwardBadge error: %v\n", err)
		}
	}
	lifeStats, err := q.GetPlayerLifetimeStats(room.PlayerID)
	if err != nil {
		return
	}
	for _, b := range analytics.EvaluateLifetimeBadges(*lifeStats) {
		if err := s.DB.AwardBadge(room.PlayerID, string(b.ID), nil); err != nil {
			log.Printf("[DB] AwardBadge error: %v\n", err)
		}
	}
}

type audioRequest struct {
	On bool `json:"on"`
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	fmt.Println("[Handle:Audio] Request Received")
	room := s.getRoom(r)
	if room == nil {
		writeError(w, http.StatusNotFound, "no active game")
		return
	}

	var req audioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room.Game.SetAudioAllowed(req.On)
	writeJSON(w, http.StatusOK, s.viewRound(room))
}

func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	fmt.Println("[Handle:Quit] Request Received")
	room := s.getRoom(r)
	if room == nil {
		writeError(w, http.StatusNotFound, "no active game")
		return
	}

	s.finishGameRecord(room, room.Game.Score())
	s.Rooms.Delete(room.Code)

	http.SetCookie(w, &http.Cookie{
		Name:   "room_code",
		Path:   "/",
		MaxAge: -1,
	})
	writeJSON(w, http.StatusOK, map[string]any{"score": room.Game.Score()})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	room := s.getRoom(r)
	if room == nil {
		writeError(w, http.StatusNotFound, "no active game")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	msgChan := room.Broadcaster.Subscribe()
	defer room.Broadcaster.Unsubscribe(msgChan)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-msgChan:
			fmt.Fprintf(w, "event: %s\n", msg.Event)
			for _, line := range strings.Split(msg.Msg, "\n") {
				fmt.Fprintf(w, "data: %s\n", line)
			}
			fmt.Fprint(w, "\n")
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"%s","error":"%s"}`, status, err.Error())
			return
		}
	}
	fmt.Fprintf(w, `{"status":"%s"}`, status)
}
