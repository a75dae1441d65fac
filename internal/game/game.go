package game

import (
	"errors"
	"sync"
	"time"

	"beastduel/internal/criteria"
	"beastduel/internal/dataset"
	"beastduel/internal/engine"
	"beastduel/internal/events"
	"beastduel/internal/rng"
)

type Mode string

const (
	ModeDaily     = Mode("daily")
	ModeUnlimited = Mode("unlimited")
)

type Scene string

const (
	ScenePlaying  = Scene("playing")
	SceneGameOver = Scene("gameover")
)

// ErrGameOver is returned for guesses after the session has ended.
var ErrGameOver = errors.New("game is over")

// ErrRoundPending is returned when a round was already answered and the
// next one is still on its delay timer.
var ErrRoundPending = errors.New("round already answered")

// Game is one play session: a pool, a random source, engine state, and
// the current round. Everything is mutated under one lock; the only
// asynchronous actor is the inter-round delay timer, which is cancelled
// before any state change that could invalidate it.
type Game struct {
	mu  sync.Mutex
	cfg Config

	mode    Mode
	seedKey string
	eng     *engine.Engine
	st      *engine.State
	Events  *events.Bus

	scene        Scene
	audioAllowed bool
	current      *engine.Round
	curAnchor    *dataset.Animal
	curExclude   map[string]bool
	curFirst     bool
	roundNo      int
	score        int
	answered     bool
	delay        *time.Timer
}

// New builds a session over pool. Daily mode derives a seed key from
// now's Pacific calendar date, so every player that day shares the same
// round sequence; unlimited mode uses a non-reproducible source.
func New(pool []*dataset.Animal, mode Mode, audioAllowed bool, cfg Config, bus *events.Bus, now time.Time) *Game {
	var src rng.Source
	seedKey := ""
	if mode == ModeDaily {
		seedKey = DailyKey(now)
		src = rng.Seeded(seedKey)
	} else {
		mode = ModeUnlimited
		src = rng.Unseeded()
	}
	return &Game{
		cfg:          cfg,
		mode:         mode,
		seedKey:      seedKey,
		eng:          engine.New(pool, src, cfg.Engine),
		st:           engine.NewState(),
		Events:       bus,
		scene:        ScenePlaying,
		audioAllowed: audioAllowed,
	}
}

// Start assembles the opening round.
func (g *Game) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.advanceLocked(nil, nil, true, false)
}

// advanceLocked produces a round from the given inputs and rolls the
// session forward. replace regenerates the current round in place
// (keeping its number), used when an audio round must be discarded.
func (g *Game) advanceLocked(anchor *dataset.Animal, exclude map[string]bool, first, replace bool) error {
	var (
		r   *engine.Round
		err error
	)
	if first {
		r, err = g.eng.FirstRound(g.st, g.audioAllowed)
	} else {
		r, err = g.eng.NextRound(g.st, anchor, exclude, g.audioAllowed)
	}
	if err != nil {
		if errors.Is(err, engine.ErrExhausted) {
			g.gameOverLocked()
		}
		return err
	}

	g.current = r
	g.curAnchor = anchor
	g.curExclude = exclude
	g.curFirst = first
	g.answered = false
	if !replace {
		g.roundNo++
	}
	g.publishRound(events.RoundEvent{Number: g.roundNo, Criterion: string(r.Criterion.Key)})
	return nil
}

// GuessResult is what a player learns after committing to a side.
type GuessResult struct {
	Correct     bool
	WinningSide criteria.Side
	LeftValue   string
	RightValue  string
	Score       int
	GameOver    bool
}

// Guess grades the player's pick against the data. A correct guess
// schedules the next round after the configured delay; a wrong guess
// ends the session.
func (g *Game) Guess(side criteria.Side) (GuessResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.scene != ScenePlaying || g.current == nil {
		return GuessResult{}, ErrGameOver
	}
	if g.answered {
		return GuessResult{}, ErrRoundPending
	}

	r := g.current
	winSide := r.WinningSide()
	res := GuessResult{
		Correct:     side == winSide,
		WinningSide: winSide,
		LeftValue:   criteria.DisplayValue(r.Left, r.Criterion),
		RightValue:  criteria.DisplayValue(r.Right, r.Criterion),
	}

	if !res.Correct {
		g.gameOverLocked()
		res.Score = g.score
		res.GameOver = true
		return res, nil
	}

	g.score++
	g.answered = true
	res.Score = g.score

	anchor := r.Winner()
	exclude := map[string]bool{r.Loser().ID: true}
	g.delay = time.AfterFunc(g.cfg.RoundDelay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.scene != ScenePlaying || !g.answered {
			return
		}
		_ = g.advanceLocked(anchor, exclude, false, false)
	})
	return res, nil
}

// SetAudioAllowed flips the audio-criteria toggle. Any pending round
// timer is cancelled first, and an in-flight audio round is discarded
// and reselected under the new setting.
func (g *Game) SetAudioAllowed(allowed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cancelDelayLocked()
	g.audioAllowed = allowed

	if g.scene != ScenePlaying || g.current == nil {
		return
	}
	if g.answered {
		// A next round was pending; assemble it now under the new
		// toggle instead of leaving the session stalled.
		anchor := g.current.Winner()
		exclude := map[string]bool{g.current.Loser().ID: true}
		_ = g.advanceLocked(anchor, exclude, false, false)
		return
	}
	if !allowed && g.current.Criterion.Kind == criteria.KindAudioTarget {
		_ = g.advanceLocked(g.curAnchor, g.curExclude, g.curFirst, true)
	}
}

// Stop cancels any pending timer; the session keeps its final state.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelDelayLocked()
}

func (g *Game) gameOverLocked() {
	g.cancelDelayLocked()
	g.scene = SceneGameOver
	g.publishScene(events.SceneChangeEvent{Scene: string(SceneGameOver)})
}

func (g *Game) cancelDelayLocked() {
	if g.delay != nil {
		g.delay.Stop()
		g.delay = nil
	}
}

// publishRound and publishScene never block: a full bus drops the event
// rather than wedging the game under its own lock.
func (g *Game) publishRound(ev events.RoundEvent) {
	if g.Events == nil {
		return
	}
	select {
	case g.Events.Rounds <- ev:
	default:
	}
}

func (g *Game) publishScene(ev events.SceneChangeEvent) {
	if g.Events == nil {
		return
	}
	select {
	case g.Events.SceneChanges <- ev:
	default:
	}
}

func (g *Game) CurrentRound() *engine.Round {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

func (g *Game) Scene() Scene {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scene
}

func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

func (g *Game) RoundNumber() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roundNo
}

func (g *Game) Mode() Mode { return g.mode }

func (g *Game) SeedKey() string { return g.seedKey }

func (g *Game) AudioAllowed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.audioAllowed
}
