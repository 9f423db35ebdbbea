package engine

import (
	"log"
	"math/rand"
	"time"
)

// ScoreStore persists the best score between sessions
type ScoreStore interface {
	ReadBestScore() (int, error)
	WriteBestScore(score int) error
}

// Engine provides the main interface for game operations
type Engine interface {
	// Scheduling
	IsUpdateDue(now int64) bool
	Tick(now int64) TickResult

	// Input
	RequestTurn(side Side, now int64) bool
	RequestPauseToggle(now int64) bool

	// Lifecycle
	Reset(now int64)
	ResetWithScore(initial int, now int64)
	AcknowledgeDeath() bool

	// Read-only view
	Snapshot() Snapshot
	Score() int
	HighScore() int
	State() State
	Config() *GameConfig
}

var _ Engine = (*GameEngine)(nil)

// TickResult summarizes one call to Tick
type TickResult struct {
	Advanced bool       `json:"advanced"`
	Steps    int        `json:"steps"`
	Died     bool       `json:"died"`
	Cause    DeathCause `json:"cause,omitempty"`
	Events   []Event    `json:"events,omitempty"`
	State    State      `json:"state"`
}

// Option customizes a GameEngine
type Option func(*GameEngine)

// WithScoreStore sets the best-score persistence capability
func WithScoreStore(store ScoreStore) Option {
	return func(e *GameEngine) {
		e.store = store
	}
}

// WithRandom replaces the random source, mainly for tests
func WithRandom(rng Random) Option {
	return func(e *GameEngine) {
		e.rng = rng
	}
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; game/loop serializes access to it.
type GameEngine struct {
	config *GameConfig
	grid   Grid
	rng    Random
	policy *SpawnPolicy
	store  ScoreStore

	snake     *Snake
	obstacles *ObstacleField
	apple     *Item
	bonus     *Item
	penalty   *Item
	timeline  effectTimeline

	score            int
	highScore        int
	state            State
	justDied         bool
	deathCause       DeathCause
	lastSpecialSpawn int64
	nextTickAt       int64
	pausedAt         int64

	ticks   uint64
	lastNow int64
	events  []Event
}

// NewEngine creates a new game engine with the provided configuration. The
// engine starts in StateHome with a board laid out for display.
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config: config,
		grid:   config.Grid(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}
	e.policy = NewSpawnPolicy(config, e.rng)
	e.snake = NewSnake(config.GridWidth, config.GridHeight, config.InitialLength)
	e.obstacles = NewObstacleField()
	e.apple = NewItem(RegularApple, 1, config.ItemLifetimeMs, true)
	e.bonus = NewItem(BonusItem, config.BonusMultiplier, config.SpecialLifetimeMs, false)
	e.penalty = NewItem(PenaltyItem, config.PenaltyMultiplier, config.SpecialLifetimeMs, false)
	e.highScore = e.readBestScore()

	e.layoutBoard(0, 0)
	e.state = StateHome
	return e, nil
}

func (e *GameEngine) readBestScore() int {
	if e.store == nil {
		return 0
	}
	best, err := e.store.ReadBestScore()
	if err != nil {
		log.Printf("Warning: failed to read best score: %v", err)
		return 0
	}
	if best < 0 {
		return 0
	}
	return best
}

func (e *GameEngine) writeBestScore(score int) {
	if e.store == nil {
		return
	}
	if err := e.store.WriteBestScore(score); err != nil {
		log.Printf("Warning: failed to write best score: %v", err)
	}
}

// items lists every item in a fixed order
func (e *GameEngine) items() []*Item {
	return []*Item{e.apple, e.bonus, e.penalty}
}

// entities lists everything placed on the grid
func (e *GameEngine) entities() []Entity {
	return []Entity{e.snake, e.obstacles, e.apple, e.bonus, e.penalty}
}

func (e *GameEngine) layoutBoard(initialScore int, now int64) {
	e.snake.Reset(e.config.GridWidth, e.config.GridHeight, e.config.InitialLength)
	e.obstacles.Initialize(e.grid, e.config.ObstacleCount, e.rng)
	e.apple.Spawn(e.grid, e.rng, now)
	e.bonus.Hide()
	e.penalty.Hide()
	e.timeline.Clear()
	e.score = initialScore
	e.justDied = false
	e.deathCause = CauseNone
	e.lastSpecialSpawn = now - e.config.SpecialCooldownMs
	e.nextTickAt = now
}

// Reset starts a new life with score 0
func (e *GameEngine) Reset(now int64) {
	e.ResetWithScore(0, now)
}

// ResetWithScore starts a new life carrying an initial score
func (e *GameEngine) ResetWithScore(initial int, now int64) {
	if initial < 0 {
		initial = 0
	}
	e.layoutBoard(initial, now)
	e.state = StatePlaying
	e.lastNow = now
	e.events = e.events[:0]
	e.emit(Event{Type: EventStart, At: now})
}

// IsUpdateDue reports whether a tick should run at now
func (e *GameEngine) IsUpdateDue(now int64) bool {
	return e.state == StatePlaying && now >= e.nextTickAt
}

// Tick advances the simulation by one step if it is due
func (e *GameEngine) Tick(now int64) TickResult {
	if !e.IsUpdateDue(now) {
		return TickResult{State: e.state}
	}
	e.nextTickAt = now + e.config.TickIntervalMs
	e.lastNow = now
	e.ticks++

	e.events = e.events[:0]

	steps := e.snake.SpeedFactor()
	for _, ent := range e.entities() {
		ent.Advance(steps)
	}

	for _, effect := range e.timeline.Due(now) {
		if effect.class() == EffectBoost.class() {
			e.snake.ClearSpeedModifier()
			e.events = append(e.events, Event{Type: EventSpeedReset, At: now})
		}
	}

	if dead, cause := e.snake.DetectDeath(e.grid, e.obstacles); dead {
		e.die(cause, now)
		return e.result(steps)
	}

	// Items under the head are collected before any is consumed, so an item
	// spawned onto the head by this consumption waits for a later tick
	head := e.snake.Head()
	var eaten []*Item
	for _, it := range e.items() {
		if it.Occupies(head) {
			eaten = append(eaten, it)
		}
	}
	for _, it := range eaten {
		e.consume(it, now)
	}

	for _, it := range e.items() {
		switch {
		case it.NeedsRespawn(now):
			it.Spawn(e.grid, e.rng, now)
			e.events = append(e.events, e.itemEvent(EventItemSpawn, it, now))
		case it.Expired(now):
			e.events = append(e.events, e.itemEvent(EventItemExpire, it, now))
			it.Hide()
		}
	}

	return e.result(steps)
}

func (e *GameEngine) result(steps int) TickResult {
	events := make([]Event, len(e.events))
	copy(events, e.events)
	return TickResult{
		Advanced: true,
		Steps:    steps,
		Died:     e.state == StateGameOver,
		Cause:    e.deathCause,
		Events:   events,
		State:    e.state,
	}
}

func (e *GameEngine) itemEvent(t EventType, it *Item, now int64) Event {
	loc := it.Location
	return Event{Type: t, Item: it.Kind, Cell: &loc, At: now}
}

// consume applies the effect of eating it and schedules its replacement
func (e *GameEngine) consume(it *Item, now int64) {
	points := it.Points()
	e.score += points
	e.snake.Grow()
	ev := e.itemEvent(EventAte, it, now)
	ev.Points = points
	e.events = append(e.events, ev)

	switch it.Kind {
	case BonusItem:
		if e.policy.RollEffect() {
			e.snake.ApplySpeedBoost(e.config.BoostSteps, e.config.BoostDurationMs, now)
			e.timeline.Schedule(EffectBoost, e.snake.ModifierExpiry())
			e.events = append(e.events, Event{Type: EventBoost, At: now})
		}
	case PenaltyItem:
		if e.policy.RollEffect() {
			e.snake.ApplySpeedDecrease(FrozenSpeed, e.config.SlowDurationMs, now)
			e.timeline.Schedule(EffectSlow, e.snake.ModifierExpiry())
			e.events = append(e.events, Event{Type: EventSlow, At: now})
		}
	}

	if it.RespawnOnExpiry {
		it.Spawn(e.grid, e.rng, now)
		e.events = append(e.events, e.itemEvent(EventItemSpawn, it, now))
	} else {
		it.Hide()
	}
	e.spawnSpecial(now)
}

// spawnSpecial asks the policy whether a special item follows a consumption
func (e *GameEngine) spawnSpecial(now int64) {
	var it *Item
	switch e.policy.ChooseOutcome() {
	case BonusItem:
		it = e.bonus
	case PenaltyItem:
		it = e.penalty
	default:
		return
	}
	if it.Visible() || now-e.lastSpecialSpawn < e.config.SpecialCooldownMs {
		return
	}
	it.SpawnIn(e.grid.Inset(e.config.SpecialMargin), e.rng, now)
	e.lastSpecialSpawn = now
	e.events = append(e.events, e.itemEvent(EventItemSpawn, it, now))
}

// die ends the life. The board stays as it was so it can be shown until
// the restart tap.
func (e *GameEngine) die(cause DeathCause, now int64) {
	e.state = StateGameOver
	e.justDied = true
	e.deathCause = cause
	e.timeline.Clear()
	e.events = append(e.events, Event{Type: EventDeath, Points: e.score, At: now})
	// Other sessions may have saved a better score since this one started
	if stored := e.readBestScore(); stored > e.highScore {
		e.highScore = stored
	}
	if e.score > e.highScore {
		e.highScore = e.score
		e.writeBestScore(e.score)
		e.events = append(e.events, Event{Type: EventNewRecord, Points: e.score, At: now})
	}
}

// RequestTurn handles a tap on one side of the screen. In Home and GameOver
// a tap starts a new life instead of turning. It reports whether the tap
// had any effect.
func (e *GameEngine) RequestTurn(side Side, now int64) bool {
	switch e.state {
	case StatePlaying:
		e.snake.SwitchHeading(side)
		return true
	case StateHome, StateGameOver:
		e.Reset(now)
		return true
	}
	return false
}

// RequestPauseToggle switches between Playing and Paused. Resuming shifts
// every session timer by the paused duration.
func (e *GameEngine) RequestPauseToggle(now int64) bool {
	switch e.state {
	case StatePlaying:
		e.state = StatePaused
		e.pausedAt = now
		e.emit(Event{Type: EventPause, At: now})
		return true
	case StatePaused:
		delta := now - e.pausedAt
		if delta < 0 {
			delta = 0
		}
		e.shiftTimers(delta)
		e.state = StatePlaying
		e.nextTickAt = now
		e.emit(Event{Type: EventResume, At: now})
		return true
	}
	return false
}

func (e *GameEngine) shiftTimers(delta int64) {
	for _, it := range e.items() {
		if it.Visible() {
			it.SpawnedAt += delta
		}
	}
	e.timeline.Shift(delta)
	e.snake.shiftTimers(delta)
	e.lastSpecialSpawn += delta
}

// emit records an input-driven event. Events are cleared when the next tick starts.
func (e *GameEngine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// AcknowledgeDeath consumes the one-shot death flag
func (e *GameEngine) AcknowledgeDeath() bool {
	died := e.justDied
	e.justDied = false
	return died
}

// Score returns the current score
func (e *GameEngine) Score() int {
	return e.score
}

// HighScore returns the best score seen, persisted or from this process
func (e *GameEngine) HighScore() int {
	return e.highScore
}

// State returns the coarse game state
func (e *GameEngine) State() State {
	return e.state
}

// Config returns the engine configuration
func (e *GameEngine) Config() *GameConfig {
	return e.config
}
