package main

import (
	"context"
	"errors"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/loop"
)

// action is what a key press asks for
type action int

const (
	actionNone action = iota
	actionTurn
	actionPause
	actionQuit
)

func (a action) String() string {
	switch a {
	case actionTurn:
		return "turn"
	case actionPause:
		return "pause"
	case actionQuit:
		return "quit"
	}
	return "none"
}

// keyAction maps a key to an action. Arrow keys and a/d, h/l turn.
func keyAction(ev *tcell.EventKey) (action, engine.Side) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, 0
	case tcell.KeyLeft:
		return actionTurn, engine.SideLeft
	case tcell.KeyRight:
		return actionTurn, engine.SideRight
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return actionQuit, 0
		case 'a', 'A', 'h':
			return actionTurn, engine.SideLeft
		case 'd', 'D', 'l':
			return actionTurn, engine.SideRight
		case ' ', 'p', 'P':
			return actionPause, 0
		}
	}
	return actionNone, 0
}

// app owns the terminal and the runner for one local game
type app struct {
	screen     tcell.Screen
	runner     *loop.Runner
	sound      soundPlayer
	startScore int
	snapshots  chan engine.Snapshot
}

func newApp(eng engine.Engine, sound soundPlayer, startScore int) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newAppWithScreen(screen, eng, sound, startScore), nil
}

func newAppWithScreen(screen tcell.Screen, eng engine.Engine, sound soundPlayer, startScore int) *app {
	a := &app{
		screen:     screen,
		sound:      sound,
		startScore: startScore,
		snapshots:  make(chan engine.Snapshot, 64),
	}
	a.runner = loop.NewRunner(eng,
		loop.WithClock(loop.NewSystemClock()),
		loop.WithSnapshotHandler(a.enqueue),
	)
	return a
}

// enqueue runs on the runner goroutine and must not block. Logging goes to
// the -log-file target, never to the terminal the screen is drawn on.
func (a *app) enqueue(snap engine.Snapshot) {
	select {
	case a.snapshots <- snap:
	default:
		log.Printf("Dropped snapshot at tick %d", snap.Tick)
	}
}

// handle applies one key action and reports whether the game should go on.
// A stopped runner ends the game.
func (a *app) handle(ctx context.Context, act action, side engine.Side) bool {
	var err error
	switch act {
	case actionQuit:
		return false
	case actionPause:
		_, err = a.runner.RequestPauseToggle(ctx)
	case actionTurn:
		state := a.runner.Snapshot().State
		if a.startScore > 0 && (state == engine.StateHome || state == engine.StateGameOver) {
			err = a.runner.Restart(ctx, a.startScore)
		} else {
			_, err = a.runner.RequestTurn(ctx, side)
		}
	}
	if err != nil {
		log.Printf("Warning: %s failed: %v", act, err)
		return !errors.Is(err, loop.ErrStopped)
	}
	return true
}

func (a *app) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.screen.Fini()

	go a.runner.Run(ctx)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	draw(a.screen, a.runner.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-a.snapshots:
			for _, ev := range snap.Events {
				a.sound.Play(ev)
			}
			draw(a.screen, snap)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				act, side := keyAction(ev)
				if !a.handle(ctx, act, side) {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
				draw(a.screen, a.runner.Snapshot())
			}
		}
	}
}
