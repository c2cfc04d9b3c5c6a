// Package engine drives the game state machine and fans its transition
// records out to subscribers such as the spin detector.
package engine

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/state"
)

// Engine owns the current state. Every Tick and HandleAction dispatches the
// records the call produced, once each and in order, then clears them.
type Engine struct {
	state  state.State
	events Dispatcher[state.Transition]
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for lock and game-over diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine starting at initial. Records already pending on
// initial are dispatched by the first call.
func New(initial state.State, opts ...Option) *Engine {
	e := &Engine{
		state:  initial,
		logger: log.Default().WithPrefix("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Engine) State() state.State {
	return e.state
}

// Subscribe registers fn to receive every transition record.
func (e *Engine) Subscribe(fn func(state.Transition)) SubscriptionID {
	return e.events.Register(fn)
}

// Unsubscribe removes a subscription.
func (e *Engine) Unsubscribe(id SubscriptionID) bool {
	return e.events.Unregister(id)
}

// Tick advances time by dt seconds.
func (e *Engine) Tick(dt float64) {
	e.state = e.state.Tick(dt)
	e.flush()
}

// HandleAction applies one player action.
func (e *Engine) HandleAction(a state.Action) {
	e.state = e.state.HandleAction(a)
	e.flush()
}

// IsGameOver reports whether the game has ended.
func (e *Engine) IsGameOver() bool {
	return state.IsGameOver(e.state)
}

func (e *Engine) flush() {
	records := e.state.Transitions()
	if len(records) == 0 {
		return
	}
	// Clear before dispatching so a callback that drives the engine
	// cannot see these records again.
	e.state = e.state.ClearTransitions()

	for _, tr := range records {
		switch {
		case tr.Kind.IsLock():
			e.logger.Debug("piece locked",
				"kind", tr.Kind,
				"piece", tr.Lock.LockedPiece,
				"cleared", len(tr.Lock.ClearedRows))
		case tr.Kind == state.KindGameOver:
			e.logger.Debug("game over", "cells", tr.After.Sim().Board().Len())
		}
		e.events.Dispatch(tr)
	}
}
