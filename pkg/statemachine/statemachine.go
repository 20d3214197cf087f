// Package statemachine provides a minimal generic state machine in Rob
// Pike's state-function style: each state is a function that performs its
// entry work and returns the next state, or nil to stay put until the owner
// dispatches another transition.
package statemachine

import "sync"

// StateFn is one state. It receives the owning entity and returns the state
// to transition to, or nil to hold.
type StateFn[T any] func(*T) StateFn[T]

// StateMachine drives an entity through its state functions. It is safe for
// concurrent use, though owners typically serialize Dispatch under their own
// lock.
type StateMachine[T any] struct {
	entity  *T
	stateFn StateFn[T]
	mu      sync.RWMutex
}

// New creates a state machine for entity and immediately dispatches the
// initial state so its entry work runs.
func New[T any](entity *T, initial StateFn[T]) *StateMachine[T] {
	sm := &StateMachine[T]{entity: entity}
	sm.Dispatch(initial)
	return sm
}

// Dispatch transitions to stateFn, runs it, and follows any chained
// transitions it returns until a state holds.
func (sm *StateMachine[T]) Dispatch(stateFn StateFn[T]) {
	for stateFn != nil {
		sm.mu.Lock()
		sm.stateFn = stateFn
		sm.mu.Unlock()
		stateFn = stateFn(sm.entity)
	}
}

// Current returns the most recently dispatched state function.
func (sm *StateMachine[T]) Current() StateFn[T] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.stateFn
}
