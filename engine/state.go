package engine

import "sync/atomic"

// State is the mutable game state shared by the stimulus and scoreboard loops.
//
// Every field has exactly one writer:
//   - score: StimulusEngine (addHit)
//   - remaining, terminated: Scoreboard (tickDown, terminate)
//
// Readers may observe a value one writer iteration stale. Adding a second writer
// to any field requires replacing the plain load/store pairs with CAS loops.
type State struct {
	score      atomic.Int64
	remaining  atomic.Int64
	terminated atomic.Bool
}

// NewState creates the state of a fresh game, negative countdowns clamp to zero
func NewState(initialSeconds int) *State {
	s := &State{}
	if initialSeconds > 0 {
		s.remaining.Store(int64(initialSeconds))
	}
	return s
}

// Score returns the number of hits so far
func (s *State) Score() int64 {
	return s.score.Load()
}

// Remaining returns the countdown seconds left
func (s *State) Remaining() int64 {
	return s.remaining.Load()
}

// Terminated reports whether the game has ended
func (s *State) Terminated() bool {
	return s.terminated.Load()
}

// addHit increments the score and returns the new value
func (s *State) addHit() int64 {
	return s.score.Add(1)
}

// tickDown consumes one countdown second, never going below zero
func (s *State) tickDown() int64 {
	v := s.remaining.Load()
	if v <= 0 {
		return 0
	}
	v--
	s.remaining.Store(v)
	return v
}

// terminate sets the termination flag, returns true only on the first call
func (s *State) terminate() bool {
	return s.terminated.CompareAndSwap(false, true)
}
