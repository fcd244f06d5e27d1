package engine

import "time"

// RoundStats summarizes the rounds played by one StimulusEngine
type RoundStats struct {
	Rounds int
	Hits   int
	Misses int

	// BestReaction is the fastest hit, zero until the first hit
	BestReaction  time.Duration
	TotalReaction time.Duration
}

// MeanReaction returns the average reaction time over hits
func (s RoundStats) MeanReaction() time.Duration {
	if s.Hits == 0 {
		return 0
	}
	return s.TotalReaction / time.Duration(s.Hits)
}

func (s *RoundStats) record(outcome Outcome, reaction time.Duration) {
	s.Rounds++
	if outcome != OutcomeHit {
		s.Misses++
		return
	}
	s.Hits++
	s.TotalReaction += reaction
	if s.BestReaction == 0 || reaction < s.BestReaction {
		s.BestReaction = reaction
	}
}
