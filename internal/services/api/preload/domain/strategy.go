// Package domain holds strategy types and DTOs for preload
package domain

// Strategy names one bundle-warming policy
// declaration order is the tie-break order for scoring
type Strategy string

const (
	StrategyImmediate   Strategy = "immediate"
	StrategySmart       Strategy = "smart"
	StrategyProgressive Strategy = "progressive"
	StrategyPriority    Strategy = "priority"
	StrategyLazy        Strategy = "lazy"
)

// Strategies returns all strategies in tie-break order
func Strategies() []Strategy {
	return []Strategy{StrategyImmediate, StrategySmart, StrategyProgressive, StrategyPriority, StrategyLazy}
}

// ParseStrategy validates a raw strategy name
func ParseStrategy(raw string) (Strategy, bool) {
	s := Strategy(raw)
	for _, k := range Strategies() {
		if s == k {
			return s, true
		}
	}
	return "", false
}

// BasePriority is the standing score before situational bonuses
// smart leads so the heuristic is chosen absent a strong signal
func BasePriority(s Strategy) int {
	switch s {
	case StrategyImmediate:
		return 2
	case StrategySmart:
		return 3
	case StrategyProgressive:
		return 2
	case StrategyPriority:
		return 2
	case StrategyLazy:
		return 1
	default:
		return 0
	}
}

// Network is the coarse connectivity condition
type Network string

const (
	NetworkOffline Network = "offline"
	NetworkSlow    Network = "slow"
	NetworkFast    Network = "fast"
)

// Period buckets the local clock
type Period string

const (
	PeriodWork    Period = "work"
	PeriodEvening Period = "evening"
	PeriodNight   Period = "night"
)

// PeriodOfHour maps a local hour to its period
// work is 09:00-17:59, evening 18:00-22:59, night otherwise
func PeriodOfHour(hour int) Period {
	switch {
	case hour >= 9 && hour < 18:
		return PeriodWork
	case hour >= 18 && hour < 23:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// Conditions are the environmental inputs to one strategy decision
type Conditions struct {
	Network     Network `json:"network" example:"fast"`
	MemoryRatio float64 `json:"memory_ratio" example:"0.42"`
	Period      Period  `json:"period" example:"work"`
	SuccessRate float64 `json:"success_rate" example:"0.95"`
}

// Score computes the selection score for one strategy under c
func Score(s Strategy, c Conditions) int {
	score := BasePriority(s)
	if c.Network == NetworkFast && s == StrategyImmediate {
		score += 2
	}
	if c.MemoryRatio < 0.5 && s == StrategyLazy {
		score++
	}
	if c.SuccessRate > 0.9 && s == StrategySmart {
		score++
	}
	return score
}

// Choose picks the highest-scoring strategy, ties going to declaration order
func Choose(c Conditions) (Strategy, map[Strategy]int) {
	scores := make(map[Strategy]int, len(Strategies()))
	best := Strategies()[0]
	for _, s := range Strategies() {
		scores[s] = Score(s, c)
		if scores[s] > scores[best] {
			best = s
		}
	}
	return best, scores
}
