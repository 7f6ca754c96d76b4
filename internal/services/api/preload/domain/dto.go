package domain

import "lingo/internal/core/locale"

// SignalsInput carries client-reported environment probes
// absent fields fall back to server-side capability defaults
type SignalsInput struct {
	Network       string  `json:"network,omitempty" validate:"omitempty,oneof=offline slow fast" example:"fast"`
	EffectiveType string  `json:"effective_type,omitempty" validate:"omitempty,oneof=slow-2g 2g 3g 4g" example:"4g"`
	Downlink      float64 `json:"downlink,omitempty" validate:"omitempty,min=0" example:"10"`
	MemoryUsed    uint64  `json:"memory_used,omitempty" example:"52428800"`
	MemoryTotal   uint64  `json:"memory_total,omitempty" example:"134217728"`
}

// PlanInput asks for a strategy decision over a set of locales
type PlanInput struct {
	Locales []string     `json:"locales,omitempty" validate:"omitempty,max=16,dive,min=2,max=12" example:"en,zh"`
	Signals SignalsInput `json:"signals,omitempty"`
}

// PlanStep is one locale in the planned warm order
type PlanStep struct {
	Locale   locale.Locale `json:"locale" example:"en"`
	Priority string        `json:"priority" example:"high"` // high or normal
}

// Plan reports the decision and the inputs it was made under
type Plan struct {
	Strategy   Strategy         `json:"strategy" example:"smart"`
	Scores     map[Strategy]int `json:"scores"`
	Conditions Conditions       `json:"conditions"`
	Order      []PlanStep       `json:"order"`
}

// RunInput triggers a warm pass, strategy empty means decide first
type RunInput struct {
	PlanInput
	Strategy string `json:"strategy,omitempty" validate:"omitempty,oneof=immediate smart progressive priority lazy" example:"progressive"`
}

// RunResult summarizes one warm pass
type RunResult struct {
	Strategy Strategy        `json:"strategy" example:"progressive"`
	Warmed   []locale.Locale `json:"warmed"`
	Skipped  []locale.Locale `json:"skipped,omitempty"`
}

// StrategyInfo documents one strategy for the listing endpoint
type StrategyInfo struct {
	Name         Strategy `json:"name" example:"immediate"`
	BasePriority int      `json:"base_priority" example:"2"`
	Description  string   `json:"description" example:"warm all requested locales concurrently"`
}
