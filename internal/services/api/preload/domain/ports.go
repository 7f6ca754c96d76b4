package domain

import "context"

// ServicePort defines the service contract for preload
type ServicePort interface {
	Plan(ctx context.Context, in PlanInput) (Plan, error)
	Run(ctx context.Context, in RunInput) (RunResult, error)
	Strategies() []StrategyInfo
	IsPreloading() bool
	Stop()
}
