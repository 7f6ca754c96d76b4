package module

import (
	"context"

	preloaddom "lingo/internal/services/api/preload/domain"
	preloadsvc "lingo/internal/services/api/preload/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptPreloadPort adapts the preload service to the domain port interface
type adaptPreloadPort struct{ svc preloadsvc.Service }

// Plan implements the domain ServicePort interface
func (a adaptPreloadPort) Plan(ctx context.Context, in preloaddom.PlanInput) (preloaddom.Plan, error) {
	return a.svc.Plan(ctx, in)
}

// Run implements the domain ServicePort interface
func (a adaptPreloadPort) Run(ctx context.Context, in preloaddom.RunInput) (preloaddom.RunResult, error) {
	return a.svc.Run(ctx, in)
}

// Strategies implements the domain ServicePort interface
func (a adaptPreloadPort) Strategies() []preloaddom.StrategyInfo { return a.svc.Strategies() }

// IsPreloading implements the domain ServicePort interface
func (a adaptPreloadPort) IsPreloading() bool { return a.svc.IsPreloading() }

// Stop implements the domain ServicePort interface
func (a adaptPreloadPort) Stop() { a.svc.Stop() }
