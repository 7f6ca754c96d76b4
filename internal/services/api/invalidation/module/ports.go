package module

import (
	"context"

	invdom "lingo/internal/services/api/invalidation/domain"
	invsvc "lingo/internal/services/api/invalidation/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptInvalidationPort adapts the invalidation service to the domain port interface
type adaptInvalidationPort struct{ svc invsvc.Service }

// Invalidate implements the domain ServicePort interface
func (a adaptInvalidationPort) Invalidate(
	ctx context.Context,
	in invdom.InvalidateInput,
) (invdom.InvalidateResult, error) {
	return a.svc.Invalidate(ctx, in)
}

// Usage implements the domain ServicePort interface
func (a adaptInvalidationPort) Usage() invdom.Usage { return a.svc.Usage() }
