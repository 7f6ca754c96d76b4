package domain

import "context"

// ServicePort defines the service contract for invalidation
type ServicePort interface {
	Invalidate(ctx context.Context, in InvalidateInput) (InvalidateResult, error)
	Usage() Usage
}
