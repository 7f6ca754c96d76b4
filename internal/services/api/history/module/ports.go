package module

import (
	"context"

	historydom "lingo/internal/services/api/history/domain"
	historysvc "lingo/internal/services/api/history/service"
)

// Ports exposes the cross-module surface of history
type Ports struct {
	Recorder historydom.RecorderPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptRecorderPort adapts the history service to the recorder port
type adaptRecorderPort struct{ svc historysvc.Service }

// Record implements the domain RecorderPort interface
func (a adaptRecorderPort) Record(
	ctx context.Context,
	subject string,
	rec historydom.DetectionRecord,
) (historydom.DetectionHistory, error) {
	return a.svc.Record(ctx, subject, rec)
}
