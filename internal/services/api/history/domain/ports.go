package domain

import "context"

// ServicePort defines the service contract for history
type ServicePort interface {
	Record(ctx context.Context, subject string, rec DetectionRecord) (DetectionHistory, error)
	Get(ctx context.Context, subject string) (DetectionHistory, error)
	Clear(ctx context.Context, subject string) error
	Export(ctx context.Context, subject string) (Snapshot, error)
	Import(ctx context.Context, subject string, raw []byte) (DetectionHistory, error)
	Stats(ctx context.Context, in StatsInput) ([]StatsRow, error)
}

// RecorderPort is the narrow surface other modules use to record detections
type RecorderPort interface {
	Record(ctx context.Context, subject string, rec DetectionRecord) (DetectionHistory, error)
}
