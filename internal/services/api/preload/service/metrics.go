package service

import "sync"

// metricsWindow keeps the outcomes of recent warm attempts
// the rate is recomputed per decision, nothing is persisted
type metricsWindow struct {
	mu       sync.Mutex
	outcomes []bool
	size     int
}

func newMetricsWindow(size int) *metricsWindow {
	if size <= 0 {
		size = 20
	}
	return &metricsWindow{size: size}
}

func (m *metricsWindow) Observe(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, ok)
	if len(m.outcomes) > m.size {
		m.outcomes = m.outcomes[len(m.outcomes)-m.size:]
	}
}

// SuccessRate is 1 until the first attempt is observed
func (m *metricsWindow) SuccessRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.outcomes) == 0 {
		return 1
	}
	ok := 0
	for _, o := range m.outcomes {
		if o {
			ok++
		}
	}
	return float64(ok) / float64(len(m.outcomes))
}
