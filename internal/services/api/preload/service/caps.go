package service

import (
	"runtime"

	"lingo/internal/services/api/preload/domain"
)

// fastDownlinkMbps is the floor a top-tier connection must clear to rank fast
const fastDownlinkMbps = 2.0

// Capabilities answers environment probes when the client reports nothing
type Capabilities interface {
	Network() domain.Network
	MemoryRatio() float64
}

// serverCaps derives conditions from the process itself
// the server is assumed well-connected, memory ratio comes from the heap
type serverCaps struct{}

func (serverCaps) Network() domain.Network { return domain.NetworkFast }

func (serverCaps) MemoryRatio() float64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapSys == 0 {
		return 0.5
	}
	return float64(ms.HeapAlloc) / float64(ms.HeapSys)
}

// conditions merges client-reported signals over the capability defaults
func (s *Svc) conditions(in domain.SignalsInput, hour int) domain.Conditions {
	c := domain.Conditions{
		Network:     s.caps.Network(),
		MemoryRatio: s.caps.MemoryRatio(),
		Period:      domain.PeriodOfHour(hour),
		SuccessRate: s.metrics.SuccessRate(),
	}

	switch {
	case in.Network != "":
		c.Network = domain.Network(in.Network)
	case in.EffectiveType != "":
		if in.EffectiveType == "4g" && in.Downlink > fastDownlinkMbps {
			c.Network = domain.NetworkFast
		} else {
			c.Network = domain.NetworkSlow
		}
	}

	if in.MemoryTotal > 0 {
		c.MemoryRatio = float64(in.MemoryUsed) / float64(in.MemoryTotal)
	}
	return c
}
