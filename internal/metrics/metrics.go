package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mutex      sync.RWMutex
	requests   int64
	decisions  map[string]int64
	unresolved int64
	startTime  time.Time
}

type Snapshot struct {
	TotalRequests int64            `json:"total_requests"`
	Resolved      int64            `json:"resolved"`
	Unresolved    int64            `json:"unresolved"`
	Uptime        time.Duration    `json:"uptime"`
	Services      map[string]int64 `json:"services"`
}

func (m *Metrics) IncrementRequests() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.requests++
}

func (m *Metrics) RecordDecision(serviceID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.decisions[serviceID]++
}

func (m *Metrics) RecordUnresolved() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.unresolved++
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		TotalRequests: m.requests,
		Unresolved:    m.unresolved,
		Uptime:        time.Since(m.startTime),
		Services:      make(map[string]int64, len(m.decisions)),
	}

	for serviceID, count := range m.decisions {
		snap.Services[serviceID] = count
		snap.Resolved += count
	}

	return snap
}

func NewMetrics() *Metrics {
	return &Metrics{
		decisions: make(map[string]int64),
		startTime: time.Now(),
	}
}
