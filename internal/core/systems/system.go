package systems

import "time"

// System is one stage of a simulation tick. The runner calls every system
// once per tick, ordered by ExecutionPhase and then by registration order.
type System interface {
	Name() string
	Phase() ExecutionPhase
	Update(dt time.Duration) error
}

// ExecutionPhase defines when a system runs within a tick
type ExecutionPhase uint8

const (
	// PhasePreUpdate is for force producers; they must run before integration.
	PhasePreUpdate ExecutionPhase = iota
	PhaseUpdate
	PhasePostUpdate
)

func (p ExecutionPhase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post_update"
	default:
		return "unknown"
	}
}

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	ErrorCount           uint64
	LastError            error
}

// Record folds one execution into the metrics.
func (m *Metrics) Record(elapsed time.Duration, err error) {
	m.ExecutionCount++
	m.TotalExecutionTime += elapsed
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	if elapsed > m.MaxExecutionTime {
		m.MaxExecutionTime = elapsed
	}
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
}
