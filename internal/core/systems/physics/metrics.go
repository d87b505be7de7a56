package physics

import "time"

// StepMetrics summarizes the work done by Space.Step.
type StepMetrics struct {
	Steps               uint64
	LastStepDuration    time.Duration
	AverageStepDuration time.Duration
	MaxStepDuration     time.Duration
	TotalStepDuration   time.Duration

	LastPairs     int // broad-phase candidates in the last step
	LastContacts  int // narrow-phase hits in the last step
	TotalContacts uint64
}

func (m *StepMetrics) record(elapsed time.Duration, pairs, contacts int) {
	m.Steps++
	m.LastStepDuration = elapsed
	m.TotalStepDuration += elapsed
	m.AverageStepDuration = m.TotalStepDuration / time.Duration(m.Steps)
	if elapsed > m.MaxStepDuration {
		m.MaxStepDuration = elapsed
	}
	m.LastPairs = pairs
	m.LastContacts = contacts
	m.TotalContacts += uint64(contacts)
}
