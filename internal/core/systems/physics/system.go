package physics

import (
	"time"

	"github.com/zeusync/torophy/internal/core/systems"
)

type spaceSystem struct {
	space *Space
}

// AsSystem adapts the space to the runner's System contract.
func (s *Space) AsSystem() systems.System {
	return spaceSystem{space: s}
}

func (s spaceSystem) Name() string { return "physics/" + s.space.name }

func (s spaceSystem) Phase() systems.ExecutionPhase { return systems.PhaseUpdate }

func (s spaceSystem) Update(dt time.Duration) error {
	s.space.Update(dt)
	return nil
}
