package physics

import "errors"

// Construction errors. Step itself never fails.
var (
	ErrInvalidMass        = errors.New("mass must be positive and finite")
	ErrInvalidShape       = errors.New("invalid shape")
	ErrInvalidBody        = errors.New("invalid body")
	ErrInvalidCellSize    = errors.New("spatial cell size must be positive and finite")
	ErrInvalidRestitution = errors.New("restitution must be finite")
	ErrInvalidDrag        = errors.New("drag coefficients must be finite")
)
