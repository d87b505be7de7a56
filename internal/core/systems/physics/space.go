package physics

import (
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/zeusync/torophy/internal/core/observability/log"
	"github.com/zeusync/torophy/pkg/toroidal"
	"github.com/zeusync/torophy/pkg/vector"
)

// DefaultCellSize is the spatial table cell size used when none is configured.
const DefaultCellSize = 30.0

// Space owns the bodies of one toroidal world and advances them with Step.
//
// A Space is not safe for concurrent use, and Step must not be called from
// code that Step itself invoked.
type Space struct {
	id     uuid.UUID
	name   string
	bounds toroidal.Bounds

	bodies   bodyArena
	table    *SpatialTable
	resolver CollisionResolver
	contacts []Contact

	logger   log.Log
	metrics  StepMetrics
	stepping bool
}

type options struct {
	cellSize float64
	logger   log.Log
	name     string
}

type Option func(*options)

// WithCellSize sets the spatial table cell size.
func WithCellSize(cellSize float64) Option {
	return func(o *options) { o.cellSize = cellSize }
}

func WithLogger(logger log.Log) Option {
	return func(o *options) { o.logger = logger }
}

func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

func NewSpace(width, height uint32, opts ...Option) (*Space, error) {
	o := options{
		cellSize: DefaultCellSize,
		name:     "space",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNop()
	}

	bounds, err := toroidal.NewBounds(width, height)
	if err != nil {
		return nil, err
	}
	table, err := NewSpatialTable(width, height, o.cellSize)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	s := &Space{
		id:       id,
		name:     o.name,
		bounds:   bounds,
		table:    table,
		resolver: NewCollisionResolver(bounds),
		logger: o.logger.With(
			log.String("component", "space"),
			log.String("space", o.name),
			log.String("space_id", id.String()),
		),
	}

	s.logger.Info("Space created",
		log.Uint32("width", width),
		log.Uint32("height", height),
		log.Float64("cell_size", o.cellSize),
		log.Int("columns", table.Columns()),
		log.Int("rows", table.Rows()))

	return s, nil
}

func (s *Space) ID() uuid.UUID { return s.id }

func (s *Space) Name() string { return s.name }

func (s *Space) Bounds() toroidal.Bounds { return s.bounds }

// ConfigureSpatialTable replaces the spatial table with one of the given cell size.
func (s *Space) ConfigureSpatialTable(cellSize float64) error {
	table, err := NewSpatialTable(s.bounds.Width, s.bounds.Height, cellSize)
	if err != nil {
		return err
	}
	s.table = table
	s.logger.Info("Spatial table configured",
		log.Float64("cell_size", cellSize),
		log.Int("columns", table.Columns()),
		log.Int("rows", table.Rows()))
	return nil
}

// SpatialTable exposes the broad phase for inspection.
func (s *Space) SpatialTable() *SpatialTable { return s.table }

// Add validates body, wraps its position into the space and stores it.
// It returns the body's index, which stays valid for the life of the Space.
func (s *Space) Add(body Body) (int, error) {
	if err := body.Validate(); err != nil {
		return -1, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	body.position = s.bounds.Position(body.position)
	return s.bodies.push(body), nil
}

func (s *Space) Len() int { return s.bodies.len() }

// Body returns a mutable reference, valid until the next Add.
func (s *Space) Body(index int) *Body { return s.bodies.at(index) }

// Bodies iterates over mutable references in insertion order.
func (s *Space) Bodies() iter.Seq2[int, *Body] {
	return func(yield func(int, *Body) bool) {
		for i := range s.bodies.bodies {
			if !yield(i, &s.bodies.bodies[i]) {
				return
			}
		}
	}
}

// States iterates over read-only copies in insertion order.
func (s *Space) States() iter.Seq2[int, BodyState] {
	return func(yield func(int, BodyState) bool) {
		for i := range s.bodies.bodies {
			if !yield(i, s.bodies.bodies[i].State(i)) {
				return
			}
		}
	}
}

// ApplyForce adds force to every body's accumulator for the next step.
func (s *Space) ApplyForce(force vector.Vec2) {
	for i := range s.bodies.bodies {
		s.bodies.bodies[i].AddForce(force)
	}
}

// Contacts returns the contacts resolved by the last step. The slice is
// reused by the next step.
func (s *Space) Contacts() []Contact { return s.contacts }

func (s *Space) Metrics() StepMetrics { return s.metrics }

// Update advances the simulation by one tick of the given duration.
func (s *Space) Update(d time.Duration) {
	s.Step(d.Seconds())
}

// Step runs one tick: integrate, rebuild the broad phase, narrow phase,
// resolve contacts in generation order, wrap positions.
func (s *Space) Step(dt float64) {
	if s.stepping {
		panic("physics: Space.Step called reentrantly")
	}
	s.stepping = true
	defer func() { s.stepping = false }()

	start := time.Now()

	for i := range s.bodies.bodies {
		s.bodies.bodies[i].Integrate(dt)
	}

	s.rebuildTable()
	s.detectContacts()
	s.resolveContacts()

	for i := range s.bodies.bodies {
		b := &s.bodies.bodies[i]
		b.position = s.bounds.Position(b.position)
	}

	pairs := len(s.table.Pairs())
	s.metrics.record(time.Since(start), pairs, len(s.contacts))

	if s.logger.Enabled(log.LevelDebug) {
		s.logger.Debug("Step completed",
			log.Uint64("step", s.metrics.Steps),
			log.Float64("dt", dt),
			log.Int("bodies", s.bodies.len()),
			log.Int("pairs", pairs),
			log.Int("contacts", len(s.contacts)),
			log.Duration("elapsed", s.metrics.LastStepDuration))
	}
}

func (s *Space) rebuildTable() {
	s.table.Clear()
	width, height := float64(s.bounds.Width), float64(s.bounds.Height)
	for i := range s.bodies.bodies {
		box, ok := s.bodies.bodies[i].AABB()
		if !ok {
			continue
		}
		wrapped := s.bounds.WrapAABB(box)
		// a box at least as wide as the space covers the whole axis
		if box.Right-box.Left >= width {
			wrapped.Left, wrapped.Right = 0, math.Nextafter(width, 0)
		}
		if box.Bottom-box.Top >= height {
			wrapped.Top, wrapped.Bottom = 0, math.Nextafter(height, 0)
		}
		s.table.Insert(i, wrapped)
	}
}

func (s *Space) detectContacts() {
	s.contacts = s.contacts[:0]
	for _, pair := range s.table.Pairs() {
		b1, b2 := s.bodies.at(pair.A), s.bodies.at(pair.B)
		info, ok := s.resolver.TestBodies(b1, b2)
		if !ok {
			continue
		}
		s.contacts = append(s.contacts, Contact{First: pair.A, Second: pair.B, Info: info})
	}
}

func (s *Space) resolveContacts() {
	for i := range s.contacts {
		c := &s.contacts[i]
		b1, b2 := s.bodies.pair(c.First, c.Second)
		c.Resolve(b1, b2)
	}
}

// Snapshot copies the current state of every body.
func (s *Space) Snapshot() Snapshot {
	bodies := make([]BodyState, 0, s.bodies.len())
	for _, state := range s.States() {
		bodies = append(bodies, state)
	}
	return Snapshot{
		SpaceID:  s.id.String(),
		Step:     s.metrics.Steps,
		Bounds:   s.bounds,
		Bodies:   bodies,
		Contacts: len(s.contacts),
		Checksum: s.Checksum(),
	}
}

// Checksum fingerprints the exact kinematic state of all bodies.
func (s *Space) Checksum() uint64 {
	return checksum(s.bodies.bodies)
}
