package physics

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/zeusync/torophy/pkg/toroidal"
	"github.com/zeusync/torophy/pkg/vector"
)

// BodyState is a read-only copy of a body for presentation layers.
type BodyState struct {
	Index       int         `json:"i"`
	Position    vector.Vec2 `json:"p"`
	Velocity    vector.Vec2 `json:"v"`
	Shape       string      `json:"shape"`
	Radius      float64     `json:"r,omitempty"`
	InverseMass float64     `json:"im"`
	Restitution float64     `json:"e"`
}

func (b *Body) State(index int) BodyState {
	radius, _ := b.shape.Radius()
	return BodyState{
		Index:       index,
		Position:    b.position,
		Velocity:    b.velocity,
		Shape:       b.shape.kind.String(),
		Radius:      radius,
		InverseMass: b.inverseMass,
		Restitution: b.restitution,
	}
}

// Snapshot is the state of a whole space after a step.
type Snapshot struct {
	SpaceID  string          `json:"space_id"`
	Step     uint64          `json:"step"`
	Bounds   toroidal.Bounds `json:"bounds"`
	Bodies   []BodyState     `json:"bodies"`
	Contacts int             `json:"contacts"`
	Checksum uint64          `json:"checksum"`
}

// checksum hashes positions and velocities bit-exactly, so two runs agree
// only if they produced identical traces.
func checksum(bodies []Body) uint64 {
	digest := xxhash.New()
	var buf [32]byte
	for i := range bodies {
		b := &bodies[i]
		binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(b.position.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(b.position.Y))
		binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(b.velocity.X))
		binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(b.velocity.Y))
		_, _ = digest.Write(buf[:])
	}
	return digest.Sum64()
}
