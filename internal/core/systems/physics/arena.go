package physics

import "fmt"

// bodyArena is the flat body store. Indices are stable for the life of the
// arena; pointers returned by at and pair are valid until the next push.
type bodyArena struct {
	bodies []Body
}

func (a *bodyArena) len() int { return len(a.bodies) }

func (a *bodyArena) push(b Body) int {
	a.bodies = append(a.bodies, b)
	return len(a.bodies) - 1
}

func (a *bodyArena) at(i int) *Body { return &a.bodies[i] }

// pair hands out two distinct bodies for simultaneous mutation.
func (a *bodyArena) pair(i, j int) (*Body, *Body) {
	if i == j {
		panic(fmt.Sprintf("physics: pair requested for a single body index %d", i))
	}
	return &a.bodies[i], &a.bodies[j]
}
