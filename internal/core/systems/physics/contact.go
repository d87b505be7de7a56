package physics

// Contact binds a narrow-phase result to the two body indices it was computed for.
type Contact struct {
	First  int
	Second int
	Info   CollisionInfo
}

// Resolve applies the overlap correction, then the velocity impulse.
func (c *Contact) Resolve(b1, b2 *Body) {
	c.ResolveOverlap(b1, b2)
	c.ResolveVelocity(b1, b2)
}

// ResolveOverlap pushes the bodies apart along the normal, the lighter one further.
// Two static bodies are left where they are.
func (c *Contact) ResolveOverlap(b1, b2 *Body) {
	totalInverseMass := b1.inverseMass + b2.inverseMass
	if totalInverseMass == 0 {
		return
	}
	displacement := c.Info.Normal.Scale(c.Info.Overlap / totalInverseMass)

	b1.Displace(displacement.Scale(b1.inverseMass))
	b2.Displace(displacement.Scale(-b2.inverseMass))
}

// ResolveVelocity applies an impulse along the normal when the bodies approach.
// The target separating speed uses the product of both restitutions.
func (c *Contact) ResolveVelocity(b1, b2 *Body) {
	separatingSpeed := c.Info.Normal.Dot(b1.velocity.Sub(b2.velocity))
	if separatingSpeed >= 0 {
		return
	}
	totalInverseMass := b1.inverseMass + b2.inverseMass
	if totalInverseMass == 0 {
		return
	}

	newSeparatingSpeed := -separatingSpeed * b1.restitution * b2.restitution
	deltaSpeed := newSeparatingSpeed - separatingSpeed
	impulse := c.Info.Normal.Scale(deltaSpeed / totalInverseMass)

	b1.AddVelocity(impulse.Scale(b1.inverseMass))
	b2.AddVelocity(impulse.Scale(-b2.inverseMass))
}
