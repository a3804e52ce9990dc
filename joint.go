package boxlite

// JointDef describes a point-to-point constraint between two bodies,
// anchored at a world-space point. Softness 0 makes the joint rigid;
// the bias factor scales Baumgarte position correction.
type JointDef struct {
	Body1, Body2 BodyHandle
	Anchor       Vector
	Softness     float64
	BiasFactor   float64
}

// MakeJointDef returns a rigid joint definition with the default
// position-bias factor.
func MakeJointDef(body1, body2 BodyHandle, anchor Vector) JointDef {
	return JointDef{
		Body1:      body1,
		Body2:      body2,
		Anchor:     anchor,
		BiasFactor: 0.2,
	}
}

// Joint constrains a point on one body to coincide with a point on another.
// The anchors are stored in each body's local rotated frame so they track
// the bodies as they move.
type Joint struct {
	Body1, Body2 BodyHandle

	m                          Mat22 // effective mass matrix, refreshed each step
	localAnchor1, localAnchor2 Vector
	r1, r2                     Vector
	bias                       Vector
	p                          Vector // accumulated impulse
	biasFactor                 float64
	softness                   float64
}

func makeJoint(world *World, def JointDef) Joint {
	b1 := world.Body(def.Body1)
	b2 := world.Body(def.Body2)

	rot1T := Rotation(b1.Rotation).Transpose()
	rot2T := Rotation(b2.Rotation).Transpose()

	return Joint{
		Body1:        def.Body1,
		Body2:        def.Body2,
		localAnchor1: rot1T.Mult(def.Anchor.Sub(b1.Position)),
		localAnchor2: rot2T.Mult(def.Anchor.Sub(b2.Position)),
		biasFactor:   def.BiasFactor,
		softness:     def.Softness,
	}
}

// Anchors returns the two world-space anchor points. They coincide when
// the constraint is satisfied; any gap is the position error.
func (joint *Joint) Anchors(world *World) (Vector, Vector) {
	b1 := world.Body(joint.Body1)
	b2 := world.Body(joint.Body2)

	r1 := Rotation(b1.Rotation).Mult(joint.localAnchor1)
	r2 := Rotation(b2.Rotation).Mult(joint.localAnchor2)

	return b1.Position.Add(r1), b2.Position.Add(r2)
}

func (joint *Joint) PreStep(invDt float64, bodies []Body, config *WorldConfig) {
	b1, b2 := bodyPair(bodies, joint.Body1, joint.Body2)

	rot1 := Rotation(b1.Rotation)
	rot2 := Rotation(b2.Rotation)

	joint.r1 = rot1.Mult(joint.localAnchor1)
	joint.r2 = rot2.Mult(joint.localAnchor2)

	// K = K1 + K2 + K3: combined inverse mass on the diagonal plus each
	// body's angular term expressed through its moment arm.
	k1 := Mat22{
		Vector{b1.InvMass + b2.InvMass, 0},
		Vector{0, b1.InvMass + b2.InvMass},
	}

	k2 := Mat22{
		Vector{b1.InvI * joint.r1.Y * joint.r1.Y, -b1.InvI * joint.r1.X * joint.r1.Y},
		Vector{-b1.InvI * joint.r1.X * joint.r1.Y, b1.InvI * joint.r1.X * joint.r1.X},
	}

	k3 := Mat22{
		Vector{b2.InvI * joint.r2.Y * joint.r2.Y, -b2.InvI * joint.r2.X * joint.r2.Y},
		Vector{-b2.InvI * joint.r2.X * joint.r2.Y, b2.InvI * joint.r2.X * joint.r2.X},
	}

	k := k1.Add(k2).Add(k3)
	k.Col1.X += joint.softness
	k.Col2.Y += joint.softness

	joint.m = k.Invert()

	p1 := b1.Position.Add(joint.r1)
	p2 := b2.Position.Add(joint.r2)
	dp := p2.Sub(p1)

	if config.PositionCorrection {
		joint.bias = dp.Mult(-joint.biasFactor * invDt)
	} else {
		joint.bias = Vector{}
	}

	if config.WarmStarting {
		// Apply accumulated impulse.
		b1.Velocity = b1.Velocity.Sub(joint.p.Mult(b1.InvMass))
		b1.AngularVelocity -= b1.InvI * joint.r1.Cross(joint.p)

		b2.Velocity = b2.Velocity.Add(joint.p.Mult(b2.InvMass))
		b2.AngularVelocity += b2.InvI * joint.r2.Cross(joint.p)
	} else {
		joint.p = Vector{}
	}
}

func (joint *Joint) ApplyImpulse(bodies []Body) {
	b1, b2 := bodyPair(bodies, joint.Body1, joint.Body2)

	dv := b2.Velocity.Add(joint.r2.Perp().Mult(b2.AngularVelocity)).
		Sub(b1.Velocity).Sub(joint.r1.Perp().Mult(b1.AngularVelocity))

	impulse := joint.m.Mult(joint.bias.Sub(dv).Sub(joint.p.Mult(joint.softness)))

	b1.Velocity = b1.Velocity.Sub(impulse.Mult(b1.InvMass))
	b1.AngularVelocity -= b1.InvI * joint.r1.Cross(impulse)

	b2.Velocity = b2.Velocity.Add(impulse.Mult(b2.InvMass))
	b2.AngularVelocity += b2.InvI * joint.r2.Cross(impulse)

	joint.p = joint.p.Add(impulse)
}
