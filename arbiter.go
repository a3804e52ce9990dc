package boxlite

import "math"

// MaxPoints is the size of a box-box contact manifold.
const MaxPoints = 2

// FeaturePair identifies which pair of box edges produced a contact point.
// It is the stable key used to match contacts across frames.
type FeaturePair struct {
	InEdge1  EdgeNumber
	OutEdge1 EdgeNumber
	InEdge2  EdgeNumber
	OutEdge2 EdgeNumber
}

// Key packs the feature pair into a stable 32-bit key (little-endian layout).
func (fp FeaturePair) Key() uint32 {
	return uint32(fp.InEdge1) |
		uint32(fp.OutEdge1)<<8 |
		uint32(fp.InEdge2)<<16 |
		uint32(fp.OutEdge2)<<24
}

// FeaturePairFromKey is the inverse of Key.
func FeaturePairFromKey(v uint32) FeaturePair {
	return FeaturePair{
		InEdge1:  edgeNumberFromByte(uint8(v)),
		OutEdge1: edgeNumberFromByte(uint8(v >> 8)),
		InEdge2:  edgeNumberFromByte(uint8(v >> 16)),
		OutEdge2: edgeNumberFromByte(uint8(v >> 24)),
	}
}

// Contact is a single contact point between two boxes. Position, Normal,
// Separation and Feature come from the narrow phase; the remaining fields
// are solver state that persists across steps through Arbiter.Update.
type Contact struct {
	Position   Vector
	Normal     Vector
	Separation float64 // negative when penetrating
	Feature    FeaturePair

	r1, r2 Vector

	pn  float64 // accumulated normal impulse
	pt  float64 // accumulated tangent impulse
	pnb float64 // accumulated normal impulse for position bias

	massNormal, massTangent float64
	bias                    float64
}

// ArbiterKey indexes the world's arbiter map. The pair is canonically
// ordered so (A,B) and (B,A) land on the same entry.
type ArbiterKey struct {
	Body1, Body2 BodyHandle
}

func MakeArbiterKey(b1, b2 BodyHandle) ArbiterKey {
	if b1 <= b2 {
		return ArbiterKey{b1, b2}
	}
	return ArbiterKey{b2, b1}
}

// Arbiter is the persistent contact manifold for one body pair.
type Arbiter struct {
	Contacts    [MaxPoints]Contact
	NumContacts int

	Body1, Body2 BodyHandle

	// Combined friction of the pair.
	Friction float64
}

func newArbiter(world *World, b1, b2 BodyHandle) *Arbiter {
	if b2 < b1 {
		b1, b2 = b2, b1
	}

	arb := &Arbiter{
		Body1: b1,
		Body2: b2,
	}

	bodyA := world.Body(b1)
	bodyB := world.Body(b2)
	arb.NumContacts = Collide(&arb.Contacts, bodyA, bodyB)
	arb.Friction = math.Sqrt(bodyA.Friction * bodyB.Friction)

	return arb
}

// Update replaces the manifold with the new narrow-phase contact set,
// carrying accumulated impulses over from matching feature pairs so the
// solver can warm start.
func (arb *Arbiter) Update(newContacts []Contact, warmStarting bool) {
	assert(len(newContacts) <= MaxPoints, "too many contacts", len(newContacts))

	var merged [MaxPoints]Contact

	for i := range newContacts {
		c := newContacts[i]

		for j := 0; j < arb.NumContacts; j++ {
			old := &arb.Contacts[j]
			if c.Feature.Key() != old.Feature.Key() {
				continue
			}
			if warmStarting {
				c.pn = old.pn
				c.pt = old.pt
				c.pnb = old.pnb
			} else {
				c.pn = 0
				c.pt = 0
				c.pnb = 0
			}
			break
		}

		merged[i] = c
	}

	arb.NumContacts = copy(arb.Contacts[:], merged[:len(newContacts)])
}

// PreStep computes the effective masses and bias velocity for each contact,
// and re-applies the accumulated impulse when impulse accumulation is on.
func (arb *Arbiter) PreStep(invDt float64, bodies []Body, config *WorldConfig) {
	const allowedPenetration = 0.01
	biasFactor := 0.0
	if config.PositionCorrection {
		biasFactor = 0.2
	}

	b1, b2 := bodyPair(bodies, arb.Body1, arb.Body2)

	for i := 0; i < arb.NumContacts; i++ {
		c := &arb.Contacts[i]

		r1 := c.Position.Sub(b1.Position)
		r2 := c.Position.Sub(b2.Position)

		// Precompute normal mass, tangent mass, and bias.
		rn1 := r1.Dot(c.Normal)
		rn2 := r2.Dot(c.Normal)
		kNormal := b1.InvMass + b2.InvMass
		kNormal += b1.InvI*(r1.Dot(r1)-rn1*rn1) + b2.InvI*(r2.Dot(r2)-rn2*rn2)
		c.massNormal = 1.0 / kNormal

		tangent := c.Normal.ReversePerp()
		rt1 := r1.Dot(tangent)
		rt2 := r2.Dot(tangent)
		kTangent := b1.InvMass + b2.InvMass
		kTangent += b1.InvI*(r1.Dot(r1)-rt1*rt1) + b2.InvI*(r2.Dot(r2)-rt2*rt2)
		c.massTangent = 1.0 / kTangent

		c.bias = -biasFactor * invDt * math.Min(0.0, c.Separation+allowedPenetration)

		if config.AccumulateImpulses {
			// Warm start with the accumulated normal + friction impulse.
			p := c.Normal.Mult(c.pn).Add(tangent.Mult(c.pt))

			b1.Velocity = b1.Velocity.Sub(p.Mult(b1.InvMass))
			b1.AngularVelocity -= b1.InvI * r1.Cross(p)

			b2.Velocity = b2.Velocity.Add(p.Mult(b2.InvMass))
			b2.AngularVelocity += b2.InvI * r2.Cross(p)
		}
	}
}

// ApplyImpulse performs one sequential-impulse sweep over the manifold.
func (arb *Arbiter) ApplyImpulse(bodies []Body, config *WorldConfig) {
	b1, b2 := bodyPair(bodies, arb.Body1, arb.Body2)

	for i := 0; i < arb.NumContacts; i++ {
		c := &arb.Contacts[i]

		// Moment arms track the bodies, not the narrow-phase-time poses.
		c.r1 = c.Position.Sub(b1.Position)
		c.r2 = c.Position.Sub(b2.Position)

		// Relative velocity at contact
		dv := b2.Velocity.Add(c.r2.Perp().Mult(b2.AngularVelocity)).
			Sub(b1.Velocity).Sub(c.r1.Perp().Mult(b1.AngularVelocity))

		// Compute normal impulse
		vn := dv.Dot(c.Normal)
		dPn := c.massNormal * (-vn + c.bias)

		if config.AccumulateImpulses {
			// Clamp the accumulated impulse: contacts push, never pull.
			pn0 := c.pn
			c.pn = math.Max(pn0+dPn, 0.0)
			dPn = c.pn - pn0
		} else {
			dPn = math.Max(dPn, 0.0)
		}

		// Apply contact impulse
		pn := c.Normal.Mult(dPn)

		b1.Velocity = b1.Velocity.Sub(pn.Mult(b1.InvMass))
		b1.AngularVelocity -= b1.InvI * c.r1.Cross(pn)

		b2.Velocity = b2.Velocity.Add(pn.Mult(b2.InvMass))
		b2.AngularVelocity += b2.InvI * c.r2.Cross(pn)

		// Relative velocity at contact, again, for friction
		dv = b2.Velocity.Add(c.r2.Perp().Mult(b2.AngularVelocity)).
			Sub(b1.Velocity).Sub(c.r1.Perp().Mult(b1.AngularVelocity))

		tangent := c.Normal.ReversePerp()
		vt := dv.Dot(tangent)
		dPt := c.massTangent * (-vt)

		if config.AccumulateImpulses {
			// The friction cone follows the accumulated normal impulse.
			maxPt := arb.Friction * c.pn

			oldTangentImpulse := c.pt
			c.pt = Clamp(oldTangentImpulse+dPt, -maxPt, maxPt)
			dPt = c.pt - oldTangentImpulse
		} else {
			maxPt := arb.Friction * dPn
			dPt = Clamp(dPt, -maxPt, maxPt)
		}

		// Apply friction impulse
		pt := tangent.Mult(dPt)

		b1.Velocity = b1.Velocity.Sub(pt.Mult(b1.InvMass))
		b1.AngularVelocity -= b1.InvI * c.r1.Cross(pt)

		b2.Velocity = b2.Velocity.Add(pt.Mult(b2.InvMass))
		b2.AngularVelocity += b2.InvI * c.r2.Cross(pt)
	}
}
