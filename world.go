package boxlite

import "sort"

// BodyHandle and JointHandle are stable indices into the world's
// collections. Bodies and joints are never destroyed individually,
// only cleared all at once, so handles stay valid between clears.
type BodyHandle int

type JointHandle int

// WorldConfig holds the solver feature flags. They may be flipped at any
// time between steps and take effect on the next step.
type WorldConfig struct {
	AccumulateImpulses bool
	WarmStarting       bool
	PositionCorrection bool
}

// DefaultWorldConfig enables everything.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		AccumulateImpulses: true,
		WarmStarting:       true,
		PositionCorrection: true,
	}
}

// World owns all bodies, joints, and the persistent arbiter set, and
// drives the per-step pipeline. Not safe for concurrent use: one Step
// call performs a bounded amount of work and returns.
type World struct {
	Gravity    Vector
	Iterations int
	Config     WorldConfig

	bodies   []Body
	joints   []Joint
	arbiters map[ArbiterKey]*Arbiter
}

func NewWorld(gravity Vector, iterations int) *World {
	assert(iterations > 0, "iterations must be positive")
	return &World{
		Gravity:    gravity,
		Iterations: iterations,
		Config:     DefaultWorldConfig(),
		arbiters:   map[ArbiterKey]*Arbiter{},
	}
}

// CreateBody adds a body built from def and returns its handle.
func (world *World) CreateBody(def BodyDef) BodyHandle {
	h := BodyHandle(len(world.bodies))
	world.bodies = append(world.bodies, makeBody(def))
	return h
}

func (world *World) Body(h BodyHandle) *Body {
	assert(h >= 0 && int(h) < len(world.bodies), "invalid body handle", h)
	return &world.bodies[h]
}

func (world *World) BodyCount() int {
	return len(world.bodies)
}

// CreateJoint adds a joint built from def and returns its handle.
// Both body handles must be valid and distinct.
func (world *World) CreateJoint(def JointDef) JointHandle {
	assert(def.Body1 != def.Body2, "joint connects a body to itself", def.Body1)
	h := JointHandle(len(world.joints))
	world.joints = append(world.joints, makeJoint(world, def))
	return h
}

func (world *World) Joint(h JointHandle) *Joint {
	assert(h >= 0 && int(h) < len(world.joints), "invalid joint handle", h)
	return &world.joints[h]
}

func (world *World) JointCount() int {
	return len(world.joints)
}

// EachArbiter calls fn for every live contact manifold, in key order.
func (world *World) EachArbiter(fn func(*Arbiter)) {
	for _, key := range world.sortedKeys() {
		fn(world.arbiters[key])
	}
}

// Clear drops all bodies, joints and arbiters, e.g. when switching scenes.
func (world *World) Clear() {
	world.bodies = world.bodies[:0]
	world.joints = world.joints[:0]
	world.arbiters = map[ArbiterKey]*Arbiter{}
}

// BroadPhase refreshes the arbiter set by colliding every body pair with
// at least one dynamic member. O(n²), which is fine at the intended scale
// of tens to low hundreds of bodies.
func (world *World) BroadPhase() {
	n := len(world.bodies)
	for i := 0; i < n; i++ {
		bi := BodyHandle(i)
		for j := i + 1; j < n; j++ {
			bj := BodyHandle(j)

			if world.bodies[i].InvMass == 0 && world.bodies[j].InvMass == 0 {
				continue
			}

			newArb := newArbiter(world, bi, bj)
			key := MakeArbiterKey(bi, bj)

			if newArb.NumContacts > 0 {
				if arb, ok := world.arbiters[key]; ok {
					arb.Update(newArb.Contacts[:newArb.NumContacts], world.Config.WarmStarting)
				} else {
					world.arbiters[key] = newArb
				}
			} else {
				delete(world.arbiters, key)
			}
		}
	}
}

// Step advances the simulation by dt: broad phase, force integration,
// pre-step, a fixed number of impulse iterations, velocity integration.
// A non-positive dt is a no-op.
func (world *World) Step(dt float64) {
	if dt <= 0.0 {
		return
	}
	invDt := 1.0 / dt

	world.BroadPhase()

	keys := world.sortedKeys()

	// Integrate forces.
	for i := range world.bodies {
		b := &world.bodies[i]
		if b.InvMass == 0 {
			continue
		}
		b.Velocity = b.Velocity.Add(world.Gravity.Add(b.Force.Mult(b.InvMass)).Mult(dt))
		b.AngularVelocity += dt * b.InvI * b.Torque
	}

	// Perform pre-steps.
	for _, key := range keys {
		world.arbiters[key].PreStep(invDt, world.bodies, &world.Config)
	}
	for i := range world.joints {
		world.joints[i].PreStep(invDt, world.bodies, &world.Config)
	}

	// Perform iterations.
	for iter := 0; iter < world.Iterations; iter++ {
		for _, key := range keys {
			world.arbiters[key].ApplyImpulse(world.bodies, &world.Config)
		}
		for i := range world.joints {
			world.joints[i].ApplyImpulse(world.bodies)
		}
	}

	// Integrate velocities.
	for i := range world.bodies {
		b := &world.bodies[i]
		b.Position = b.Position.Add(b.Velocity.Mult(dt))
		b.Rotation += dt * b.AngularVelocity

		b.Force = Vector{}
		b.Torque = 0
	}
}

func (world *World) sortedKeys() []ArbiterKey {
	keys := make([]ArbiterKey, 0, len(world.arbiters))
	for key := range world.arbiters {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Body1 != keys[j].Body1 {
			return keys[i].Body1 < keys[j].Body1
		}
		return keys[i].Body2 < keys[j].Body2
	})
	return keys
}

// bodyPair returns mutable views of two distinct bodies in one pass, in
// caller order. Requesting the same handle twice is a programming error.
func bodyPair(bodies []Body, h1, h2 BodyHandle) (*Body, *Body) {
	assert(h1 != h2, "bodyPair called with identical handles", h1)
	return &bodies[h1], &bodies[h2]
}
