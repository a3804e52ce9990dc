package boxlite

import "math"

// BodyDef describes an oriented box body. Mass == 0 makes the body
// static: infinite mass, unaffected by forces and impulses, but still
// collidable. Negative or non-finite mass is a programming error.
type BodyDef struct {
	Width    Vector // full extents
	Position Vector
	Rotation float64
	Friction float64
	Mass     float64
}

// MakeBodyDef returns a body definition with default values:
// a static unit box at the origin with friction 0.2.
func MakeBodyDef() BodyDef {
	return BodyDef{
		Width:    Vector{1, 1},
		Friction: 0.2,
	}
}

type Body struct {
	Position Vector
	Rotation float64

	Velocity        Vector
	AngularVelocity float64

	Force  Vector
	Torque float64

	Width Vector

	Friction float64
	InvMass  float64
	InvI     float64
}

func makeBody(def BodyDef) Body {
	assert(def.Width.X > 0 && def.Width.Y > 0, "body width must be positive", def.Width)

	body := Body{
		Position: def.Position,
		Rotation: def.Rotation,
		Width:    def.Width,
		Friction: def.Friction,
	}

	if def.Mass != 0 {
		assert(def.Mass > 0 && !math.IsInf(def.Mass, 0) && !math.IsNaN(def.Mass),
			"body mass must be positive and finite", def.Mass)

		body.InvMass = 1.0 / def.Mass
		i := def.Mass * (def.Width.X*def.Width.X + def.Width.Y*def.Width.Y) / 12.0
		body.InvI = 1.0 / i
	}

	return body
}

// Static reports whether the body has infinite mass.
func (body *Body) Static() bool {
	return body.InvMass == 0
}

func (body *Body) AddForce(f Vector) {
	body.Force = body.Force.Add(f)
}

func (body *Body) AddTorque(t float64) {
	body.Torque += t
}
