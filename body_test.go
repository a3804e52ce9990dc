package boxlite

import "testing"

func TestMakeBody_StaticHasZeroInverseMass(t *testing.T) {
	def := MakeBodyDef()
	def.Width = Vector{2, 4}

	b := makeBody(def)
	if b.InvMass != 0 || b.InvI != 0 {
		t.Errorf("static body: InvMass=%v InvI=%v, want 0,0", b.InvMass, b.InvI)
	}
	if !b.Static() {
		t.Error("expected Static()")
	}
}

func TestMakeBody_DynamicComputesInverseMassAndInertia(t *testing.T) {
	def := MakeBodyDef()
	def.Width = Vector{2, 4}
	def.Mass = 3

	b := makeBody(def)
	if b.Static() {
		t.Error("did not expect Static()")
	}
	if b.InvMass != 1.0/3.0 {
		t.Errorf("InvMass = %v, want 1/3", b.InvMass)
	}

	// I = m*(w² + h²)/12
	i := 3.0 * (2*2 + 4*4) / 12.0
	if b.InvI != 1.0/i {
		t.Errorf("InvI = %v, want 1/%v", b.InvI, i)
	}
}

func TestBody_AddForceAccumulates(t *testing.T) {
	def := MakeBodyDef()
	def.Mass = 1

	b := makeBody(def)
	b.AddForce(Vector{1, 2})
	b.AddForce(Vector{-0.5, 3})
	b.AddTorque(2)

	if !b.Force.Equal(Vector{0.5, 5}) {
		t.Errorf("Force = %v, want 0.5,5", b.Force)
	}
	if b.Torque != 2 {
		t.Errorf("Torque = %v, want 2", b.Torque)
	}
}

func TestMakeBody_RejectsBadDefinitions(t *testing.T) {
	for name, def := range map[string]BodyDef{
		"negative mass":  {Width: Vector{1, 1}, Mass: -1},
		"zero width":     {Width: Vector{0, 1}, Mass: 1},
		"negative width": {Width: Vector{1, -1}},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			makeBody(def)
		}()
	}
}
