package boxlite

import (
	"math"
	"testing"
)

func collideBoxes(t *testing.T, defA, defB BodyDef) (int, [MaxPoints]Contact) {
	t.Helper()
	a := makeBody(defA)
	b := makeBody(defB)
	var contacts [MaxPoints]Contact
	n := Collide(&contacts, &a, &b)
	return n, contacts
}

func TestCollide_SeparatedBoxesProduceNoContact(t *testing.T) {
	defA := MakeBodyDef()
	defA.Position = Vector{-10, 0}
	defB := MakeBodyDef()
	defB.Position = Vector{10, 0}

	if n, _ := collideBoxes(t, defA, defB); n != 0 {
		t.Errorf("contacts = %d, want 0", n)
	}
}

func TestCollide_BarelySeparatedBoxesProduceNoContact(t *testing.T) {
	// Unit boxes must touch only when centers are within 1.0 on an axis.
	defA := MakeBodyDef()
	defB := MakeBodyDef()
	defB.Position = Vector{1.001, 0}

	if n, _ := collideBoxes(t, defA, defB); n != 0 {
		t.Errorf("contacts = %d, want 0", n)
	}
}

func TestCollide_OverlappingBoxes(t *testing.T) {
	defA := MakeBodyDef()
	defA.Width = Vector{2, 2}
	defA.Mass = 1
	defB := MakeBodyDef()
	defB.Width = Vector{2, 2}
	defB.Position = Vector{0.5, 0}
	defB.Mass = 1

	n, contacts := collideBoxes(t, defA, defB)
	if n < 1 {
		t.Fatalf("contacts = %d, want >= 1", n)
	}

	for _, c := range contacts[:n] {
		if l := c.Normal.Length(); math.Abs(l-1) > 1e-9 {
			t.Errorf("|normal| = %v, want 1", l)
		}
		if c.Separation > 0 {
			t.Errorf("separation = %v, want <= 0", c.Separation)
		}
		// The normal points from the first body toward the second.
		if c.Normal.X <= 0 {
			t.Errorf("normal = %v, want +x", c.Normal)
		}
	}
}

func TestCollide_RotatedBoxOnGround(t *testing.T) {
	ground := MakeBodyDef()
	ground.Width = Vector{100, 20}
	ground.Position = Vector{0, -10}

	box := MakeBodyDef()
	box.Position = Vector{0, 0.4}
	box.Rotation = 0.3
	box.Mass = 1

	n, contacts := collideBoxes(t, ground, box)
	if n < 1 {
		t.Fatalf("contacts = %d, want >= 1", n)
	}
	for _, c := range contacts[:n] {
		// Reference face is the ground top, so the normal points up.
		if c.Normal.Y < 0.9 {
			t.Errorf("normal = %v, want pointing up", c.Normal)
		}
	}
}

func TestCollide_DeepFaceContactYieldsTwoPoints(t *testing.T) {
	defA := MakeBodyDef()
	defA.Width = Vector{2, 2}
	defB := MakeBodyDef()
	defB.Width = Vector{2, 2}
	defB.Position = Vector{0.5, 0}

	n, contacts := collideBoxes(t, defA, defB)
	if n != 2 {
		t.Fatalf("contacts = %d, want 2", n)
	}
	if contacts[0].Feature.Key() == contacts[1].Feature.Key() {
		t.Error("contact points share a feature identifier")
	}
}

func TestClipSegmentToLine(t *testing.T) {
	// Keep points with x <= 0.5.
	vIn := [2]clipVertex{
		{v: Vector{0, 0}},
		{v: Vector{1, 0}},
	}
	var vOut [2]clipVertex

	n := clipSegmentToLine(&vOut, &vIn, Vector{1, 0}, 0.5, Edge1)
	if n != 2 {
		t.Fatalf("clipped to %d points, want 2", n)
	}
	if vOut[0].v.X != 0 {
		t.Errorf("kept point at %v", vOut[0].v)
	}
	if math.Abs(vOut[1].v.X-0.5) > 1e-9 || vOut[1].v.Y != 0 {
		t.Errorf("intersection at %v, want (0.5,0)", vOut[1].v)
	}
	if vOut[1].fp.OutEdge1 != Edge1 {
		t.Errorf("clip edge not recorded: %+v", vOut[1].fp)
	}
}

func TestFeaturePair_Flip(t *testing.T) {
	fp := FeaturePair{Edge1, Edge2, Edge3, Edge4}
	fp.flip()

	want := FeaturePair{Edge3, Edge4, Edge1, Edge2}
	if fp != want {
		t.Errorf("flipped = %+v, want %+v", fp, want)
	}
}

func TestEdgeNumberFromByte_Defensive(t *testing.T) {
	for v := 0; v <= 4; v++ {
		if got := edgeNumberFromByte(uint8(v)); got != EdgeNumber(v) {
			t.Errorf("edgeNumberFromByte(%d) = %d", v, got)
		}
	}
	if got := edgeNumberFromByte(200); got != NoEdge {
		t.Errorf("edgeNumberFromByte(200) = %d, want NoEdge", got)
	}
}
