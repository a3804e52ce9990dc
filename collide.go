package boxlite

// Box vertex and edge numbering:
//
//        ^ y
//        |
//        e1
//   v2 ------ v1
//    |        |
// e2 |        | e4  --> x
//    |        |
//   v3 ------ v4
//        e3

type EdgeNumber uint8

const (
	NoEdge EdgeNumber = iota
	Edge1
	Edge2
	Edge3
	Edge4
)

// edgeNumberFromByte decodes defensively: unknown values map to NoEdge
// since feature identifiers are bookkeeping, not correctness-critical input.
func edgeNumberFromByte(v uint8) EdgeNumber {
	if v > uint8(Edge4) {
		return NoEdge
	}
	return EdgeNumber(v)
}

type axis int

const (
	faceAX axis = iota
	faceAY
	faceBX
	faceBY
)

type clipVertex struct {
	v  Vector
	fp FeaturePair
}

func (fp *FeaturePair) flip() {
	fp.InEdge1, fp.InEdge2 = fp.InEdge2, fp.InEdge1
	fp.OutEdge1, fp.OutEdge2 = fp.OutEdge2, fp.OutEdge1
}

func clipSegmentToLine(vOut *[2]clipVertex, vIn *[2]clipVertex, normal Vector, offset float64, clipEdge EdgeNumber) int {
	numOut := 0

	// Distance of end points to the line.
	distance0 := normal.Dot(vIn[0].v) - offset
	distance1 := normal.Dot(vIn[1].v) - offset

	// If the points are behind the plane, keep them.
	if distance0 <= 0.0 {
		vOut[numOut] = vIn[0]
		numOut++
	}
	if distance1 <= 0.0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	// If the points are on different sides of the plane, clip.
	if distance0*distance1 < 0.0 {
		interp := distance0 / (distance0 - distance1)
		vOut[numOut].v = vIn[0].v.Add(vIn[1].v.Sub(vIn[0].v).Mult(interp))
		if distance0 > 0.0 {
			vOut[numOut].fp = vIn[0].fp
			vOut[numOut].fp.InEdge1 = clipEdge
			vOut[numOut].fp.InEdge2 = NoEdge
		} else {
			vOut[numOut].fp = vIn[1].fp
			vOut[numOut].fp.OutEdge1 = clipEdge
			vOut[numOut].fp.OutEdge2 = NoEdge
		}
		numOut++
	}

	return numOut
}

func computeIncidentEdge(c *[2]clipVertex, h, pos Vector, rot Mat22, normal Vector) {
	// The normal is from the reference box.
	// Convert it to the incident box's frame and flip sign.
	n := rot.Transpose().Mult(normal).Neg()
	nAbs := n.Abs()

	if nAbs.X > nAbs.Y {
		if signNonzero(n.X) > 0.0 {
			c[0].v = Vector{h.X, -h.Y}
			c[0].fp.InEdge2 = Edge3
			c[0].fp.OutEdge2 = Edge4

			c[1].v = Vector{h.X, h.Y}
			c[1].fp.InEdge2 = Edge4
			c[1].fp.OutEdge2 = Edge1
		} else {
			c[0].v = Vector{-h.X, h.Y}
			c[0].fp.InEdge2 = Edge1
			c[0].fp.OutEdge2 = Edge2

			c[1].v = Vector{-h.X, -h.Y}
			c[1].fp.InEdge2 = Edge2
			c[1].fp.OutEdge2 = Edge3
		}
	} else {
		if signNonzero(n.Y) > 0.0 {
			c[0].v = Vector{h.X, h.Y}
			c[0].fp.InEdge2 = Edge4
			c[0].fp.OutEdge2 = Edge1

			c[1].v = Vector{-h.X, h.Y}
			c[1].fp.InEdge2 = Edge1
			c[1].fp.OutEdge2 = Edge2
		} else {
			c[0].v = Vector{-h.X, -h.Y}
			c[0].fp.InEdge2 = Edge2
			c[0].fp.OutEdge2 = Edge3

			c[1].v = Vector{h.X, -h.Y}
			c[1].fp.InEdge2 = Edge3
			c[1].fp.OutEdge2 = Edge4
		}
	}

	c[0].v = pos.Add(rot.Mult(c[0].v))
	c[1].v = pos.Add(rot.Mult(c[1].v))
}

// Collide generates up to MaxPoints contacts between two boxes using a
// separating-axis test followed by reference/incident face clipping.
// The contact normal points from bodyA to bodyB.
func Collide(contacts *[MaxPoints]Contact, bodyA, bodyB *Body) int {
	// Setup
	hA := bodyA.Width.Mult(0.5)
	hB := bodyB.Width.Mult(0.5)

	posA := bodyA.Position
	posB := bodyB.Position

	rotA := Rotation(bodyA.Rotation)
	rotB := Rotation(bodyB.Rotation)

	rotAT := rotA.Transpose()
	rotBT := rotB.Transpose()

	dp := posB.Sub(posA)
	dA := rotAT.Mult(dp)
	dB := rotBT.Mult(dp)

	c := rotAT.MultMat(rotB)
	absC := c.Abs()
	absCT := c.Transpose().Abs()

	// Box A faces
	faceA := dA.Abs().Sub(hA).Sub(absC.Mult(hB))
	if faceA.X > 0.0 || faceA.Y > 0.0 {
		return 0
	}

	// Box B faces
	faceB := dB.Abs().Sub(absCT.Mult(hA)).Sub(hB)
	if faceB.X > 0.0 || faceB.Y > 0.0 {
		return 0
	}

	// Find best axis
	bestAxis := faceAX
	separation := faceA.X
	normal := rotA.Col1
	if dA.X <= 0.0 {
		normal = rotA.Col1.Neg()
	}

	// The hysteresis keeps the reference axis from flapping between
	// near-equal separations, which would jitter the contact points.
	const relativeTol = 0.95
	const absoluteTol = 0.01

	if faceA.Y > relativeTol*separation+absoluteTol*hA.Y {
		bestAxis = faceAY
		separation = faceA.Y
		normal = rotA.Col2
		if dA.Y <= 0.0 {
			normal = rotA.Col2.Neg()
		}
	}

	if faceB.X > relativeTol*separation+absoluteTol*hB.X {
		bestAxis = faceBX
		separation = faceB.X
		normal = rotB.Col1
		if dB.X <= 0.0 {
			normal = rotB.Col1.Neg()
		}
	}

	if faceB.Y > relativeTol*separation+absoluteTol*hB.Y {
		bestAxis = faceBY
		normal = rotB.Col2
		if dB.Y <= 0.0 {
			normal = rotB.Col2.Neg()
		}
	}

	// Setup clipping plane data based on the separating axis
	var frontNormal, sideNormal Vector
	var incidentEdge [2]clipVertex
	var front, negSide, posSide float64
	var negEdge, posEdge EdgeNumber

	// Compute the clipping lines and the line segment to be clipped.
	switch bestAxis {
	case faceAX:
		frontNormal = normal
		front = posA.Dot(frontNormal) + hA.X
		sideNormal = rotA.Col2
		side := posA.Dot(sideNormal)
		negSide = -side + hA.Y
		posSide = side + hA.Y
		negEdge = Edge3
		posEdge = Edge1
		computeIncidentEdge(&incidentEdge, hB, posB, rotB, frontNormal)

	case faceAY:
		frontNormal = normal
		front = posA.Dot(frontNormal) + hA.Y
		sideNormal = rotA.Col1
		side := posA.Dot(sideNormal)
		negSide = -side + hA.X
		posSide = side + hA.X
		negEdge = Edge2
		posEdge = Edge4
		computeIncidentEdge(&incidentEdge, hB, posB, rotB, frontNormal)

	case faceBX:
		frontNormal = normal.Neg()
		front = posB.Dot(frontNormal) + hB.X
		sideNormal = rotB.Col2
		side := posB.Dot(sideNormal)
		negSide = -side + hB.Y
		posSide = side + hB.Y
		negEdge = Edge3
		posEdge = Edge1
		computeIncidentEdge(&incidentEdge, hA, posA, rotA, frontNormal)

	case faceBY:
		frontNormal = normal.Neg()
		front = posB.Dot(frontNormal) + hB.Y
		sideNormal = rotB.Col1
		side := posB.Dot(sideNormal)
		negSide = -side + hB.X
		posSide = side + hB.X
		negEdge = Edge2
		posEdge = Edge4
		computeIncidentEdge(&incidentEdge, hA, posA, rotA, frontNormal)
	}

	// clip other face with 5 box planes (1 face plane, 4 edge planes)
	var clipPoints1, clipPoints2 [2]clipVertex

	// Clip to box side 1
	np := clipSegmentToLine(&clipPoints1, &incidentEdge, sideNormal.Neg(), negSide, negEdge)
	if np < 2 {
		return 0
	}

	// Clip to negative box side 1
	np = clipSegmentToLine(&clipPoints2, &clipPoints1, sideNormal, posSide, posEdge)
	if np < 2 {
		return 0
	}

	// Now clipPoints2 contains the clipping points.
	// Due to roundoff, it is possible that clipping removes all points.
	numContacts := 0
	for i := 0; i < 2; i++ {
		sep := frontNormal.Dot(clipPoints2[i].v) - front
		if sep > 0.0 {
			continue
		}

		contact := &contacts[numContacts]
		contact.Separation = sep
		contact.Normal = normal
		// slide contact point onto reference face (easy to cull)
		contact.Position = clipPoints2[i].v.Sub(frontNormal.Mult(sep))
		contact.Feature = clipPoints2[i].fp
		if bestAxis == faceBX || bestAxis == faceBY {
			contact.Feature.flip()
		}
		numContacts++
	}

	return numContacts
}
