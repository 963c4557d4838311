package pairvalidate

import "github.com/TimothyStiles/basepair/geometry"

// point2 is a ring vertex projected into the mean-plane's own 2-D basis.
type point2 struct{ X, Y float64 }

// projectRing projects ring (a residue's six-membered-ring points, in
// traversal order) onto the plane through planeOrigin with in-plane axes
// ex, ey (assumed orthonormal and both perpendicular to the plane normal).
func projectRing(ring []geometry.Vector3, planeOrigin geometry.Vector3, ex, ey geometry.Vector3) []point2 {
	pts := make([]point2, len(ring))
	for i, p := range ring {
		d := p.Sub(planeOrigin)
		pts[i] = point2{X: d.Dot(ex), Y: d.Dot(ey)}
	}
	return pts
}

// polygonArea returns the (unsigned) area of a simple polygon via the
// shoelace formula.
func polygonArea(poly []point2) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	area := sum / 2
	if area < 0 {
		return -area
	}
	return area
}

// ensureCCW returns poly reordered counter-clockwise, which
// sutherlandHodgmanClip requires of its clip polygon.
func ensureCCW(poly []point2) []point2 {
	var signedArea float64
	for i := range poly {
		j := (i + 1) % len(poly)
		signedArea += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	if signedArea >= 0 {
		return poly
	}
	reversed := make([]point2, len(poly))
	for i, p := range poly {
		reversed[len(poly)-1-i] = p
	}
	return reversed
}

func isInside(p, edgeA, edgeB point2) bool {
	return (edgeB.X-edgeA.X)*(p.Y-edgeA.Y)-(edgeB.Y-edgeA.Y)*(p.X-edgeA.X) >= 0
}

func lineIntersection(p1, p2, edgeA, edgeB point2) point2 {
	a1, b1 := p2.Y-p1.Y, p1.X-p2.X
	c1 := a1*p1.X + b1*p1.Y
	a2, b2 := edgeB.Y-edgeA.Y, edgeA.X-edgeB.X
	c2 := a2*edgeA.X + b2*edgeA.Y
	det := a1*b2 - a2*b1
	if det == 0 {
		return p2
	}
	return point2{X: (b2*c1 - b1*c2) / det, Y: (a1*c2 - a2*c1) / det}
}

// sutherlandHodgmanClip clips subject against the convex polygon clip
// (which must be wound counter-clockwise) and returns the intersection
// polygon.
func sutherlandHodgmanClip(subject, clip []point2) []point2 {
	output := subject
	for i := range clip {
		if len(output) == 0 {
			return output
		}
		edgeA, edgeB := clip[i], clip[(i+1)%len(clip)]
		input := output
		output = nil
		for j := range input {
			current := input[j]
			prev := input[(j-1+len(input))%len(input)]
			currentInside := isInside(current, edgeA, edgeB)
			prevInside := isInside(prev, edgeA, edgeB)
			if currentInside {
				if !prevInside {
					output = append(output, lineIntersection(prev, current, edgeA, edgeB))
				}
				output = append(output, current)
			} else if prevInside {
				output = append(output, lineIntersection(prev, current, edgeA, edgeB))
			}
		}
	}
	return output
}

// overlapArea computes the area shared by the two residues' six-membered
// base rings, projected onto the mean plane of their two normals
// (spec.md §4.7 step 5). Both rings are assumed to wind as simple (though
// not necessarily convex) hexagons in atom-traversal order; the fused
// purine imidazole ring is excluded (see ringatom.RingPoints).
func overlapArea(ringI, ringJ []geometry.Vector3, planeOrigin geometry.Vector3, ex, ey geometry.Vector3) float64 {
	if len(ringI) < 3 || len(ringJ) < 3 {
		return 0
	}
	polyI := ensureCCW(projectRing(ringI, planeOrigin, ex, ey))
	polyJ := ensureCCW(projectRing(ringJ, planeOrigin, ex, ey))
	intersection := sutherlandHodgmanClip(polyI, polyJ)
	return polygonArea(intersection)
}
