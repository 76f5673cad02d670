package surface

import (
	gomath "math"

	"github.com/Faultbox/trefoil/pkg/math"
)

// Trefoil evaluates a tube of radius c2 swept along a trefoil knot whose
// radial distance oscillates with cos(b*u/2).
//
// The tube offset is rotated into the plane orthogonal to the curve tangent
// with closed-form expressions of the tangent components, so no explicit
// Frenet frame is built. When the in-plane tangent vanishes the offset is
// undefined; the central curve point is returned with Degenerate set.
func Trefoil(u, v float64, p Params) Point {
	u, v = remap(u, v)
	b, c1, c2 := p.B, p.C1, p.C2

	cosu, sinu := gomath.Cos(u), gomath.Sin(u)
	cosv, sinv := gomath.Cos(v), gomath.Sin(v)
	cosbu, sinbu := gomath.Cos(b*u/2), gomath.Sin(b*u/2)

	// Radial distance of the central curve and its height.
	c3 := c1 * (cosbu + b) / 4
	height := gomath.Sin(sinbu)

	// Central curve tangent: in-plane (c4, c5) and out of plane (c6).
	c4 := -c3*sinu - b*c1*sinbu*cosu/8
	c5 := c3*cosu - b*c1*sinbu*sinu/8
	c6 := b*c3*gomath.Cos(sinbu)*cosbu/2 - b*c1*height*sinbu/8
	c7 := gomath.Sqrt(c4*c4 + c5*c5)
	c8 := gomath.Sqrt(c4*c4 + c5*c5 + c6*c6)

	pt := Point{
		Position: math.Vec3{X: c3 * cosu, Y: c3 * sinu, Z: c3 * height},
		TexCoord: math.Vec2{X: u, Y: v},
	}
	den := c7 * c8
	if den == 0 {
		pt.Degenerate = true
		return pt
	}
	offset := math.Vec3{
		X: c2 * (c8*cosv*c5 - sinv*c4*c6) / den,
		Y: -c2 * (c8*cosv*c4 + sinv*c5*c6) / den,
		Z: c2 * sinv * c7 / c8,
	}
	if !offset.IsFinite() {
		pt.Degenerate = true
		return pt
	}
	pt.Position = pt.Position.Add(offset)
	return pt
}

// CentralCurve returns the point of the trefoil centre line at normalized u.
// It is the position Trefoil yields for c2 = 0.
func CentralCurve(u float64, p Params) math.Vec3 {
	u, _ = remap(u, 0)
	c3 := p.C1 * (gomath.Cos(p.B*u/2) + p.B) / 4
	return math.Vec3{
		X: c3 * gomath.Cos(u),
		Y: c3 * gomath.Sin(u),
		Z: c3 * gomath.Sin(gomath.Sin(p.B*u/2)),
	}
}

// integerTolerance bounds how far b may sit from an integer and still be
// treated as one when deciding periodicity.
const integerTolerance = 1e-9

// trefoilPeriodic reports the trefoil as closed in u only for integer b:
// u spans 4π, so cos(b*u/2) and sin(b*u/2) return to their start only when
// b*2π is a multiple of 2π. The tube is always closed in v.
func trefoilPeriodic(p Params) (wrapU, wrapV bool) {
	return gomath.Abs(p.B-gomath.Round(p.B)) <= integerTolerance, true
}
