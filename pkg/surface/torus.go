package surface

import (
	gomath "math"

	"github.com/Faultbox/trefoil/pkg/math"
)

// Torus evaluates a torus of major radius c1/4 and minor radius c2 over the
// same parameter domain as Trefoil. The u range covers the ring twice.
// B is ignored. For c1 > 0, Trefoil with b = 0 reduces to this surface.
func Torus(u, v float64, p Params) Point {
	u, v = remap(u, v)
	major, minor := p.C1/4, p.C2
	r := major + minor*gomath.Cos(v)
	return Point{
		Position: math.Vec3{
			X: r * gomath.Cos(u),
			Y: r * gomath.Sin(u),
			Z: minor * gomath.Sin(v),
		},
		TexCoord: math.Vec2{X: u, Y: v},
	}
}
