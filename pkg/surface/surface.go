// Package surface defines parametric surfaces mapping a normalized (u, v)
// parameter domain onto 3D positions and texture coordinates.
package surface

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"github.com/Faultbox/trefoil/pkg/math"
)

// Surface errors.
var (
	ErrNonFiniteParam = errors.New("non-finite shape parameter")
	ErrUnknownSurface = errors.New("unknown surface")
)

// Params holds the shape coefficients of a surface.
type Params struct {
	B  float64 // knot winding factor
	C1 float64 // primary radius scale
	C2 float64 // tube radius scale
}

// DefaultParams returns the classic trefoil coefficients b=3, c1=10, c2=2.
func DefaultParams() Params {
	return Params{B: 3, C1: 10, C2: 2}
}

// Validate checks that every coefficient is finite. Zero and negative values
// are accepted and produce degenerate or mirrored geometry.
func (p Params) Validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{{"b", p.B}, {"c1", p.C1}, {"c2", p.C2}} {
		if gomath.IsNaN(c.v) || gomath.IsInf(c.v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrNonFiniteParam, c.name, c.v)
		}
	}
	return nil
}

// Point is the result of evaluating a surface at one parameter sample.
type Point struct {
	Position math.Vec3
	// TexCoord holds the remapped (u, v) parameters in radians.
	TexCoord math.Vec2
	// Degenerate is set when the local frame could not be built and
	// Position fell back to the central curve.
	Degenerate bool
}

// Func evaluates a surface at normalized parameters u, v in [0, 1).
type Func func(u, v float64, p Params) Point

// Definition describes a named surface and its periodicity.
type Definition struct {
	Name string
	Func Func
	// Periodic reports the directions in which the surface closes on itself
	// for p. A nil Periodic means the surface is open in both directions.
	Periodic func(p Params) (wrapU, wrapV bool)
}

// Wrap reports whether the u and v parameter ranges close for p.
func (d Definition) Wrap(p Params) (wrapU, wrapV bool) {
	if d.Periodic == nil {
		return false, false
	}
	return d.Periodic(p)
}

var registry = map[string]Definition{
	"trefoil": {Name: "trefoil", Func: Trefoil, Periodic: trefoilPeriodic},
	"torus":   {Name: "torus", Func: Torus, Periodic: closed},
}

func closed(Params) (bool, bool) { return true, true }

// Lookup returns the surface registered under name.
func Lookup(name string) (Definition, error) {
	def, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownSurface, name)
	}
	return def, nil
}

// Names returns the registered surface names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// remap converts normalized parameters to the angular domain shared by the
// built-in surfaces: u spans four periods, v is centred on zero.
func remap(u, v float64) (float64, float64) {
	return u * 4 * gomath.Pi, (v - 0.5) * 2 * gomath.Pi
}
