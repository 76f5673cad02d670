package surface

import (
	"errors"
	gomath "math"
	"slices"
	"testing"

	"github.com/Faultbox/trefoil/pkg/math"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.B != 3 || p.C1 != 10 || p.C2 != 2 {
		t.Errorf("DefaultParams() = %+v, want {B:3 C1:10 C2:2}", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Params
		wantErr bool
	}{
		{"defaults", DefaultParams(), false},
		{"zero", Params{}, false},
		{"negative", Params{B: -2, C1: -10, C2: -1}, false},
		{"nan b", Params{B: gomath.NaN(), C1: 10, C2: 2}, true},
		{"inf c1", Params{B: 3, C1: gomath.Inf(1), C2: 2}, true},
		{"-inf c2", Params{B: 3, C1: 10, C2: gomath.Inf(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr && !errors.Is(err, ErrNonFiniteParam) {
				t.Errorf("Validate() = %v, want ErrNonFiniteParam", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	def, err := Lookup("trefoil")
	if err != nil {
		t.Fatalf("Lookup(trefoil): %v", err)
	}
	if def.Func == nil || def.Periodic == nil {
		t.Errorf("unexpected trefoil definition: %+v", def)
	}
	if _, err := Lookup("klein"); !errors.Is(err, ErrUnknownSurface) {
		t.Errorf("Lookup(klein) = %v, want ErrUnknownSurface", err)
	}
	if got := Names(); !slices.Equal(got, []string{"torus", "trefoil"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestTrefoilWrap(t *testing.T) {
	def, err := Lookup("trefoil")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name  string
		b     float64
		wrapU bool
	}{
		{"default", 3, true},
		{"zero", 0, true},
		{"negative integer", -2, true},
		{"rounding noise", 3 + 1e-12, true},
		{"half", 2.5, false},
		{"fractional", 1.3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{B: tt.b, C1: 10, C2: 2}
			wrapU, wrapV := def.Wrap(p)
			if wrapU != tt.wrapU || !wrapV {
				t.Fatalf("Wrap = %v/%v, want %v/true", wrapU, wrapV, tt.wrapU)
			}
			// The wrap decision must agree with the geometry at the u seam.
			gap := Trefoil(0, 0.3, p).Position.Distance(Trefoil(1, 0.3, p).Position)
			if tt.wrapU && gap > 1e-6 {
				t.Errorf("wrapped but seam gap is %v", gap)
			}
			if !tt.wrapU && gap < 1 {
				t.Errorf("open but seam gap is only %v", gap)
			}
		})
	}
}

func TestDefinitionWrapNilPeriodic(t *testing.T) {
	def := Definition{Name: "patch", Func: Torus}
	if wrapU, wrapV := def.Wrap(DefaultParams()); wrapU || wrapV {
		t.Errorf("Wrap = %v/%v, want open", wrapU, wrapV)
	}
}

func TestTrefoilTexCoord(t *testing.T) {
	pt := Trefoil(0.25, 0.75, DefaultParams())
	want := math.Vec2{X: gomath.Pi, Y: gomath.Pi / 2}
	if pt.TexCoord.Distance(want) > 1e-12 {
		t.Errorf("TexCoord = %v, want %v", pt.TexCoord, want)
	}
}

func TestTrefoilPeriodicU(t *testing.T) {
	p := DefaultParams()
	for _, v := range []float64{0, 0.1, 0.3, 0.5, 0.77} {
		a := Trefoil(0, v, p).Position
		b := Trefoil(1, v, p).Position
		if d := a.Distance(b); d > 1e-9 {
			t.Errorf("v=%v: |P(0)-P(1)| = %g", v, d)
		}
	}
	// Approaching the end of the domain converges on the start. The surface
	// moves at most ~40 units per radian, so 1e-6 in u is well below 2e-3.
	const du = 1e-6
	a := Trefoil(0, 0.3, p).Position
	b := Trefoil(1-du, 0.3, p).Position
	if d := a.Distance(b); d > 2e-3 {
		t.Errorf("|P(0, 0.3)-P(1-du, 0.3)| = %g", d)
	}
}

func TestTrefoilTubeClosure(t *testing.T) {
	p := DefaultParams()
	for _, u := range []float64{0, 0.25, 0.4, 0.9} {
		a := Trefoil(u, 0, p).Position
		b := Trefoil(u, 1, p).Position
		if d := a.Distance(b); d > 1e-9 {
			t.Errorf("u=%v: |P(v=0)-P(v=1)| = %g", u, d)
		}
	}
	// Approaching v = 1 converges on v = 0. The tube circle has radius c2,
	// so a step of 1e-6 in v moves the point by 2π·c2·1e-6 ≈ 1.3e-5.
	a := Trefoil(0.25, 0, p).Position
	b := Trefoil(0.25, 0.999999, p).Position
	if d := a.Distance(b); d > 1e-4 {
		t.Errorf("|P(0.25, 0)-P(0.25, 0.999999)| = %g", d)
	}
}

func TestTrefoilTubeRadius(t *testing.T) {
	p := DefaultParams()
	for _, u := range []float64{0.05, 0.3, 0.61} {
		for _, v := range []float64{0, 0.2, 0.9} {
			prev := 0.0
			for _, c2 := range []float64{0.25, 0.5, 1, 2, 4} {
				p.C2 = c2
				centre := CentralCurve(u, p)
				d := Trefoil(u, v, p).Position.Distance(centre)
				if gomath.Abs(d-c2) > 1e-9 {
					t.Errorf("u=%v v=%v c2=%v: tube radius %v", u, v, c2, d)
				}
				if d <= prev {
					t.Errorf("u=%v v=%v: radius %v did not grow past %v", u, v, d, prev)
				}
				prev = d
			}
		}
	}
}

func TestTrefoilOffsetOrthogonalToTangent(t *testing.T) {
	p := DefaultParams()
	const h = 1e-6
	for _, u := range []float64{0.1, 0.33, 0.72} {
		tangent := CentralCurve(u+h, p).Sub(CentralCurve(u-h, p)).Normalize()
		for _, v := range []float64{0, 0.25, 0.6} {
			offset := Trefoil(u, v, p).Position.Sub(CentralCurve(u, p)).Normalize()
			if dot := offset.Dot(tangent); gomath.Abs(dot) > 1e-6 {
				t.Errorf("u=%v v=%v: offset·tangent = %g", u, v, dot)
			}
		}
	}
}

func TestTrefoilZeroBIsTorus(t *testing.T) {
	p := Params{B: 0, C1: 10, C2: 2}
	samples := [][2]float64{{0.1, 0}, {0, 0}, {0.25, 0.5}, {0.6, 0.15}, {0.9, 0.8}}
	for _, s := range samples {
		got := Trefoil(s[0], s[1], p)
		want := Torus(s[0], s[1], p)
		if got.Degenerate {
			t.Errorf("%v: unexpected degenerate frame", s)
		}
		if d := got.Position.Distance(want.Position); d > 1e-9 {
			t.Errorf("%v: trefoil %v, torus %v", s, got.Position, want.Position)
		}
		// Closed form: major radius c1/4, minor radius c2.
		u, v := s[0]*4*gomath.Pi, (s[1]-0.5)*2*gomath.Pi
		r := 2.5 + 2*gomath.Cos(v)
		closed := math.Vec3{X: r * gomath.Cos(u), Y: r * gomath.Sin(u), Z: 2 * gomath.Sin(v)}
		if d := got.Position.Distance(closed); d > 1e-9 {
			t.Errorf("%v: trefoil %v, closed form %v", s, got.Position, closed)
		}
	}
}

func TestTrefoilDegenerate(t *testing.T) {
	t.Run("zero c1 collapses to origin", func(t *testing.T) {
		p := Params{B: 3, C1: 0, C2: 2}
		for _, v := range []float64{0, 0.3, 0.8} {
			pt := Trefoil(0.2, v, p)
			if !pt.Degenerate {
				t.Errorf("v=%v: expected degenerate frame", v)
			}
			if pt.Position != (math.Vec3{}) {
				t.Errorf("v=%v: position %v, want origin", v, pt.Position)
			}
		}
	})
	t.Run("zero c2 lies on centre line", func(t *testing.T) {
		p := Params{B: 3, C1: 10, C2: 0}
		pt := Trefoil(0.42, 0.1, p)
		if pt.Degenerate {
			t.Error("unexpected degenerate frame")
		}
		if d := pt.Position.Distance(CentralCurve(0.42, p)); d > 1e-12 {
			t.Errorf("distance to centre line %g", d)
		}
	})
	t.Run("finite near vanishing radius", func(t *testing.T) {
		// With b = 1 the central radius reaches zero at u = 0.5.
		p := Params{B: 1, C1: 10, C2: 2}
		for _, v := range []float64{0, 0.25, 0.5} {
			if pt := Trefoil(0.5, v, p); !pt.Position.IsFinite() {
				t.Errorf("v=%v: non-finite position %v", v, pt.Position)
			}
		}
	})
}

func TestTorusRadii(t *testing.T) {
	p := Params{C1: 8, C2: 0.5}
	// Outer equator at v' = 0, i.e. v = 0.5.
	if r := Torus(0, 0.5, p).Position.Length(); gomath.Abs(r-2.5) > 1e-12 {
		t.Errorf("outer radius = %v, want 2.5", r)
	}
	// Inner equator at v' = ±π.
	if r := Torus(0, 0, p).Position.Length(); gomath.Abs(r-1.5) > 1e-12 {
		t.Errorf("inner radius = %v, want 1.5", r)
	}
}
