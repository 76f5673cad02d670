package mesh

import (
	"errors"
	"fmt"
	gomath "math"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/trefoil/pkg/surface"
)

// MinResolution is the smallest grid size along either axis.
const MinResolution = 2

// ErrInvalidResolution is returned when the grid cannot form a triangle.
var ErrInvalidResolution = errors.New("invalid resolution")

// Options controls a tessellation pass.
type Options struct {
	Nu, Nv int // samples along u and v
	// WrapU and WrapV stitch the last row or column back to the first.
	// Set them for directions in which the surface is periodic.
	WrapU, WrapV bool
	Normals      bool
	// Workers bounds the number of rows sampled concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
	Logger  *zap.Logger
}

// DefaultOptions returns options for a closed surface at a moderate resolution.
func DefaultOptions() Options {
	return Options{
		Nu:      128,
		Nv:      32,
		WrapU:   true,
		WrapV:   true,
		Normals: true,
	}
}

// ForSurface returns opts with the wrap flags def reports for p.
func (opts Options) ForSurface(def surface.Definition, p surface.Params) Options {
	opts.WrapU, opts.WrapV = def.Wrap(p)
	return opts
}

// Tessellate samples fn over a regular grid and assembles an indexed
// triangle mesh. Each call is independent; the caller owns the result.
func Tessellate(fn surface.Func, p surface.Params, opts Options) (*Mesh, error) {
	nu, nv := opts.Nu, opts.Nv
	if nu < MinResolution || nv < MinResolution {
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrInvalidResolution, nu, nv, MinResolution, MinResolution)
	}
	if uint64(nu)*uint64(nv) > gomath.MaxUint32 {
		return nil, fmt.Errorf("%w: %dx%d vertices overflow 32-bit indices", ErrInvalidResolution, nu, nv)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	m := &Mesh{
		Vertices: make([]Vertex, nu*nv),
		Nu:       nu,
		Nv:       nv,
		WrapU:    opts.WrapU,
		WrapV:    opts.WrapV,
	}
	degenerate := sample(m, fn, p, opts.Workers)
	for _, row := range degenerate {
		m.Degenerate = append(m.Degenerate, row...)
	}
	m.Indices = buildIndices(nu, nv, opts.WrapU, opts.WrapV)
	m.Bounds = computeBounds(m.Vertices)
	if opts.Normals {
		computeNormals(m)
		m.HasNormals = true
	}

	if len(m.Degenerate) > 0 {
		log.Warn("degenerate surface frames replaced by central curve",
			zap.Int("count", len(m.Degenerate)),
			zap.Int("first", m.Degenerate[0]),
			zap.Float64("b", p.B), zap.Float64("c1", p.C1), zap.Float64("c2", p.C2))
	}
	log.Debug("tessellated surface",
		zap.Int("nu", nu), zap.Int("nv", nv),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)))
	return m, nil
}

// sample evaluates every grid node, one row of constant u per task.
// It returns the degenerate vertex indices grouped by row.
func sample(m *Mesh, fn surface.Func, p surface.Params, workers int) [][]int {
	nu, nv := m.Nu, m.Nv
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	uDiv := divisions(nu, m.WrapU)
	vDiv := divisions(nv, m.WrapV)
	degenerate := make([][]int, nu)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < nu; i++ {
		i := i
		g.Go(func() error {
			u := float64(i) / uDiv
			row := m.Vertices[i*nv : (i+1)*nv]
			for j := range row {
				pt := fn(u, float64(j)/vDiv, p)
				row[j] = Vertex{Position: pt.Position, TexCoord: pt.TexCoord}
				if pt.Degenerate {
					degenerate[i] = append(degenerate[i], i*nv+j)
				}
			}
			return nil
		})
	}
	_ = g.Wait() // Row tasks never fail.
	return degenerate
}

// divisions returns the number of intervals n samples split [0, 1] into.
// A periodic axis samples the half-open interval [0, 1), an open one the
// closed [0, 1].
func divisions(n int, wrap bool) float64 {
	if wrap {
		return float64(n)
	}
	return float64(n - 1)
}

// buildIndices emits two counter-clockwise triangles per grid cell.
func buildIndices(nu, nv int, wrapU, wrapV bool) []uint32 {
	cu, cv := nu-1, nv-1
	if wrapU {
		cu = nu
	}
	if wrapV {
		cv = nv
	}
	indices := make([]uint32, 0, cu*cv*6)
	for i := 0; i < cu; i++ {
		i1 := (i + 1) % nu
		for j := 0; j < cv; j++ {
			j1 := (j + 1) % nv
			a := uint32(i*nv + j)
			b := uint32(i1*nv + j)
			c := uint32(i*nv + j1)
			d := uint32(i1*nv + j1)
			indices = append(indices,
				a, b, c,
				b, d, c,
			)
		}
	}
	return indices
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for i := range vertices[1:] {
		p := vertices[i+1].Position
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}
