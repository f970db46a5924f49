package projection

import (
	"errors"
	"fmt"
	"sort"
)

// Kind selects the fitting strategy for a balance curve.
type Kind string

const (
	// KindLinear fits a piecewise-linear curve through the samples.
	KindLinear Kind = "slinear"
	// KindCubic fits a natural cubic spline through the samples.
	KindCubic Kind = "cubic"
)

var ErrNoPoints = errors.New("no points to fit")

// Point is one curve sample.
type Point struct {
	X float64
	Y float64
}

// Curve evaluates a fitted balance trend at any x, including x outside
// the sampled range. Extrapolation continues the end segment (linear)
// or end polynomial (cubic).
type Curve interface {
	Evaluate(x float64) float64
}

// Fit builds a curve of the given kind through the points. Points need
// not arrive sorted; duplicate x values collapse to the last one seen.
// A single point yields a constant curve. Cubic fits fall back to
// linear when fewer than three distinct points remain.
func Fit(points []Point, kind Kind) (Curve, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	pts := dedupe(points)

	if len(pts) == 1 {
		return constantCurve(pts[0].Y), nil
	}

	switch kind {
	case KindLinear:
		return linearCurve(pts), nil
	case KindCubic:
		if len(pts) < 3 {
			return linearCurve(pts), nil
		}

		return fitCubic(pts), nil
	default:
		return nil, fmt.Errorf("unknown curve kind %q", kind)
	}
}

// Zero is the identically-zero curve, used when an account has no
// history to fit.
func Zero() Curve {
	return constantCurve(0)
}

func dedupe(points []Point) []Point {
	pts := make([]Point, len(points))
	copy(pts, points)

	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })

	out := pts[:0]

	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].X == p.X {
			out[len(out)-1] = p
			continue
		}

		out = append(out, p)
	}

	return out
}

type constantCurve float64

func (c constantCurve) Evaluate(float64) float64 {
	return float64(c)
}

// linearCurve interpolates between neighbouring samples and
// extrapolates along the first or last segment outside the range.
type linearCurve []Point

func (c linearCurve) Evaluate(x float64) float64 {
	// Index of the segment [i, i+1] that covers x, clamped to the end
	// segments for out-of-range x.
	i := sort.Search(len(c), func(i int) bool { return c[i].X >= x })

	switch {
	case i == 0:
		i = 0
	case i == len(c):
		i = len(c) - 2
	default:
		i--
	}

	p0, p1 := c[i], c[i+1]
	t := (x - p0.X) / (p1.X - p0.X)

	return p0.Y + t*(p1.Y-p0.Y)
}

// cubicCurve is a natural cubic spline: on each interval the curve is
// a(x-x0)^3 + b(x-x0)^2 + c(x-x0) + d, with zero second derivative at
// both ends. Outside the range the end polynomial keeps going.
type cubicCurve struct {
	xs []float64
	a  []float64
	b  []float64
	c  []float64
	d  []float64
}

func fitCubic(pts []Point) *cubicCurve {
	n := len(pts)

	xs := make([]float64, n)
	ys := make([]float64, n)

	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}

	h := make([]float64, n-1)
	for i := range h {
		h[i] = xs[i+1] - xs[i]
	}

	// Solve the tridiagonal system for the second derivatives m, with
	// the natural boundary m[0] = m[n-1] = 0, by the Thomas algorithm.
	m := make([]float64, n)
	cp := make([]float64, n)
	dp := make([]float64, n)

	for i := 1; i < n-1; i++ {
		rhs := 6 * ((ys[i+1]-ys[i])/h[i] - (ys[i]-ys[i-1])/h[i-1])
		diag := 2 * (h[i-1] + h[i])

		if i == 1 {
			cp[i] = h[i] / diag
			dp[i] = rhs / diag
			continue
		}

		denom := diag - h[i-1]*cp[i-1]
		cp[i] = h[i] / denom
		dp[i] = (rhs - h[i-1]*dp[i-1]) / denom
	}

	for i := n - 2; i >= 1; i-- {
		m[i] = dp[i] - cp[i]*m[i+1]
	}

	cv := &cubicCurve{
		xs: xs,
		a:  make([]float64, n-1),
		b:  make([]float64, n-1),
		c:  make([]float64, n-1),
		d:  make([]float64, n-1),
	}

	for i := 0; i < n-1; i++ {
		cv.a[i] = (m[i+1] - m[i]) / (6 * h[i])
		cv.b[i] = m[i] / 2
		cv.c[i] = (ys[i+1]-ys[i])/h[i] - h[i]*(2*m[i]+m[i+1])/6
		cv.d[i] = ys[i]
	}

	return cv
}

func (c *cubicCurve) Evaluate(x float64) float64 {
	i := sort.SearchFloat64s(c.xs, x)

	switch {
	case i == 0:
		i = 0
	case i >= len(c.xs):
		i = len(c.xs) - 2
	default:
		i--
	}

	dx := x - c.xs[i]

	return ((c.a[i]*dx+c.b[i])*dx+c.c[i])*dx + c.d[i]
}
