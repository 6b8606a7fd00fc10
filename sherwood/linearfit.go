package sherwood

import (
	"encoding/binary"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LinearFit1D is the regression aggregator (spec §4.3): a Bayesian
// linear regression over a single predictor x plus intercept, keeping
// the 2x2 normal-equations matrix XtX, the 2-vector XtY, and sum(y^2) as
// sufficient statistics. The normal-equations solve is delegated to
// gonum's mat.Dense.Solve, the same approach the teacher's
// poisson_legacy/linear.go solveLinearSystem uses for its own per-node
// regression weight.
type LinearFit1D struct {
	N                   uint32
	XtX00, XtX01, XtX11 float64 // XtX = [[n, sum x], [sum x, sum x^2]]
	XtY0, XtY1          float64 // XtY = [sum y, sum x*y]
	SumYY               float64
}

// Clear resets all sufficient statistics to zero.
func (l *LinearFit1D) Clear() {
	*l = LinearFit1D{}
}

// AggregateOne folds one (x, y) sample into the normal equations.
func (l *LinearFit1D) AggregateOne(data DataPointCollection, sampleIndex int) {
	cp, okC := data.(CoordinateProvider)
	tp, okT := data.(TargetProvider)
	if !okC || !okT {
		panic(ErrDataShapeMismatch)
	}
	x := float64(cp.GetCoordinate(sampleIndex, 0))
	y := float64(tp.GetTarget(sampleIndex))

	l.N++
	l.XtX00 += 1
	l.XtX01 += x
	l.XtX11 += x * x
	l.XtY0 += y
	l.XtY1 += x * y
	l.SumYY += y * y
}

// Aggregate merges another LinearFit1D's sufficient statistics into this
// one.
func (l *LinearFit1D) Aggregate(other LinearFit1D) {
	l.N += other.N
	l.XtX00 += other.XtX00
	l.XtX01 += other.XtX01
	l.XtX11 += other.XtX11
	l.XtY0 += other.XtY0
	l.XtY1 += other.XtY1
	l.SumYY += other.SumYY
}

// SampleCount returns n.
func (l LinearFit1D) SampleCount() uint32 {
	return l.N
}

func (l LinearFit1D) detXtX() float64 {
	return l.XtX00*l.XtX11 - l.XtX01*l.XtX01
}

// weights solves XtX * w = XtY for the intercept/slope pair (w0, w1).
// ok is false when XtX is singular.
func (l LinearFit1D) weights() (w0, w1 float64, ok bool) {
	det := l.detXtX()
	if det == 0 {
		return 0, 0, false
	}
	lhs := mat.NewDense(2, 2, []float64{l.XtX00, l.XtX01, l.XtX01, l.XtX11})
	rhs := mat.NewDense(2, 1, []float64{l.XtY0, l.XtY1})
	var out mat.Dense
	if err := out.Solve(lhs, rhs); err != nil {
		return 0, 0, false
	}
	return out.At(0, 0), out.At(1, 0), true
}

// residualVariance returns the mean squared residual of the fitted line
// over the training samples, SSE/n, or 0 when the fit is degenerate.
func (l LinearFit1D) residualVariance() float64 {
	w0, w1, ok := l.weights()
	if !ok || l.N == 0 {
		return 0
	}
	sse := l.SumYY - 2*(w0*l.XtY0+w1*l.XtY1) + w0*w0*l.XtX00 + 2*w0*w1*l.XtX01 + w1*w1*l.XtX11
	if sse < 0 {
		sse = 0
	}
	return sse / float64(l.N)
}

// PredictiveMeanVariance returns the BLR posterior mean at x and the
// predictive variance (residual variance plus posterior uncertainty in
// the fitted line itself), per spec §4.3. ok is false when the leaf
// holds too few samples or a singular fit to predict from.
func (l LinearFit1D) PredictiveMeanVariance(x float64) (mean, variance float64, ok bool) {
	w0, w1, fitOK := l.weights()
	if !fitOK || l.N < 3 {
		return 0, 0, false
	}
	mean = w0 + w1*x
	residual := l.residualVariance()

	// Posterior predictive uncertainty in the fitted line itself:
	// residual * xvec^T (XtX)^-1 xvec, xvec = [1, x].
	det := l.detXtX()
	invXtX00 := l.XtX11 / det
	invXtX01 := -l.XtX01 / det
	invXtX11 := l.XtX00 / det
	lineVar := invXtX00 + 2*x*invXtX01 + x*x*invXtX11
	if lineVar < 0 {
		lineVar = 0
	}
	variance = residual + residual*lineVar
	return mean, variance, true
}

// EntropyLike is +Inf when n<3 or XtX is singular (spec §4.3: neither
// case lets a leaf make a confident prediction), otherwise
// 0.5*log((2*pi*e)^2 * |XtX|).
func (l LinearFit1D) EntropyLike() float64 {
	if l.N < 3 {
		return math.Inf(1)
	}
	det := l.detXtX()
	if det == 0 {
		return math.Inf(1)
	}
	const twoPiE = 2 * math.Pi * math.E
	return 0.5 * math.Log(twoPiE*twoPiE*det)
}

// DeepClone returns an independent copy.
func (l LinearFit1D) DeepClone() LinearFit1D {
	return l
}

// LinearFit1DCodec serializes every field as a little-endian float64 (N
// included, widened from uint32 for a uniform fixed-width record).
var LinearFit1DCodec = AggregatorCodec[LinearFit1D]{
	Encode: func(l LinearFit1D, w io.Writer) error {
		fields := []float64{
			float64(l.N), l.XtX00, l.XtX01, l.XtX11, l.XtY0, l.XtY1, l.SumYY,
		}
		return binary.Write(w, binary.LittleEndian, fields)
	},
	Decode: func(r io.Reader) (LinearFit1D, error) {
		fields := make([]float64, 7)
		if err := binary.Read(r, binary.LittleEndian, fields); err != nil {
			return LinearFit1D{}, err
		}
		return LinearFit1D{
			N:     uint32(fields[0]),
			XtX00: fields[1],
			XtX01: fields[2],
			XtX11: fields[3],
			XtY0:  fields[4],
			XtY1:  fields[5],
			SumYY: fields[6],
		}, nil
	},
}
