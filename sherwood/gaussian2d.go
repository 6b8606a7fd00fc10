package sherwood

import (
	"encoding/binary"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Gaussian2D is the density-estimation / semi-supervised-unlabelled-term
// aggregator (spec §4.3). It keeps raw sufficient statistics (n, sum x,
// sum y, sum xx, sum yy, sum xy) plus Normal-inverse-Wishart-flavoured
// prior hyperparameters A (>=0.001) and B (>=1) that blend with the
// maximum-likelihood covariance as the sample count grows.
type Gaussian2D struct {
	N                   uint32
	SumX, SumY          float64
	SumXX, SumYY, SumXY float64
	PriorA, PriorB      float64
}

// NewGaussian2D creates an empty Gaussian2D aggregator with the given
// prior hyperparameters. priorA is clamped to >=0.001 and priorB to >=1
// per spec §4.3.
func NewGaussian2D(priorA, priorB float64) Gaussian2D {
	if priorA < 0.001 {
		priorA = 0.001
	}
	if priorB < 1 {
		priorB = 1
	}
	return Gaussian2D{PriorA: priorA, PriorB: priorB}
}

// Clear resets all sufficient statistics to zero, keeping the priors.
func (g *Gaussian2D) Clear() {
	g.N, g.SumX, g.SumY, g.SumXX, g.SumYY, g.SumXY = 0, 0, 0, 0, 0, 0
}

// AggregateOne folds one sample's first two coordinates into the
// sufficient statistics.
func (g *Gaussian2D) AggregateOne(data DataPointCollection, sampleIndex int) {
	cp, ok := data.(CoordinateProvider)
	if !ok {
		panic(ErrDataShapeMismatch)
	}
	x := float64(cp.GetCoordinate(sampleIndex, 0))
	y := float64(cp.GetCoordinate(sampleIndex, 1))
	g.N++
	g.SumX += x
	g.SumY += y
	g.SumXX += x * x
	g.SumYY += y * y
	g.SumXY += x * y
}

// Aggregate merges another Gaussian2D's sufficient statistics into this
// one. Priors are taken from the receiver.
func (g *Gaussian2D) Aggregate(other Gaussian2D) {
	g.N += other.N
	g.SumX += other.SumX
	g.SumY += other.SumY
	g.SumXX += other.SumXX
	g.SumYY += other.SumYY
	g.SumXY += other.SumXY
}

// SampleCount returns n.
func (g Gaussian2D) SampleCount() uint32 {
	return g.N
}

// Mean returns the maximum-likelihood mean (sum x/n, sum y/n), or (0,0)
// for an empty aggregator.
func (g Gaussian2D) Mean() (meanX, meanY float64) {
	if g.N == 0 {
		return 0, 0
	}
	n := float64(g.N)
	return g.SumX / n, g.SumY / n
}

// Covariance returns the prior-blended covariance matrix (spec §4.3):
// the ML covariance blended with the prior via alpha = n/(n+a), where
// vxx and vyy blend toward the scalar prior b and vxy blends toward 0.
func (g Gaussian2D) Covariance() *mat.Dense {
	n := float64(g.N)
	cov := mat.NewDense(2, 2, nil)
	if g.N == 0 {
		cov.Set(0, 0, g.PriorB)
		cov.Set(1, 1, g.PriorB)
		return cov
	}
	meanX, meanY := g.Mean()
	mlXX := g.SumXX/n - meanX*meanX
	mlYY := g.SumYY/n - meanY*meanY
	mlXY := g.SumXY/n - meanX*meanY

	alpha := n / (n + g.PriorA)
	vxx := alpha*mlXX + (1-alpha)*g.PriorB
	vyy := alpha*mlYY + (1-alpha)*g.PriorB
	vxy := alpha * mlXY

	cov.Set(0, 0, vxx)
	cov.Set(0, 1, vxy)
	cov.Set(1, 0, vxy)
	cov.Set(1, 1, vyy)
	return cov
}

// EntropyLike returns the Gaussian differential entropy
// 0.5*log((2*pi*e)^2 * |Sigma|). A non-positive determinant (covariance
// degenerate under the current prior/sample mix) scores +Inf so that
// such a split can never win (spec §4.3, §9).
func (g Gaussian2D) EntropyLike() float64 {
	cov := g.Covariance()
	det := mat.Det(cov)
	if det <= 0 {
		return math.Inf(1)
	}
	const twoPiE = 2 * math.Pi * math.E
	return 0.5 * math.Log(twoPiE*twoPiE*det)
}

// NegativeLogProbability scores how far (x, y) sits from this Gaussian,
// 0.5*log|Sigma| + 0.5*(d^T Sigma^-1 d) with d=(x,y)-mean (spec's
// original density-estimation demo uses the same unnormalized score,
// GaussianPdf2d::GetNegativeLogProbability, as an inter-leaf distance
// for semi-supervised label transduction). +Inf when Sigma is singular.
func (g Gaussian2D) NegativeLogProbability(x, y float64) float64 {
	cov := g.Covariance()
	det := mat.Det(cov)
	if det <= 0 {
		return math.Inf(1)
	}
	var inv mat.Dense
	if err := inv.Inverse(cov); err != nil {
		return math.Inf(1)
	}
	meanX, meanY := g.Mean()
	dx, dy := x-meanX, y-meanY
	quad := dx*(inv.At(0, 0)*dx+inv.At(0, 1)*dy) + dy*(inv.At(1, 0)*dx+inv.At(1, 1)*dy)
	return 0.5*math.Log(det) + 0.5*quad
}

// DeepClone returns an independent copy.
func (g Gaussian2D) DeepClone() Gaussian2D {
	return g
}

// Gaussian2DCodec serializes every field as a little-endian float64 (N
// included, widened from uint32 for a uniform fixed-width record).
var Gaussian2DCodec = AggregatorCodec[Gaussian2D]{
	Encode: func(g Gaussian2D, w io.Writer) error {
		fields := []float64{
			float64(g.N), g.SumX, g.SumY, g.SumXX, g.SumYY, g.SumXY, g.PriorA, g.PriorB,
		}
		return binary.Write(w, binary.LittleEndian, fields)
	},
	Decode: func(r io.Reader) (Gaussian2D, error) {
		fields := make([]float64, 8)
		if err := binary.Read(r, binary.LittleEndian, fields); err != nil {
			return Gaussian2D{}, err
		}
		return Gaussian2D{
			N:      uint32(fields[0]),
			SumX:   fields[1],
			SumY:   fields[2],
			SumXX:  fields[3],
			SumYY:  fields[4],
			SumXY:  fields[5],
			PriorA: fields[6],
			PriorB: fields[7],
		}, nil
	},
}
