package datasets

import (
	"math"
	"math/rand"
)

// SemiSupervised is an in-memory DataPointCollection for semi-supervised
// classification: 2-D points where only a fraction carry a label, the
// rest hold -1. Implements sherwood.CoordinateProvider and
// sherwood.LabelProvider structurally.
type SemiSupervised struct {
	X, Y   []float64
	Labels []int
}

// SyntheticSemiSupervised generates numClasses 2-D Gaussian blobs
// arranged on a ring, labelling only labelledFraction of the points and
// leaving the rest at label -1, the same shape of experiment the
// original Sherwood semi-supervised demo runs (most points unlabelled,
// a few seed points per class).
func SyntheticSemiSupervised(seed int64, numClasses, numPerClass int, labelledFraction float64) *SemiSupervised {
	r := rand.New(rand.NewSource(seed))
	n := numClasses * numPerClass
	data := &SemiSupervised{X: make([]float64, n), Y: make([]float64, n), Labels: make([]int, n)}

	row := 0
	for class := 0; class < numClasses; class++ {
		angle := 2 * math.Pi * float64(class) / float64(numClasses)
		cx, cy := 8*math.Cos(angle), 8*math.Sin(angle)
		for i := 0; i < numPerClass; i++ {
			data.X[row] = cx + r.NormFloat64()
			data.Y[row] = cy + r.NormFloat64()
			if r.Float64() < labelledFraction {
				data.Labels[row] = class
			} else {
				data.Labels[row] = -1
			}
			row++
		}
	}
	return data
}

func (d *SemiSupervised) Count() int {
	return len(d.X)
}

func (d *SemiSupervised) Dimensions() int {
	return 2
}

func (d *SemiSupervised) GetCoordinate(sampleIndex, axis int) float32 {
	if axis == 0 {
		return float32(d.X[sampleIndex])
	}
	return float32(d.Y[sampleIndex])
}

func (d *SemiSupervised) GetIntegerLabel(sampleIndex int) int {
	return d.Labels[sampleIndex]
}
