package datasets

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/sherwood/rng"
	"github.com/tarstars/sherwood/sherwood"
)

// Classification is an in-memory DataPointCollection for supervised
// classification: a dense feature matrix plus one integer label per
// row. It implements sherwood.CoordinateProvider and
// sherwood.LabelProvider structurally.
type Classification struct {
	Features *mat.Dense
	Labels   []int
}

// LoadClassificationNpy loads a feature matrix and a 1-column label
// matrix from .npy files, mirroring ebl.ReadEMatrix's two-file load
// pattern but for a single feature matrix plus labels instead of
// inter/extra/target triples.
func LoadClassificationNpy(featuresPath, labelsPath string) (*Classification, error) {
	features, err := loadNpy(featuresPath)
	if err != nil {
		return nil, err
	}
	labelsMat, err := loadNpy(labelsPath)
	if err != nil {
		return nil, err
	}
	h, _ := labelsMat.Dims()
	labels := make([]int, h)
	for i := 0; i < h; i++ {
		labels[i] = int(labelsMat.At(i, 0))
	}
	return &Classification{Features: features, Labels: labels}, nil
}

// SyntheticClassification generates numClasses Gaussian blobs of
// numPerClass points each in dim dimensions, spread around a ring in
// two "informative" dimensions so the classes are linearly separable
// by construction; any remaining dimensions are pure noise. When dim>2,
// the informative pair is chosen via sherwood.DistinctAxes rather than
// hard-coded to axes 0 and 1, so a trained forest genuinely has to find
// them among the noise dimensions.
func SyntheticClassification(seed int64, numClasses, numPerClass, dim int) *Classification {
	r := rand.New(rand.NewSource(seed))
	n := numClasses * numPerClass
	features := mat.NewDense(n, dim, nil)
	labels := make([]int, n)

	informative := sherwood.DistinctAxes(rng.New(seed), dim, 2)
	axisX := int(informative[0])
	axisY := axisX
	if len(informative) > 1 {
		axisY = int(informative[1])
	}

	row := 0
	for class := 0; class < numClasses; class++ {
		angle := 2 * math.Pi * float64(class) / float64(numClasses)
		centerX, centerY := 8*math.Cos(angle), 8*math.Sin(angle)
		for i := 0; i < numPerClass; i++ {
			for d := 0; d < dim; d++ {
				features.Set(row, d, r.NormFloat64())
			}
			features.Set(row, axisX, centerX+r.NormFloat64())
			if axisY != axisX {
				features.Set(row, axisY, centerY+r.NormFloat64())
			}
			labels[row] = class
			row++
		}
	}
	return &Classification{Features: features, Labels: labels}
}

func (c *Classification) Count() int {
	h, _ := c.Features.Dims()
	return h
}

func (c *Classification) Dimensions() int {
	_, w := c.Features.Dims()
	return w
}

func (c *Classification) GetCoordinate(sampleIndex, axis int) float32 {
	return float32(c.Features.At(sampleIndex, axis))
}

func (c *Classification) GetIntegerLabel(sampleIndex int) int {
	return c.Labels[sampleIndex]
}
