package datasets

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Density is an in-memory DataPointCollection for 2-D density
// estimation: unlabelled (x, y) points. Implements
// sherwood.CoordinateProvider structurally.
type Density struct {
	Features *mat.Dense
}

// LoadDensityNpy loads a 2-column feature matrix from an .npy file.
func LoadDensityNpy(featuresPath string) (*Density, error) {
	features, err := loadNpy(featuresPath)
	if err != nil {
		return nil, err
	}
	return &Density{Features: features}, nil
}

// SyntheticDensity generates n points scattered across numBlobs
// Gaussian clusters arranged on a ring, the same shape of data the
// original Sherwood demo's density-estimation example plots (several
// separated 2-D blobs the forest has to carve into leaves).
func SyntheticDensity(seed int64, n, numBlobs int) *Density {
	r := rand.New(rand.NewSource(seed))
	features := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		blob := i % numBlobs
		angle := 2 * math.Pi * float64(blob) / float64(numBlobs)
		cx, cy := 8*math.Cos(angle), 8*math.Sin(angle)
		features.Set(i, 0, cx+r.NormFloat64())
		features.Set(i, 1, cy+r.NormFloat64())
	}
	return &Density{Features: features}
}

func (d *Density) Count() int {
	h, _ := d.Features.Dims()
	return h
}

func (d *Density) Dimensions() int {
	_, w := d.Features.Dims()
	return w
}

func (d *Density) GetCoordinate(sampleIndex, axis int) float32 {
	return float32(d.Features.At(sampleIndex, axis))
}
