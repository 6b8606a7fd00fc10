package datasets

import (
	"math/rand"
)

// Regression is an in-memory DataPointCollection for 1-D regression: a
// single predictor column plus a target value per row. Implements
// sherwood.CoordinateProvider and sherwood.TargetProvider structurally.
type Regression struct {
	X []float64
	Y []float64
}

// LoadRegressionNpy loads a single predictor column and a target column
// from .npy files.
func LoadRegressionNpy(xPath, yPath string) (*Regression, error) {
	xMat, err := loadNpy(xPath)
	if err != nil {
		return nil, err
	}
	yMat, err := loadNpy(yPath)
	if err != nil {
		return nil, err
	}
	h, _ := xMat.Dims()
	x := make([]float64, h)
	y := make([]float64, h)
	for i := 0; i < h; i++ {
		x[i] = xMat.At(i, 0)
		y[i] = yMat.At(i, 0)
	}
	return &Regression{X: x, Y: y}, nil
}

// SyntheticRegression generates n points of y = slope*x + intercept +
// gaussian noise, x drawn uniformly from [low, high].
func SyntheticRegression(seed int64, n int, slope, intercept, noiseStdDev, low, high float64) *Regression {
	r := rand.New(rand.NewSource(seed))
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		xi := low + r.Float64()*(high-low)
		x[i] = xi
		y[i] = slope*xi + intercept + r.NormFloat64()*noiseStdDev
	}
	return &Regression{X: x, Y: y}
}

func (d *Regression) Count() int {
	return len(d.X)
}

func (d *Regression) Dimensions() int {
	return 1
}

func (d *Regression) GetCoordinate(sampleIndex, axis int) float32 {
	return float32(d.X[sampleIndex])
}

func (d *Regression) GetTarget(sampleIndex int) float32 {
	return float32(d.Y[sampleIndex])
}
