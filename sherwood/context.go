package sherwood

import "github.com/tarstars/sherwood/rng"

// TrainingContext is task-specific policy (spec §4.4): how to sample a
// random candidate feature, how to create an empty aggregator, how to
// turn parent/left/right aggregators into an information-gain score, and
// when to stop splitting even though a candidate improved the gain.
type TrainingContext[F Feature, S Aggregator[S]] interface {
	RandomFeature(r *rng.Source) F
	EmptyStats() S
	InformationGain(parent, left, right S) float64
	ShouldTerminate(parent, left, right S, gain float64) bool
}

// FeatureSampler draws one random candidate feature. Contexts take a
// sampler rather than hard-coding a feature constructor so the same
// context type works with any Feature implementation the caller wires
// in (CreateRandomLinear2D is a FeatureSampler[Linear2D] as it stands;
// CreateRandomAxisAligned becomes a FeatureSampler[AxisAligned] once its
// dim argument is bound in a closure).
type FeatureSampler[F Feature] func(r *rng.Source) F

// gainFromEntropies implements the classification/density gain formula
// shared by ClassificationContext and DensityContext (spec §4.4):
// parent.entropy - (nL*left.entropy + nR*right.entropy)/(nL+nR), or 0
// when nL+nR<=1.
func gainFromEntropies(parentEntropy, leftEntropy, rightEntropy float64, nL, nR uint32) float64 {
	total := nL + nR
	if total <= 1 {
		return 0
	}
	weighted := (float64(nL)*leftEntropy + float64(nR)*rightEntropy) / float64(total)
	return parentEntropy - weighted
}

// ClassificationContext is the TrainingContext for supervised
// classification: S = Histogram.
type ClassificationContext[F Feature] struct {
	Sampler        FeatureSampler[F]
	NumClasses     int
	MinSamplesLeaf int // 0 disables the early-termination check
}

func (c ClassificationContext[F]) RandomFeature(r *rng.Source) F {
	return c.Sampler(r)
}

func (c ClassificationContext[F]) EmptyStats() Histogram {
	return NewHistogram(c.NumClasses)
}

func (c ClassificationContext[F]) InformationGain(parent, left, right Histogram) float64 {
	return gainFromEntropies(parent.EntropyLike(), left.EntropyLike(), right.EntropyLike(), left.SampleCount(), right.SampleCount())
}

func (c ClassificationContext[F]) ShouldTerminate(parent, left, right Histogram, gain float64) bool {
	if c.MinSamplesLeaf > 0 && (int(left.SampleCount()) < c.MinSamplesLeaf || int(right.SampleCount()) < c.MinSamplesLeaf) {
		return true
	}
	return false
}

// DensityContext is the TrainingContext for density estimation: S =
// Gaussian2D.
type DensityContext[F Feature] struct {
	Sampler        FeatureSampler[F]
	PriorA, PriorB float64
	MinSamplesLeaf int
}

func (c DensityContext[F]) RandomFeature(r *rng.Source) F {
	return c.Sampler(r)
}

func (c DensityContext[F]) EmptyStats() Gaussian2D {
	return NewGaussian2D(c.PriorA, c.PriorB)
}

func (c DensityContext[F]) InformationGain(parent, left, right Gaussian2D) float64 {
	return gainFromEntropies(parent.EntropyLike(), left.EntropyLike(), right.EntropyLike(), left.SampleCount(), right.SampleCount())
}

func (c DensityContext[F]) ShouldTerminate(parent, left, right Gaussian2D, gain float64) bool {
	if c.MinSamplesLeaf > 0 && (int(left.SampleCount()) < c.MinSamplesLeaf || int(right.SampleCount()) < c.MinSamplesLeaf) {
		return true
	}
	return false
}

// RegressionContext is the TrainingContext for regression: S =
// LinearFit1D.
type RegressionContext[F Feature] struct {
	Sampler        FeatureSampler[F]
	MinSamplesLeaf int
}

func (c RegressionContext[F]) RandomFeature(r *rng.Source) F {
	return c.Sampler(r)
}

func (c RegressionContext[F]) EmptyStats() LinearFit1D {
	return LinearFit1D{}
}

func (c RegressionContext[F]) InformationGain(parent, left, right LinearFit1D) float64 {
	return gainFromEntropies(parent.EntropyLike(), left.EntropyLike(), right.EntropyLike(), left.SampleCount(), right.SampleCount())
}

func (c RegressionContext[F]) ShouldTerminate(parent, left, right LinearFit1D, gain float64) bool {
	if c.MinSamplesLeaf > 0 && (int(left.SampleCount()) < c.MinSamplesLeaf || int(right.SampleCount()) < c.MinSamplesLeaf) {
		return true
	}
	return false
}

// SemiSupervisedContext is the TrainingContext for semi-supervised
// classification: S = SemiSupervised. Information gain is the labelled
// (histogram) gain plus Alpha times the unlabelled (Gaussian) gain
// (spec §4.4), so labelled structure dominates but unlabelled geometry
// can still break ties or steer early splits when labels are sparse.
type SemiSupervisedContext[F Feature] struct {
	Sampler        FeatureSampler[F]
	NumClasses     int
	PriorA, PriorB float64
	Alpha          float64 // fixed unlabelled-term weight, spec's reference uses 0.4
	MinSamplesLeaf int
}

func (c SemiSupervisedContext[F]) RandomFeature(r *rng.Source) F {
	return c.Sampler(r)
}

func (c SemiSupervisedContext[F]) EmptyStats() SemiSupervised {
	return NewSemiSupervised(c.NumClasses, c.PriorA, c.PriorB)
}

func (c SemiSupervisedContext[F]) InformationGain(parent, left, right SemiSupervised) float64 {
	labelledGain := gainFromEntropies(
		parent.Labelled.EntropyLike(), left.Labelled.EntropyLike(), right.Labelled.EntropyLike(),
		left.Labelled.SampleCount(), right.Labelled.SampleCount(),
	)
	unlabelledGain := gainFromEntropies(
		parent.Unlabelled.EntropyLike(), left.Unlabelled.EntropyLike(), right.Unlabelled.EntropyLike(),
		left.Unlabelled.SampleCount(), right.Unlabelled.SampleCount(),
	)
	return labelledGain + c.Alpha*unlabelledGain
}

func (c SemiSupervisedContext[F]) ShouldTerminate(parent, left, right SemiSupervised, gain float64) bool {
	if c.MinSamplesLeaf > 0 && (int(left.SampleCount()) < c.MinSamplesLeaf || int(right.SampleCount()) < c.MinSamplesLeaf) {
		return true
	}
	return false
}
