package sherwood

import (
	"math"
	"testing"

	"github.com/tarstars/sherwood/rng"
)

func TestGainFromEntropiesTrivialSplit(t *testing.T) {
	if got := gainFromEntropies(1, 0.5, 0.5, 0, 1); got != 0 {
		t.Fatalf("gainFromEntropies with total<=1 = %g, want 0", got)
	}
}

func TestGainFromEntropiesWeightedByCount(t *testing.T) {
	got := gainFromEntropies(1.0, 0.0, 0.0, 5, 5)
	if math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("gainFromEntropies with pure children = %g, want 1.0", got)
	}
}

func axisSampler(r *rng.Source) AxisAligned {
	return CreateRandomAxisAligned(r, 2)
}

func TestClassificationContextGainAndTerminate(t *testing.T) {
	c := ClassificationContext[AxisAligned]{Sampler: axisSampler, NumClasses: 2, MinSamplesLeaf: 2}

	parent := NewHistogram(2)
	parentData := &points{labels: []int{0, 0, 1, 1}}
	for i := range parentData.labels {
		parent.AggregateOne(parentData, i)
	}
	left := NewHistogram(2)
	leftData := &points{labels: []int{0, 0}}
	for i := range leftData.labels {
		left.AggregateOne(leftData, i)
	}
	right := NewHistogram(2)
	rightData := &points{labels: []int{1, 1}}
	for i := range rightData.labels {
		right.AggregateOne(rightData, i)
	}

	gain := c.InformationGain(parent, left, right)
	if gain <= 0 {
		t.Fatalf("InformationGain() for a perfectly separating split = %g, want > 0", gain)
	}
	if c.ShouldTerminate(parent, left, right, gain) {
		t.Fatalf("ShouldTerminate() = true when both children meet MinSamplesLeaf")
	}

	tooSmall := NewHistogram(2)
	tooSmall.AggregateOne(&points{labels: []int{0}}, 0)
	if !c.ShouldTerminate(parent, tooSmall, right, gain) {
		t.Fatalf("ShouldTerminate() = false when a child is below MinSamplesLeaf")
	}
}

func TestDensityContextEmptyStatsUsesPriors(t *testing.T) {
	c := DensityContext[AxisAligned]{Sampler: axisSampler, PriorA: 2.0, PriorB: 3.0}
	stats := c.EmptyStats()
	if stats.PriorA != 2.0 || stats.PriorB != 3.0 {
		t.Fatalf("EmptyStats() priors = (%g, %g), want (2.0, 3.0)", stats.PriorA, stats.PriorB)
	}
}

func TestRegressionContextGainImproves(t *testing.T) {
	c := RegressionContext[AxisAligned]{Sampler: axisSampler}

	parent := LinearFit1D{}
	parentData := &points{coords: [][]float32{{0}, {1}, {2}, {3}, {4}, {5}}, targets: []float32{0, 10, 0, 10, 0, 10}}
	for i := range parentData.coords {
		parent.AggregateOne(parentData, i)
	}
	// Each child needs at least three samples: LinearFit1D's EntropyLike
	// is +Inf below that, which would make the gain -Inf.
	left := LinearFit1D{}
	leftData := &points{coords: [][]float32{{0}, {2}, {4}}, targets: []float32{0, 0, 0}}
	for i := range leftData.coords {
		left.AggregateOne(leftData, i)
	}
	right := LinearFit1D{}
	rightData := &points{coords: [][]float32{{1}, {3}, {5}}, targets: []float32{10, 10, 10}}
	for i := range rightData.coords {
		right.AggregateOne(rightData, i)
	}

	gain := c.InformationGain(parent, left, right)
	if math.IsInf(gain, 0) || math.IsNaN(gain) {
		t.Fatalf("InformationGain() = %g, want a finite value", gain)
	}
}

func TestSemiSupervisedContextCombinesLabelledAndUnlabelledGain(t *testing.T) {
	c := SemiSupervisedContext[AxisAligned]{Sampler: axisSampler, NumClasses: 2, PriorA: 1, PriorB: 1, Alpha: 0.4}

	parent := NewSemiSupervised(2, 1, 1)
	parentData := &points{coords: [][]float32{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, labels: []int{0, 0, 1, 1}}
	for i := range parentData.coords {
		parent.AggregateOne(parentData, i)
	}
	left := NewSemiSupervised(2, 1, 1)
	leftData := &points{coords: [][]float32{{0, 0}, {1, 1}}, labels: []int{0, 0}}
	for i := range leftData.coords {
		left.AggregateOne(leftData, i)
	}
	right := NewSemiSupervised(2, 1, 1)
	rightData := &points{coords: [][]float32{{2, 2}, {3, 3}}, labels: []int{1, 1}}
	for i := range rightData.coords {
		right.AggregateOne(rightData, i)
	}

	labelledOnly := gainFromEntropies(
		parent.Labelled.EntropyLike(), left.Labelled.EntropyLike(), right.Labelled.EntropyLike(),
		left.Labelled.SampleCount(), right.Labelled.SampleCount(),
	)
	got := c.InformationGain(parent, left, right)
	if got < labelledOnly-1e-9 {
		t.Fatalf("InformationGain() = %g, want >= labelled-only gain %g (alpha term is additive)", got, labelledOnly)
	}
}
