package sherwood

import (
	"reflect"
	"testing"

	"github.com/tarstars/sherwood/rng"
)

func twoClusterClassificationData() *points {
	coords := make([][]float32, 0, 40)
	labels := make([]int, 0, 40)
	for i := 0; i < 20; i++ {
		coords = append(coords, []float32{float32(-10 - i)})
		labels = append(labels, 0)
	}
	for i := 0; i < 20; i++ {
		coords = append(coords, []float32{float32(10 + i)})
		labels = append(labels, 1)
	}
	return &points{coords: coords, labels: labels}
}

func TestTrainOneTreeSeparatesTwoClusters(t *testing.T) {
	data := twoClusterClassificationData()
	params := TrainingParameters{NumTrees: 1, MaxDecisionLevels: 3, NumCandidateFeatures: 4, NumCandidateThresholdsPerFeature: 8}
	context := ClassificationContext[AxisAligned]{Sampler: axisSampler1D, NumClasses: 2}

	r := rng.New(42)
	tree := trainOneTree[AxisAligned, Histogram](r, params, context, data)

	if tree.GetNode(0).Status != SplitCandidate {
		t.Fatalf("root status = %v, want SplitCandidate for a separable dataset", tree.GetNode(0).Status)
	}

	for i := 0; i < data.Count(); i++ {
		leaf := tree.Descend(data, i)
		node := tree.GetNode(leaf)
		if node.Status != Leaf {
			t.Fatalf("Descend(%d) landed on non-leaf node %d", i, leaf)
		}
		want := data.GetIntegerLabel(i)
		if got := node.Stats.Argmax(); got != want {
			t.Fatalf("sample %d: leaf argmax = %d, want %d", i, got, want)
		}
	}
}

func axisSampler1D(r *rng.Source) AxisAligned {
	return CreateRandomAxisAligned(r, 1)
}

func axisSampler2D(r *rng.Source) AxisAligned {
	return CreateRandomAxisAligned(r, 2)
}

func triangleClassificationData() *points {
	coords := [][]float32{
		{0, 0}, {0.1, 0.1}, {-0.1, 0.1}, {0.1, -0.1},
		{10, 0}, {10.1, 0.1}, {9.9, 0.1}, {10.1, -0.1},
		{5, 10}, {5.1, 10.1}, {4.9, 10.1}, {5.1, 9.9},
	}
	labels := []int{0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2}
	return &points{coords: coords, labels: labels}
}

func TestTrainOneTreeAchievesPerfectTrainingAccuracyOnTriangle(t *testing.T) {
	data := triangleClassificationData()
	params := TrainingParameters{NumTrees: 1, MaxDecisionLevels: 6, NumCandidateFeatures: 8, NumCandidateThresholdsPerFeature: 16}
	context := ClassificationContext[AxisAligned]{Sampler: axisSampler2D, NumClasses: 3}

	r := rng.New(7)
	tree := trainOneTree[AxisAligned, Histogram](r, params, context, data)

	for i := 0; i < data.Count(); i++ {
		leaf := tree.Descend(data, i)
		got := tree.GetNode(leaf).Stats.Argmax()
		want := data.GetIntegerLabel(i)
		if got != want {
			t.Fatalf("sample %d: predicted class %d, want %d", i, got, want)
		}
	}
}

func TestTrainOneTreeSampleCountAdditivity(t *testing.T) {
	data := twoClusterClassificationData()
	params := TrainingParameters{NumTrees: 1, MaxDecisionLevels: 3, NumCandidateFeatures: 4, NumCandidateThresholdsPerFeature: 8}
	context := ClassificationContext[AxisAligned]{Sampler: axisSampler1D, NumClasses: 2}

	r := rng.New(1)
	tree := trainOneTree[AxisAligned, Histogram](r, params, context, data)

	root := tree.GetNode(0)
	if root.Status != SplitCandidate {
		t.Fatalf("root status = %v, want SplitCandidate", root.Status)
	}
	left := tree.GetNode(leftChild(0))
	right := tree.GetNode(rightChild(0))

	var leftCount, rightCount uint32
	switch left.Status {
	case Leaf:
		leftCount = left.Stats.SampleCount()
	case SplitCandidate:
		leftCount = left.Stats.SampleCount()
	}
	switch right.Status {
	case Leaf:
		rightCount = right.Stats.SampleCount()
	case SplitCandidate:
		rightCount = right.Stats.SampleCount()
	}

	if got, want := leftCount+rightCount, uint32(data.Count()); got != want {
		t.Fatalf("left+right sample count = %d, want %d", got, want)
	}
}

func TestTrainOneTreeMembershipMatchesThreshold(t *testing.T) {
	data := twoClusterClassificationData()
	params := TrainingParameters{NumTrees: 1, MaxDecisionLevels: 1, NumCandidateFeatures: 4, NumCandidateThresholdsPerFeature: 8}
	context := ClassificationContext[AxisAligned]{Sampler: axisSampler1D, NumClasses: 2}

	r := rng.New(3)
	tree := trainOneTree[AxisAligned, Histogram](r, params, context, data)
	root := tree.GetNode(0)
	if root.Status != SplitCandidate {
		t.Fatalf("root status = %v, want SplitCandidate", root.Status)
	}

	for i := 0; i < data.Count(); i++ {
		response := root.Feature.Response(data, i)
		wantLeft := response < root.Threshold
		leaf := tree.Descend(data, i)
		gotLeft := leaf == leftChild(0)
		if gotLeft != wantLeft {
			t.Fatalf("sample %d: response %g vs threshold %g disagrees with descend side", i, response, root.Threshold)
		}
	}
}

func TestTrainOneTreeDeterministicUnderFixedSeed(t *testing.T) {
	data := twoClusterClassificationData()
	params := TrainingParameters{NumTrees: 1, MaxDecisionLevels: 3, NumCandidateFeatures: 4, NumCandidateThresholdsPerFeature: 8}
	context := ClassificationContext[AxisAligned]{Sampler: axisSampler1D, NumClasses: 2}

	treeA := trainOneTree[AxisAligned, Histogram](rng.New(99), params, context, data)
	treeB := trainOneTree[AxisAligned, Histogram](rng.New(99), params, context, data)

	if !reflect.DeepEqual(treeA.Nodes, treeB.Nodes) {
		t.Fatalf("two trainOneTree runs with the same seed produced different trees")
	}
}
