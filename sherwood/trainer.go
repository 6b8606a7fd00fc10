package sherwood

import (
	"log"

	"github.com/tarstars/sherwood/rng"
	"gorgonia.org/tensor"
)

// bestSplit tracks the best (feature, threshold) candidate seen so far
// at one node, the same bookkeeping role the teacher's
// ebl.BestSplit/scanForSplitCluster plays for its own split search.
type bestSplit[F Feature, S Aggregator[S]] struct {
	valid     bool
	feature   F
	threshold float64
	left      S
	right     S
	gain      float64
}

// treeTrainer holds everything one tree's training pass needs: its own
// rng (spec §5's "per-tree trainer must own its rng"), the context, the
// read-only data collection, and the permutation slice this tree's
// recursion partitions in place.
type treeTrainer[F Feature, S Aggregator[S]] struct {
	rng         *rng.Source
	params      TrainingParameters
	context     TrainingContext[F, S]
	data        DataPointCollection
	permutation []int
	tree        *Tree[F, S]
}

// trainOneTree runs the full recursive procedure for one tree (spec
// §4.6): allocate, aggregate the root, recurse from (0, [0,N), depth 0).
func trainOneTree[F Feature, S Aggregator[S]](r *rng.Source, params TrainingParameters, context TrainingContext[F, S], data DataPointCollection) *Tree[F, S] {
	n := data.Count()
	permutation := make([]int, n)
	for i := range permutation {
		permutation[i] = i
	}

	t := &treeTrainer[F, S]{
		rng:         r,
		params:      params,
		context:     context,
		data:        data,
		permutation: permutation,
		tree:        NewTree[F, S](params.MaxDecisionLevels),
	}

	root := context.EmptyStats()
	for _, s := range permutation {
		root.AggregateOne(data, s)
	}

	t.buildNode(0, 0, n, 0, root)
	return t.tree
}

// buildNode implements one recursion step at node i over permutation
// range [i0, i1) at depth d, with parentStats already aggregated over
// that range (spec §4.6's per-node algorithm).
func (t *treeTrainer[F, S]) buildNode(nodeIndex, i0, i1, depth int, parentStats S) {
	if depth == t.params.MaxDecisionLevels || i1 == i0 {
		t.makeLeaf(nodeIndex, parentStats)
		return
	}

	best := t.searchBestSplit(i0, i1, parentStats)

	if !best.valid || best.gain <= 0 || t.context.ShouldTerminate(parentStats, best.left, best.right, best.gain) {
		t.makeLeaf(nodeIndex, parentStats)
		return
	}

	pivot := t.partition(i0, i1, best.feature, best.threshold)

	t.tree.Nodes[nodeIndex] = Node[F, S]{
		Status:    SplitCandidate,
		Feature:   best.feature,
		Threshold: best.threshold,
		Stats:     parentStats,
	}

	left, right := leftChild(nodeIndex), rightChild(nodeIndex)
	t.buildNode(left, i0, pivot, depth+1, best.left)
	t.buildNode(right, pivot, i1, depth+1, best.right)
}

func (t *treeTrainer[F, S]) makeLeaf(nodeIndex int, stats S) {
	t.tree.Nodes[nodeIndex] = Node[F, S]{Status: Leaf, Stats: stats}
}

// searchBestSplit samples F_k candidate features and, for each, L_k
// candidate thresholds, scoring every (feature, threshold) pair by
// information gain and keeping the best. Responses for the current
// feature over [i0, i1) are cached in a scratch tensor so they are
// computed once and reused across every sampled threshold of that
// feature, mirroring the teacher's ebl.allocateArrays/rawHessian
// scratch-buffer idiom (spec §4.6 complexity note).
func (t *treeTrainer[F, S]) searchBestSplit(i0, i1 int, parentStats S) bestSplit[F, S] {
	rangeLen := i1 - i0
	responses := tensor.New(tensor.WithShape(rangeLen), tensor.Of(tensor.Float64))

	var best bestSplit[F, S]

	for fk := 0; fk < t.params.NumCandidateFeatures; fk++ {
		feature := t.context.RandomFeature(t.rng)

		minR, maxR := responses64(t.data, feature, t.permutation, i0, i1, responses)
		if minR == maxR {
			continue
		}

		for lk := 0; lk < t.params.NumCandidateThresholdsPerFeature; lk++ {
			threshold := t.rng.NextRange(minR, maxR)

			left, right := t.context.EmptyStats(), t.context.EmptyStats()
			for k := 0; k < rangeLen; k++ {
				r, err := responses.At(k)
				HandleError(err)
				sampleIndex := t.permutation[i0+k]
				if r.(float64) < threshold {
					left.AggregateOne(t.data, sampleIndex)
				} else {
					right.AggregateOne(t.data, sampleIndex)
				}
			}

			gain := t.context.InformationGain(parentStats, left, right)
			if !best.valid || gain > best.gain {
				best = bestSplit[F, S]{valid: true, feature: feature, threshold: threshold, left: left, right: right, gain: gain}
			}
		}
	}

	return best
}

// responses64 fills the scratch tensor with feature.Response for every
// sample in permutation[i0:i1), and returns the min and max response
// seen.
func responses64[F Feature](data DataPointCollection, feature F, permutation []int, i0, i1 int, scratch *tensor.Dense) (minR, maxR float64) {
	first := true
	for k := i0; k < i1; k++ {
		r := feature.Response(data, permutation[k])
		HandleError(scratch.SetAt(r, k-i0))
		if first || r < minR {
			minR = r
		}
		if first || r > maxR {
			maxR = r
		}
		first = false
	}
	return
}

// partition reorders permutation[i0:i1) in place so that samples with
// response < threshold occupy [i0, pivot) and the rest occupy
// [pivot, i1), and returns pivot (spec §3, §4.6).
func (t *treeTrainer[F, S]) partition(i0, i1 int, feature F, threshold float64) int {
	left := i0
	for k := i0; k < i1; k++ {
		if feature.Response(t.data, t.permutation[k]) < threshold {
			t.permutation[left], t.permutation[k] = t.permutation[k], t.permutation[left]
			left++
		}
	}
	return left
}

// logProgress prints a one-line progress message when verbose.
func logProgress(verbose bool, format string, args ...interface{}) {
	if verbose {
		log.Printf(format, args...)
	}
}
