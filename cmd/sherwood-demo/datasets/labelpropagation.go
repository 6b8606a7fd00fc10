package datasets

import (
	"math"

	"github.com/tarstars/sherwood/sherwood"
)

// floydWarshall computes all-pairs shortest paths over a dense
// symmetric distance matrix (distances[i][j], i,j in [0,n)), the same
// algorithm the original Sherwood demo's FloydWarshall.h uses over an
// inter-leaf distance graph. It mutates distances in place and returns
// it, rather than the C++ version's upper-triangular packed array,
// since n here is always small (one row per leaf in one tree).
func floydWarshall(distances [][]float64) [][]float64 {
	n := len(distances)
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if distances[i][k]+distances[k][j] < distances[i][j] {
					distances[i][j] = distances[i][k] + distances[k][j]
				}
			}
		}
	}
	return distances
}

// PropagateSemiSupervisedLabels implements the original Sherwood demo's
// post-training label transduction step for semi-supervised
// classification (spec.md §1 excludes it from the core engine; it
// operates here on the public Tree.Nodes/Node.Stats surface instead).
// For every tree in forest, every leaf whose Labelled sub-aggregator has
// sample_count==0 (an unlabelled leaf, per spec.md §8 scenario S6) has
// its Labelled histogram overwritten with that of its nearest labelled
// leaf, nearness measured as shortest path over a graph whose edge
// weight between two leaves is the worse of each leaf's Gaussian
// NegativeLogProbability evaluated at the other leaf's mean.
func PropagateSemiSupervisedLabels[F sherwood.Feature](forest *sherwood.Forest[F, sherwood.SemiSupervised]) {
	for _, tree := range forest.Trees {
		propagateOneTree(tree)
	}
}

func propagateOneTree[F sherwood.Feature](tree *sherwood.Tree[F, sherwood.SemiSupervised]) {
	var leafIndices, labelledLeaves, unlabelledLeaves []int
	for i := 0; i < tree.NodeCount(); i++ {
		node := tree.GetNode(i)
		if node.Status != sherwood.Leaf {
			continue
		}
		pos := len(leafIndices)
		leafIndices = append(leafIndices, i)
		if node.Stats.Labelled.SampleCount() == 0 {
			unlabelledLeaves = append(unlabelledLeaves, pos)
		} else {
			labelledLeaves = append(labelledLeaves, pos)
		}
	}
	if len(unlabelledLeaves) == 0 || len(labelledLeaves) == 0 {
		return
	}

	n := len(leafIndices)
	distances := make([][]float64, n)
	for i := range distances {
		distances[i] = make([]float64, n)
		for j := range distances[i] {
			if i == j {
				continue
			}
			distances[i][j] = math.Inf(1)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			gi := tree.GetNode(leafIndices[i]).Stats.Unlabelled
			gj := tree.GetNode(leafIndices[j]).Stats.Unlabelled
			meanXi, meanYi := gi.Mean()
			meanXj, meanYj := gj.Mean()
			d := math.Max(gi.NegativeLogProbability(meanXj, meanYj), gj.NegativeLogProbability(meanXi, meanYi))
			distances[i][j] = d
			distances[j][i] = d
		}
	}
	floydWarshall(distances)

	for _, u := range unlabelledLeaves {
		best := -1
		bestDistance := math.Inf(1)
		for _, l := range labelledLeaves {
			if distances[u][l] < bestDistance {
				bestDistance = distances[u][l]
				best = l
			}
		}
		if best < 0 {
			continue
		}
		unlabelledNode := tree.GetNode(leafIndices[u])
		unlabelledNode.Stats.Labelled = tree.GetNode(leafIndices[best]).Stats.Labelled.DeepClone()
		tree.Nodes[leafIndices[u]] = unlabelledNode
	}
}
