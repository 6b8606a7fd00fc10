package sherwood

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/tarstars/sherwood/rng"
)

// Forest owns an ordered collection of independently trained trees that
// all share the same Feature and Aggregator types (spec §3, §4.7).
type Forest[F Feature, S Aggregator[S]] struct {
	Trees []*Tree[F, S]
}

// AddTree validates tree with CheckValid and appends it. It panics (via
// ErrCorruptTree) if tree is not a structurally valid tree, since a
// Forest must never hold a tree Apply could get stuck on.
func (forest *Forest[F, S]) AddTree(tree *Tree[F, S]) {
	if !tree.CheckValid() {
		panic(ErrCorruptTree)
	}
	forest.Trees = append(forest.Trees, tree)
}

// splitmix64Seed derives a per-tree seed from a master seed and tree
// index with a fixed mix, so the set of per-tree seeds - and therefore
// every tree's training outcome - does not depend on worker scheduling
// (spec §5, §8's "fixed execution strategy" determinism requirement).
func splitmix64Seed(masterSeed int64, treeIndex int) int64 {
	const mix uint64 = 0x9E3779B97F4A7C15
	return masterSeed ^ int64(uint64(treeIndex)*mix)
}

// Train grows a forest of params.NumTrees trees over data under context,
// using masterSeed to derive one independent, deterministic rng per tree
// (spec §4.6, §5). Trees train concurrently across up to
// params.MaxWorkers goroutines (runtime.NumCPU() when MaxWorkers<=0);
// per-tree determinism does not depend on how those goroutines are
// scheduled.
func Train[F Feature, S Aggregator[S]](masterSeed int64, params TrainingParameters, context TrainingContext[F, S], data DataPointCollection) (*Forest[F, S], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	workers := params.MaxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > params.NumTrees {
		workers = params.NumTrees
	}

	trees := make([]*Tree[F, S], params.NumTrees)
	indices := make(chan int, params.NumTrees)
	for i := 0; i < params.NumTrees; i++ {
		indices <- i
	}
	close(indices)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for treeIndex := range indices {
				if err := trainOneTreeSafely(&trees[treeIndex], masterSeed, treeIndex, params, context, data); err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				if params.Verbose {
					log.Printf("sherwood: trained tree %d/%d", treeIndex+1, params.NumTrees)
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	forest := &Forest[F, S]{}
	for _, tree := range trees {
		forest.AddTree(tree)
	}
	return forest, nil
}

// trainOneTreeSafely runs trainOneTree for one tree behind a recover, so
// that a data-shape contract violation surfaces as an error from Train
// instead of crashing its worker goroutine (and the whole process): a
// Feature or Aggregator whose data does not satisfy the
// CoordinateProvider/LabelProvider/TargetProvider it needs panics with
// ErrDataShapeMismatch deep inside AggregateOne/Response (histogram.go,
// gaussian2d.go, linearfit.go, feature.go), and that is the one panic
// value this contract promises to turn back into an error. Any other
// recovered value is a genuine invariant violation and is re-raised.
func trainOneTreeSafely[F Feature, S Aggregator[S]](out **Tree[F, S], masterSeed int64, treeIndex int, params TrainingParameters, context TrainingContext[F, S], data DataPointCollection) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if r == ErrDataShapeMismatch {
				err = ErrDataShapeMismatch
				return
			}
			panic(r)
		}
	}()
	treeRNG := rng.New(splitmix64Seed(masterSeed, treeIndex))
	*out = trainOneTree(treeRNG, params, context, data)
	return nil
}

// Apply descends every sample in data through every tree, returning a
// T x N matrix of leaf indices in tree order, sample order (spec §4.7,
// §8: len(result)==T, len(result[t])==data.Count()).
func (forest *Forest[F, S]) Apply(data DataPointCollection, verbose bool) [][]int {
	result := make([][]int, len(forest.Trees))
	for i, tree := range forest.Trees {
		result[i] = tree.Apply(data)
		if verbose {
			log.Printf("sherwood: applied tree %d/%d", i+1, len(forest.Trees))
		}
	}
	return result
}

// String renders a short summary, useful for demo logging.
func (forest *Forest[F, S]) String() string {
	return fmt.Sprintf("Forest{trees=%d}", len(forest.Trees))
}
