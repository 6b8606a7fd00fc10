package main

import (
	"log"
	"os"

	"github.com/goccy/go-graphviz"

	"github.com/tarstars/sherwood/internal/treeviz"
	"github.com/tarstars/sherwood/sherwood"
)

// saveClassificationModel writes forest to filename in the binary format
// from spec §6, using the codec pair matching AxisAligned/Histogram. A
// blank filename means "skip", the same optional-output convention
// extra_boost_main/main.go uses for its own model file flags.
func saveClassificationModel(filename string, forest *sherwood.Forest[sherwood.AxisAligned, sherwood.Histogram]) {
	if filename == "" {
		return
	}
	writeForest(filename, forest, sherwood.AxisAlignedCodec, sherwood.HistogramCodec)
}

func saveRegressionModel(filename string, forest *sherwood.Forest[sherwood.AxisAligned, sherwood.LinearFit1D]) {
	if filename == "" {
		return
	}
	writeForest(filename, forest, sherwood.AxisAlignedCodec, sherwood.LinearFit1DCodec)
}

func saveDensityModel(filename string, forest *sherwood.Forest[sherwood.AxisAligned, sherwood.Gaussian2D]) {
	if filename == "" {
		return
	}
	writeForest(filename, forest, sherwood.AxisAlignedCodec, sherwood.Gaussian2DCodec)
}

func saveSemiSupervisedModel(filename string, forest *sherwood.Forest[sherwood.Linear2D, sherwood.SemiSupervised]) {
	if filename == "" {
		return
	}
	writeForest(filename, forest, sherwood.Linear2DCodec, sherwood.SemiSupervisedCodec)
}

func writeForest[F sherwood.Feature, S sherwood.Aggregator[S]](filename string, forest *sherwood.Forest[F, S], fc sherwood.FeatureCodec[F], ac sherwood.AggregatorCodec[S]) {
	file, err := os.Create(filename)
	if err != nil {
		log.Printf("sherwood-demo: could not create %s: %v", filename, err)
		return
	}
	defer file.Close()
	if err := forest.Serialize(file, fc, ac); err != nil {
		log.Printf("sherwood-demo: could not serialize forest to %s: %v", filename, err)
		return
	}
	log.Printf("sherwood-demo: wrote forest to %s", filename)
}

// renderFirstTree draws forest.Trees[0] to directory as an SVG, mirroring
// EBooster.RenderTrees's file-per-tree output but limited to the first
// tree since the demo is meant to give a quick visual sanity check, not a
// full forest dump. A blank directory means "skip".
func renderFirstTree(directory string, forest *sherwood.Forest[sherwood.AxisAligned, sherwood.Histogram]) {
	if directory == "" || len(forest.Trees) == 0 {
		return
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		log.Printf("sherwood-demo: could not create %s: %v", directory, err)
		return
	}
	if err := treeviz.RenderTreeToFile(forest.Trees[0], graphviz.SVG, directory, "tree_00"); err != nil {
		log.Printf("sherwood-demo: could not render tree: %v", err)
		return
	}
	log.Printf("sherwood-demo: rendered first tree under %s", directory)
}
