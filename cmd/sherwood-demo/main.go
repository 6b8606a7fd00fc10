// Command sherwood-demo exercises every core task of the sherwood
// decision-forest engine end to end: classification, regression, density
// estimation, and semi-supervised classification. It mirrors
// extra_boost_main/main.go's dispatch-by-mode structure, but every mode
// here trains a synthetic in-memory dataset so the demo runs without any
// external file.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/tarstars/sherwood/cmd/sherwood-demo/datasets"
	"github.com/tarstars/sherwood/rng"
	"github.com/tarstars/sherwood/sherwood"
)

func classify(configPath string) {
	var cfg ClassifyConfig
	if err := decodeConfig(configPath, &cfg); err != nil {
		log.Fatal(err)
	}

	data := datasets.SyntheticClassification(cfg.Seed, cfg.NumClasses, cfg.NumPerClass, cfg.Dimensions)
	dim := cfg.Dimensions

	context := sherwood.ClassificationContext[sherwood.AxisAligned]{
		Sampler:    func(r *rng.Source) sherwood.AxisAligned { return sherwood.CreateRandomAxisAligned(r, dim) },
		NumClasses: cfg.NumClasses,
	}

	forest, err := sherwood.Train[sherwood.AxisAligned, sherwood.Histogram](cfg.Seed, cfg.Training, context, data)
	if err != nil {
		log.Fatal(err)
	}

	correct := 0
	for i := 0; i < data.Count(); i++ {
		votes := make([]int, cfg.NumClasses)
		for _, tree := range forest.Trees {
			leaf := tree.Descend(data, i)
			votes[tree.GetNode(leaf).Stats.Argmax()]++
		}
		predicted, best := 0, -1
		for class, v := range votes {
			if v > best {
				best, predicted = v, class
			}
		}
		if predicted == data.GetIntegerLabel(i) {
			correct++
		}
	}
	log.Printf("sherwood-demo classify: training accuracy %.2f%% (%d/%d)", 100*float64(correct)/float64(data.Count()), correct, data.Count())

	saveClassificationModel(cfg.ModelFileName, forest)
	renderFirstTree(cfg.RenderTreeDirectory, forest)
}

func regress(configPath string) {
	var cfg RegressConfig
	if err := decodeConfig(configPath, &cfg); err != nil {
		log.Fatal(err)
	}

	data := datasets.SyntheticRegression(cfg.Seed, cfg.NumSamples, cfg.Slope, cfg.Intercept, cfg.NoiseStdDev, cfg.Low, cfg.High)

	context := sherwood.RegressionContext[sherwood.AxisAligned]{
		Sampler: func(r *rng.Source) sherwood.AxisAligned { return sherwood.CreateRandomAxisAligned(r, 1) },
	}

	forest, err := sherwood.Train[sherwood.AxisAligned, sherwood.LinearFit1D](cfg.Seed, cfg.Training, context, data)
	if err != nil {
		log.Fatal(err)
	}

	var sse float64
	var scored int
	for i := 0; i < data.Count(); i++ {
		var sumMean float64
		var votes int
		for _, tree := range forest.Trees {
			leaf := tree.Descend(data, i)
			if mean, _, ok := tree.GetNode(leaf).Stats.PredictiveMeanVariance(float64(data.GetCoordinate(i, 0))); ok {
				sumMean += mean
				votes++
			}
		}
		if votes == 0 {
			continue
		}
		predicted := sumMean / float64(votes)
		d := predicted - float64(data.GetTarget(i))
		sse += d * d
		scored++
	}
	rmse := 0.0
	if scored > 0 {
		rmse = math.Sqrt(sse / float64(scored))
	}
	log.Printf("sherwood-demo regress: training RMSE %.4f over %d/%d scored samples", rmse, scored, data.Count())

	saveRegressionModel(cfg.ModelFileName, forest)
}

func density(configPath string) {
	var cfg DensityConfig
	if err := decodeConfig(configPath, &cfg); err != nil {
		log.Fatal(err)
	}

	data := datasets.SyntheticDensity(cfg.Seed, cfg.NumSamples, cfg.NumBlobs)

	context := sherwood.DensityContext[sherwood.AxisAligned]{
		Sampler: func(r *rng.Source) sherwood.AxisAligned { return sherwood.CreateRandomAxisAligned(r, 2) },
		PriorA:  cfg.PriorA,
		PriorB:  cfg.PriorB,
	}

	forest, err := sherwood.Train[sherwood.AxisAligned, sherwood.Gaussian2D](cfg.Seed, cfg.Training, context, data)
	if err != nil {
		log.Fatal(err)
	}

	leaves := forest.Apply(data, cfg.Training.Verbose)
	log.Printf("sherwood-demo density: trained %d trees, %d leaf assignments each", len(leaves), len(leaves[0]))

	saveDensityModel(cfg.ModelFileName, forest)
}

func semisupervised(configPath string) {
	var cfg SemiSupervisedConfig
	if err := decodeConfig(configPath, &cfg); err != nil {
		log.Fatal(err)
	}

	data := datasets.SyntheticSemiSupervised(cfg.Seed, cfg.NumClasses, cfg.NumPerClass, cfg.LabelledFraction)

	context := sherwood.SemiSupervisedContext[sherwood.Linear2D]{
		Sampler:    sherwood.CreateRandomLinear2D,
		NumClasses: cfg.NumClasses,
		PriorA:     cfg.PriorA,
		PriorB:     cfg.PriorB,
		Alpha:      cfg.Alpha,
	}

	forest, err := sherwood.Train[sherwood.Linear2D, sherwood.SemiSupervised](cfg.Seed, cfg.Training, context, data)
	if err != nil {
		log.Fatal(err)
	}

	datasets.PropagateSemiSupervisedLabels(forest)

	var unlabelledLeaves, totalLeaves int
	for _, tree := range forest.Trees {
		for i := 0; i < tree.NodeCount(); i++ {
			node := tree.GetNode(i)
			if node.Status != sherwood.Leaf {
				continue
			}
			totalLeaves++
			if node.Stats.Labelled.SampleCount() == 0 {
				unlabelledLeaves++
			}
		}
	}
	log.Printf("sherwood-demo semisupervised: %d/%d leaves still unlabelled after propagation", unlabelledLeaves, totalLeaves)

	saveSemiSupervisedModel(cfg.ModelFileName, forest)
}

func main() {
	runMode := flag.String("mode", "classify", "one of 'classify', 'regress', 'density', 'semisupervised'")
	config := flag.String("config", "sherwood_config.json", "a JSON config file for the selected mode")
	flag.Parse()

	modes := map[string]func(string){
		"classify":       classify,
		"regress":        regress,
		"density":        density,
		"semisupervised": semisupervised,
	}

	run, ok := modes[*runMode]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *runMode)
		os.Exit(1)
	}
	run(*config)
}
