package main

import (
	"encoding/json"
	"os"

	"github.com/tarstars/sherwood/sherwood"
)

// decodeConfig reads and JSON-decodes srcConfig into out, mirroring
// extra_boost_main/main.go's decodeConfig helper.
func decodeConfig(srcConfig string, out interface{}) error {
	file, err := os.Open(srcConfig)
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewDecoder(file).Decode(out)
}

// ClassifyConfig configures the classify mode: a synthetic multi-class
// dataset plus the training parameters to grow a classification forest.
type ClassifyConfig struct {
	Seed                int64                       `json:"seed"`
	NumClasses          int                         `json:"num_classes"`
	NumPerClass         int                         `json:"num_per_class"`
	Dimensions          int                         `json:"dimensions"`
	Training            sherwood.TrainingParameters `json:"training"`
	ModelFileName       string                      `json:"filename_model"`
	RenderTreeDirectory string                      `json:"render_tree_directory"`
}

// RegressConfig configures the regress mode: a synthetic linear dataset
// plus noise and training parameters.
type RegressConfig struct {
	Seed          int64                       `json:"seed"`
	NumSamples    int                         `json:"num_samples"`
	Slope         float64                     `json:"slope"`
	Intercept     float64                     `json:"intercept"`
	NoiseStdDev   float64                     `json:"noise_std_dev"`
	Low           float64                     `json:"low"`
	High          float64                     `json:"high"`
	Training      sherwood.TrainingParameters `json:"training"`
	ModelFileName string                      `json:"filename_model"`
}

// DensityConfig configures the density mode: synthetic 2-D blobs plus
// training parameters and the Gaussian prior hyperparameters.
type DensityConfig struct {
	Seed          int64                       `json:"seed"`
	NumSamples    int                         `json:"num_samples"`
	NumBlobs      int                         `json:"num_blobs"`
	PriorA        float64                     `json:"prior_a"`
	PriorB        float64                     `json:"prior_b"`
	Training      sherwood.TrainingParameters `json:"training"`
	ModelFileName string                      `json:"filename_model"`
}

// SemiSupervisedConfig configures the semisupervised mode.
type SemiSupervisedConfig struct {
	Seed             int64                       `json:"seed"`
	NumClasses       int                         `json:"num_classes"`
	NumPerClass      int                         `json:"num_per_class"`
	LabelledFraction float64                     `json:"labelled_fraction"`
	PriorA           float64                     `json:"prior_a"`
	PriorB           float64                     `json:"prior_b"`
	Alpha            float64                     `json:"alpha"`
	Training         sherwood.TrainingParameters `json:"training"`
	ModelFileName    string                      `json:"filename_model"`
}
