package sherwood

// TrainingParameters configures forest training (spec §6).
type TrainingParameters struct {
	// NumTrees is T, the number of trees in the forest.
	NumTrees int `json:"num_trees"`
	// MaxDecisionLevels is D, the maximum number of splitting levels
	// (root is level 0; see SPEC_FULL.md §5 for the depth convention).
	MaxDecisionLevels int `json:"max_decision_levels"`
	// NumCandidateFeatures is F_k, the number of candidate features
	// sampled per split.
	NumCandidateFeatures int `json:"num_candidate_features"`
	// NumCandidateThresholdsPerFeature is L_k, the number of candidate
	// thresholds sampled per feature per split.
	NumCandidateThresholdsPerFeature int `json:"num_candidate_thresholds_per_feature"`
	// Verbose enables progress logging during training and Apply.
	Verbose bool `json:"verbose"`
	// MaxWorkers bounds how many trees train concurrently. 0 (or
	// negative) is replaced by runtime.NumCPU() at Train time; the
	// worker count is further capped at NumTrees (spec §5, §8).
	MaxWorkers int `json:"max_workers"`
}

// Validate checks the basic training-parameter contract (spec §7): T=0,
// D<0, F_k=0, or L_k=0 are contract violations that fail fast.
func (p TrainingParameters) Validate() error {
	if p.NumTrees <= 0 {
		return ErrInvalidParameters
	}
	if p.MaxDecisionLevels < 0 {
		return ErrInvalidParameters
	}
	if p.NumCandidateFeatures <= 0 {
		return ErrInvalidParameters
	}
	if p.NumCandidateThresholdsPerFeature <= 0 {
		return ErrInvalidParameters
	}
	return nil
}
