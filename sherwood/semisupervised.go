package sherwood

import "io"

// SemiSupervised is the composite aggregator for semi-supervised
// classification (spec §4.3): a Histogram over labelled samples side by
// side with a Gaussian2D fit over every sample, labelled or not.
// AggregateOne always folds into Unlabelled; it folds into Labelled only
// when the sample carries a label, which Histogram.AggregateOne already
// enforces by ignoring label -1.
type SemiSupervised struct {
	Labelled   Histogram
	Unlabelled Gaussian2D
}

// NewSemiSupervised creates an empty composite aggregator.
func NewSemiSupervised(numClasses int, priorA, priorB float64) SemiSupervised {
	return SemiSupervised{
		Labelled:   NewHistogram(numClasses),
		Unlabelled: NewGaussian2D(priorA, priorB),
	}
}

// Clear resets both sub-aggregators.
func (s *SemiSupervised) Clear() {
	s.Labelled.Clear()
	s.Unlabelled.Clear()
}

// AggregateOne folds the sample into Unlabelled unconditionally and into
// Labelled only if it carries a label.
func (s *SemiSupervised) AggregateOne(data DataPointCollection, sampleIndex int) {
	s.Unlabelled.AggregateOne(data, sampleIndex)
	s.Labelled.AggregateOne(data, sampleIndex)
}

// Aggregate merges another composite's sub-aggregators into this one.
func (s *SemiSupervised) Aggregate(other SemiSupervised) {
	s.Labelled.Aggregate(other.Labelled)
	s.Unlabelled.Aggregate(other.Unlabelled)
}

// SampleCount returns the total number of samples seen (labelled and
// unlabelled), i.e. Unlabelled's count, since every sample folds into it.
func (s SemiSupervised) SampleCount() uint32 {
	return s.Unlabelled.SampleCount()
}

// EntropyLike combines both sub-aggregators' impurity scores. It is not
// consulted by SemiSupervisedContext.InformationGain, which instead
// reads Labelled and Unlabelled individually to apply the fixed weight
// alpha (spec §4.4); this method exists so SemiSupervised satisfies
// Aggregator on its own.
func (s SemiSupervised) EntropyLike() float64 {
	return s.Labelled.EntropyLike() + s.Unlabelled.EntropyLike()
}

// DeepClone returns an independent copy.
func (s SemiSupervised) DeepClone() SemiSupervised {
	return SemiSupervised{Labelled: s.Labelled.DeepClone(), Unlabelled: s.Unlabelled.DeepClone()}
}

// SemiSupervisedCodec serializes the Histogram sub-aggregator followed
// by the Gaussian2D sub-aggregator, each via its own codec.
var SemiSupervisedCodec = AggregatorCodec[SemiSupervised]{
	Encode: func(s SemiSupervised, w io.Writer) error {
		if err := HistogramCodec.Encode(s.Labelled, w); err != nil {
			return err
		}
		return Gaussian2DCodec.Encode(s.Unlabelled, w)
	},
	Decode: func(r io.Reader) (SemiSupervised, error) {
		labelled, err := HistogramCodec.Decode(r)
		if err != nil {
			return SemiSupervised{}, err
		}
		unlabelled, err := Gaussian2DCodec.Decode(r)
		if err != nil {
			return SemiSupervised{}, err
		}
		return SemiSupervised{Labelled: labelled, Unlabelled: unlabelled}, nil
	},
}
