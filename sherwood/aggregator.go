package sherwood

import "io"

// Aggregator accumulates a summary over a subset of samples. S is the
// concrete aggregator type itself (an F-bounded constraint), so Aggregate
// and DeepClone can be expressed without boxing through an interface{}.
// Every operation here is total: none of Clear, AggregateOne, Aggregate,
// SampleCount, EntropyLike, DeepClone can fail (numeric degeneracy is
// represented in-band, e.g. EntropyLike returning +Inf, per spec §4.3).
type Aggregator[S any] interface {
	// Clear resets the aggregator to the empty state.
	Clear()
	// AggregateOne folds one sample into the aggregator.
	AggregateOne(data DataPointCollection, sampleIndex int)
	// Aggregate merges another aggregator of the same type into this one.
	Aggregate(other S)
	// SampleCount returns the number of samples folded in so far.
	SampleCount() uint32
	// EntropyLike returns an impurity score; higher means more impure.
	// It need not be Shannon entropy, but must compose additively with
	// the information-gain formula in spec §4.4.
	EntropyLike() float64
	// DeepClone returns an independent copy.
	DeepClone() S
}

// AggregatorCodec bundles the serialization pair for a concrete
// Aggregator type S. Unlike Feature, most aggregators are not
// fixed-width PODs (Histogram's bin count is a runtime parameter), so
// the codec writes/reads whatever representation the concrete type
// needs; callers must use the same codec for every tree/forest built
// with a given S.
type AggregatorCodec[S Aggregator[S]] struct {
	Encode func(s S, w io.Writer) error
	Decode func(r io.Reader) (S, error)
}
