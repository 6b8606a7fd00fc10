package sherwood

import (
	"encoding/binary"
	"io"
	"math"
)

// Histogram is the classification aggregator (spec §4.3): a fixed
// number of class bins with counts n_k, total n = sum(n_k). K is a
// runtime parameter (spec §9 Open Question #3), not a compile-time
// constant, unlike the teacher's reference Sherwood which hard-codes
// K<=4.
type Histogram struct {
	Counts []uint32
}

// NewHistogram creates an empty histogram with numClasses bins.
func NewHistogram(numClasses int) Histogram {
	return Histogram{Counts: make([]uint32, numClasses)}
}

// NumClasses returns K, the number of bins.
func (h Histogram) NumClasses() int {
	return len(h.Counts)
}

// Clear resets every bin to zero.
func (h *Histogram) Clear() {
	for i := range h.Counts {
		h.Counts[i] = 0
	}
}

// AggregateOne increments the bin for the sample's label. Unlabelled
// samples (label -1) are not folded in, the convention spec §8 scenario
// S6 relies on to detect leaves with no labelled samples yet.
func (h *Histogram) AggregateOne(data DataPointCollection, sampleIndex int) {
	lp, ok := data.(LabelProvider)
	if !ok {
		panic(ErrDataShapeMismatch)
	}
	label := lp.GetIntegerLabel(sampleIndex)
	if label < 0 {
		return
	}
	if label >= len(h.Counts) {
		panic(ErrDataShapeMismatch)
	}
	h.Counts[label]++
}

// Aggregate merges another histogram's counts into this one. Both
// histograms must have the same number of bins.
func (h *Histogram) Aggregate(other Histogram) {
	for i, c := range other.Counts {
		h.Counts[i] += c
	}
}

// SampleCount returns n = sum(n_k).
func (h Histogram) SampleCount() uint32 {
	var n uint32
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// GetProbability returns c_k / n for bin k, or 0 when the histogram is
// empty.
func (h Histogram) GetProbability(k int) float64 {
	n := h.SampleCount()
	if n == 0 {
		return 0
	}
	return float64(h.Counts[k]) / float64(n)
}

// Argmax returns the bin with the highest count (first-seen on ties).
func (h Histogram) Argmax() int {
	best, bestCount := 0, -1
	for k, c := range h.Counts {
		if int(c) > bestCount {
			best, bestCount = k, int(c)
		}
	}
	return best
}

// EntropyLike computes Shannon entropy in bits, with the convention
// 0*log(0) = 0 and an empty histogram scoring 0 (spec §4.3).
func (h Histogram) EntropyLike() float64 {
	n := h.SampleCount()
	if n == 0 {
		return 0
	}
	entropy := 0.0
	total := float64(n)
	for _, c := range h.Counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// DeepClone returns an independent copy.
func (h Histogram) DeepClone() Histogram {
	counts := make([]uint32, len(h.Counts))
	copy(counts, h.Counts)
	return Histogram{Counts: counts}
}

// HistogramCodec serializes a Histogram as a uint32 bin count followed
// by that many little-endian uint32 counts.
var HistogramCodec = AggregatorCodec[Histogram]{
	Encode: func(h Histogram, w io.Writer) error {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(h.Counts))); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, h.Counts)
	},
	Decode: func(r io.Reader) (Histogram, error) {
		var k uint32
		if err := binary.Read(r, binary.LittleEndian, &k); err != nil {
			return Histogram{}, err
		}
		h := NewHistogram(int(k))
		if err := binary.Read(r, binary.LittleEndian, h.Counts); err != nil {
			return Histogram{}, err
		}
		return h, nil
	},
}
