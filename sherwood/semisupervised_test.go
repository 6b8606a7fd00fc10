package sherwood

import (
	"bytes"
	"testing"
)

func TestSemiSupervisedUnlabelledSamplesSkipLabelled(t *testing.T) {
	s := NewSemiSupervised(2, 1.0, 1.0)
	data := &points{
		coords: [][]float32{{0, 0}, {1, 1}, {2, 2}},
		labels: []int{-1, -1, 0},
	}
	for i := range data.coords {
		s.AggregateOne(data, i)
	}

	if got, want := s.SampleCount(), uint32(3); got != want {
		t.Fatalf("SampleCount() = %d, want %d", got, want)
	}
	if got, want := s.Labelled.SampleCount(), uint32(1); got != want {
		t.Fatalf("Labelled.SampleCount() = %d, want %d", got, want)
	}
	if got, want := s.Unlabelled.SampleCount(), uint32(3); got != want {
		t.Fatalf("Unlabelled.SampleCount() = %d, want %d", got, want)
	}
}

func TestSemiSupervisedAllUnlabelledLeavesLabelledEmpty(t *testing.T) {
	s := NewSemiSupervised(2, 1.0, 1.0)
	data := &points{
		coords: [][]float32{{0, 0}, {1, 1}},
		labels: []int{-1, -1},
	}
	for i := range data.coords {
		s.AggregateOne(data, i)
	}
	if got := s.Labelled.SampleCount(); got != 0 {
		t.Fatalf("Labelled.SampleCount() = %d, want 0 for an all-unlabelled leaf", got)
	}
	if got := s.Unlabelled.SampleCount(); got != 2 {
		t.Fatalf("Unlabelled.SampleCount() = %d, want 2", got)
	}
}

func TestSemiSupervisedAggregateMerges(t *testing.T) {
	a := NewSemiSupervised(2, 1.0, 1.0)
	b := NewSemiSupervised(2, 1.0, 1.0)
	dataA := &points{coords: [][]float32{{0, 0}}, labels: []int{0}}
	dataB := &points{coords: [][]float32{{1, 1}}, labels: []int{-1}}
	a.AggregateOne(dataA, 0)
	b.AggregateOne(dataB, 0)
	a.Aggregate(b)

	if got, want := a.SampleCount(), uint32(2); got != want {
		t.Fatalf("merged SampleCount() = %d, want %d", got, want)
	}
	if got, want := a.Labelled.SampleCount(), uint32(1); got != want {
		t.Fatalf("merged Labelled.SampleCount() = %d, want %d", got, want)
	}
}

func TestSemiSupervisedCodecRoundTrip(t *testing.T) {
	s := NewSemiSupervised(3, 0.5, 2.0)
	data := &points{
		coords: [][]float32{{0, 0}, {1, 2}, {2, 1}},
		labels: []int{-1, 1, 2},
	}
	for i := range data.coords {
		s.AggregateOne(data, i)
	}

	var buf bytes.Buffer
	if err := SemiSupervisedCodec.Encode(s, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := SemiSupervisedCodec.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.SampleCount() != s.SampleCount() || got.Labelled.SampleCount() != s.Labelled.SampleCount() {
		t.Fatalf("round trip = %+v, want %+v", got, s)
	}
	for i := range s.Labelled.Counts {
		if got.Labelled.Counts[i] != s.Labelled.Counts[i] {
			t.Fatalf("Labelled bin %d round trip = %d, want %d", i, got.Labelled.Counts[i], s.Labelled.Counts[i])
		}
	}
}
