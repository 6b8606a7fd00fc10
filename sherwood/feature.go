package sherwood

import (
	"encoding/binary"
	"io"
	"sort"

	"github.com/xtgo/set"

	"github.com/tarstars/sherwood/rng"
)

// Feature maps a (collection, sample index) pair to a real-valued scalar
// response. Implementations are closed, compile-time-selected value
// types; the trainer is written generically over Feature rather than
// dispatching through a per-sample interface table (spec §9).
type Feature interface {
	// Response computes the scalar used to route a sample left/right.
	Response(data DataPointCollection, sampleIndex int) float64
}

// FeatureCodec bundles the fixed-size serialization pair for a concrete
// Feature type F. Passing codecs explicitly (rather than requiring F to
// implement a decode-returning-F method, which Go's type system cannot
// express as an interface method) keeps Tree/Forest (de)serialization
// generic without reflection.
type FeatureCodec[F Feature] struct {
	Encode func(f F, w io.Writer) error
	Decode func(r io.Reader) (F, error)
}

// AxisAligned is the axis-aligned reference feature (spec §4.2): its
// response is simply the sample's coordinate on a fixed axis.
type AxisAligned struct {
	Axis int32
}

// Response returns the sample's coordinate on Axis.
func (f AxisAligned) Response(data DataPointCollection, sampleIndex int) float64 {
	cp, ok := data.(CoordinateProvider)
	if !ok {
		panic(ErrDataShapeMismatch)
	}
	return float64(cp.GetCoordinate(sampleIndex, int(f.Axis)))
}

// CreateRandomAxisAligned picks a uniform axis in [0, dim).
func CreateRandomAxisAligned(r *rng.Source, dim int) AxisAligned {
	return AxisAligned{Axis: int32(r.NextInt(0, dim))}
}

// AxisAlignedCodec is the fixed-size (4-byte) POD encoding for
// AxisAligned: a single little-endian int32.
var AxisAlignedCodec = FeatureCodec[AxisAligned]{
	Encode: func(f AxisAligned, w io.Writer) error {
		return binary.Write(w, binary.LittleEndian, f.Axis)
	},
	Decode: func(r io.Reader) (AxisAligned, error) {
		var f AxisAligned
		err := binary.Read(r, binary.LittleEndian, &f.Axis)
		return f, err
	},
}

// DistinctAxes draws up to count distinct axes in [0, dim), oversampling
// with replacement and then deduplicating via sort.Sort + set.Uniq - the
// same sort-then-dedup idiom the retrieved decision-tree feature
// selection code uses for its own candidate-term sampling. Best effort:
// if dim is small relative to count, fewer than count axes may come
// back. Useful to callers that want a non-repeating candidate axis set
// (e.g. a dataset generator picking which dimensions are informative)
// without threading dedup logic through the FeatureSampler hot path.
func DistinctAxes(r *rng.Source, dim, count int) []int32 {
	if count >= dim {
		axes := make([]int32, dim)
		for i := range axes {
			axes[i] = int32(i)
		}
		return axes
	}

	oversample := count * 3
	candidates := make(sort.IntSlice, oversample)
	for i := range candidates {
		candidates[i] = r.NextInt(0, dim)
	}
	sort.Sort(candidates)
	n := set.Uniq(candidates)
	candidates = candidates[:n]
	if len(candidates) > count {
		candidates = candidates[:count]
	}

	axes := make([]int32, len(candidates))
	for i, c := range candidates {
		axes[i] = int32(c)
	}
	return axes
}

// Linear2D is the 2-D linear reference feature (spec §4.2): its response
// is the dot product of (Dx, Dy) with the sample's first two coordinates.
type Linear2D struct {
	Dx, Dy float64
}

// Response returns Dx*x0 + Dy*x1.
func (f Linear2D) Response(data DataPointCollection, sampleIndex int) float64 {
	cp, ok := data.(CoordinateProvider)
	if !ok {
		panic(ErrDataShapeMismatch)
	}
	x0 := float64(cp.GetCoordinate(sampleIndex, 0))
	x1 := float64(cp.GetCoordinate(sampleIndex, 1))
	return f.Dx*x0 + f.Dy*x1
}

// CreateRandomLinear2D picks Dx, Dy uniformly in [-1, 1].
func CreateRandomLinear2D(r *rng.Source) Linear2D {
	return Linear2D{Dx: r.NextRange(-1, 1), Dy: r.NextRange(-1, 1)}
}

// Linear2DCodec is the fixed-size (16-byte) POD encoding for Linear2D:
// two little-endian float64s.
var Linear2DCodec = FeatureCodec[Linear2D]{
	Encode: func(f Linear2D, w io.Writer) error {
		if err := binary.Write(w, binary.LittleEndian, f.Dx); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, f.Dy)
	},
	Decode: func(r io.Reader) (Linear2D, error) {
		var f Linear2D
		if err := binary.Read(r, binary.LittleEndian, &f.Dx); err != nil {
			return f, err
		}
		err := binary.Read(r, binary.LittleEndian, &f.Dy)
		return f, err
	},
}
