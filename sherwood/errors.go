package sherwood

import "github.com/pkg/errors"

// Contract and serialization errors surface to the caller (spec §7);
// numerical degeneracy is recovered silently inside the trainer instead
// of being reported here.
var (
	// ErrInvalidParameters is returned by Train when TrainingParameters
	// violate a basic contract (T=0, D<0, F_k=0 or L_k=0).
	ErrInvalidParameters = errors.New("sherwood: invalid training parameters")

	// ErrDataShapeMismatch is returned when a concrete Feature or
	// TrainingContext demands data a collection does not provide.
	ErrDataShapeMismatch = errors.New("sherwood: data point collection does not match feature/context requirements")

	// ErrUnsupportedFormat is returned by Deserialize on an unknown
	// header or version.
	ErrUnsupportedFormat = errors.New("sherwood: unsupported forest stream format")

	// ErrCorruptStream is returned by Deserialize on a short or
	// otherwise malformed stream.
	ErrCorruptStream = errors.New("sherwood: corrupt forest stream")

	// ErrCorruptTree marks an invariant violation: Descend reached a
	// Null node before reaching a Leaf. This is fatal and is raised via
	// panic, not returned, since it indicates a tree that was never
	// validly trained or deserialized (CheckValid should have caught it
	// first).
	ErrCorruptTree = errors.New("sherwood: corrupt tree, reached Null node before Leaf")
)

// HandleError panics if err is non-nil. It is used the way the teacher's
// ebl.HandleError is used, for conditions that a caller who built a
// valid Tree/Forest should never be able to trigger: the trainer's
// scratch-tensor reads and writes. Serialization and config decoding
// return their errors instead.
func HandleError(err error) {
	if err != nil {
		panic(err)
	}
}
