package sherwood

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// forestHeader is the bit-exact ASCII header every serialized forest
// stream starts with (spec §6). It carries no NUL terminator; its
// length is implied by len(forestHeader).
const forestHeader = "MicrosoftResearch.Cambridge.Sherwood.Forest"

const (
	formatMajorVersion int32 = 0
	formatMinorVersion int32 = 0
)

// Serialize writes forest to w in the versioned binary format from
// spec §6: header, version, tree count, then each tree record in turn.
// fc encodes the fixed-size Feature records and ac the Aggregator
// records (whose size depends on the codec, e.g. Histogram's bin count);
// they must match the codecs used when the forest was built.
func (forest *Forest[F, S]) Serialize(w io.Writer, fc FeatureCodec[F], ac AggregatorCodec[S]) error {
	if _, err := io.WriteString(w, forestHeader); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, formatMajorVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, formatMinorVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(len(forest.Trees))); err != nil {
		return err
	}
	for _, tree := range forest.Trees {
		if err := tree.serialize(w, fc, ac); err != nil {
			return err
		}
	}
	return nil
}

// serialize writes one tree record: max_decision_levels, node_count,
// then every node in array order (status byte, optional feature blob +
// threshold, then the stats blob).
func (t *Tree[F, S]) serialize(w io.Writer, fc FeatureCodec[F], ac AggregatorCodec[S]) error {
	if err := binary.Write(w, binary.LittleEndian, int32(t.MaxDepth)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(len(t.Nodes))); err != nil {
		return err
	}
	for _, node := range t.Nodes {
		if err := binary.Write(w, binary.LittleEndian, byte(node.Status)); err != nil {
			return err
		}
		if node.Status == SplitCandidate {
			if err := fc.Encode(node.Feature, w); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, node.Threshold); err != nil {
				return err
			}
		}
		if err := ac.Encode(node.Stats, w); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeForest reads a forest previously written by Serialize,
// using fc and ac to decode the Feature and Aggregator records. It
// returns ErrUnsupportedFormat on an unrecognised header/version and
// ErrCorruptStream on a short or malformed stream.
func DeserializeForest[F Feature, S Aggregator[S]](r io.Reader, fc FeatureCodec[F], ac AggregatorCodec[S]) (*Forest[F, S], error) {
	header := make([]byte, len(forestHeader))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.Wrap(ErrCorruptStream, err.Error())
	}
	if !bytes.Equal(header, []byte(forestHeader)) {
		return nil, ErrUnsupportedFormat
	}

	var major, minor int32
	if err := binary.Read(r, binary.LittleEndian, &major); err != nil {
		return nil, errors.Wrap(ErrCorruptStream, err.Error())
	}
	if err := binary.Read(r, binary.LittleEndian, &minor); err != nil {
		return nil, errors.Wrap(ErrCorruptStream, err.Error())
	}
	if major != formatMajorVersion || minor != formatMinorVersion {
		return nil, ErrUnsupportedFormat
	}

	var treeCount int32
	if err := binary.Read(r, binary.LittleEndian, &treeCount); err != nil {
		return nil, errors.Wrap(ErrCorruptStream, err.Error())
	}

	forest := &Forest[F, S]{Trees: make([]*Tree[F, S], 0, treeCount)}
	for i := int32(0); i < treeCount; i++ {
		tree, err := deserializeTree[F, S](r, fc, ac)
		if err != nil {
			return nil, err
		}
		forest.Trees = append(forest.Trees, tree)
	}
	return forest, nil
}

func deserializeTree[F Feature, S Aggregator[S]](r io.Reader, fc FeatureCodec[F], ac AggregatorCodec[S]) (*Tree[F, S], error) {
	var maxDepth, nodeCount int32
	if err := binary.Read(r, binary.LittleEndian, &maxDepth); err != nil {
		return nil, errors.Wrap(ErrCorruptStream, err.Error())
	}
	if err := binary.Read(r, binary.LittleEndian, &nodeCount); err != nil {
		return nil, errors.Wrap(ErrCorruptStream, err.Error())
	}

	tree := &Tree[F, S]{MaxDepth: int(maxDepth), Nodes: make([]Node[F, S], nodeCount)}
	for i := int32(0); i < nodeCount; i++ {
		var statusByte byte
		if err := binary.Read(r, binary.LittleEndian, &statusByte); err != nil {
			return nil, errors.Wrap(ErrCorruptStream, err.Error())
		}
		status := NodeStatus(statusByte)
		node := Node[F, S]{Status: status}

		if status == SplitCandidate {
			feature, err := fc.Decode(r)
			if err != nil {
				return nil, errors.Wrap(ErrCorruptStream, err.Error())
			}
			node.Feature = feature
			if err := binary.Read(r, binary.LittleEndian, &node.Threshold); err != nil {
				return nil, errors.Wrap(ErrCorruptStream, err.Error())
			}
		}

		stats, err := ac.Decode(r)
		if err != nil {
			return nil, errors.Wrap(ErrCorruptStream, err.Error())
		}
		node.Stats = stats

		tree.Nodes[i] = node
	}
	return tree, nil
}
