package ch

import "errors"

var (
	// ErrInvalidOrder is returned by PrepareWithOrder when the supplied
	// order is not a permutation of 0..NumNodes-1.
	ErrInvalidOrder = errors.New("ch: order is not a permutation of the graph's nodes")

	// ErrGraphSizeOverflow is returned by the 32-bit-width serializer when
	// an edge count or rank count does not fit in its 32-bit length prefix.
	// NodeID and Weight are uint32 already and are never checked.
	ErrGraphSizeOverflow = errors.New("ch: graph value does not fit in the 32-bit serialized width")

	// ErrNodeOutOfRange is returned by query entry points when a node id
	// is not in 0..NumNodes-1 for the graph being queried.
	ErrNodeOutOfRange = errors.New("ch: node id out of range for this graph")
)
