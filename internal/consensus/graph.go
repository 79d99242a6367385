package consensus

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"GossipQuorum/internal/entropy"
)

// ErrInvalidGraph is returned for unusable graph parameters or matrices.
var ErrInvalidGraph = errors.New("invalid follow graph")

// FollowGraph is the directed trust relation of one simulation run.
// follows[i][j] is true iff i follows j, i.e. i receives what j broadcasts.
// It is immutable after construction and safe for concurrent readers.
type FollowGraph struct {
	follows   [][]bool
	followers [][]NodeID // followers[j] lists every i with follows[i][j]
	edges     int
}

// NewFollowGraph draws a random graph over n nodes where every ordered pair
// (i, j), i != j, is an edge with probability pGraph, independently.
// A nil src uses the process-level random source.
func NewFollowGraph(n int, pGraph float64, src rand.Source) (*FollowGraph, error) {
	if n <= 0 {
		return nil, fmt.Errorf("node count %d must be positive:\n%w", n, ErrInvalidGraph)
	}

	if math.IsNaN(pGraph) || pGraph < 0 || pGraph > 1 {
		return nil, fmt.Errorf("edge probability %v outside [0,1]:\n%w", pGraph, ErrInvalidGraph)
	}

	coin := entropy.NewCoin(pGraph, src)
	follows := make([][]bool, n)

	for i := range follows {
		follows[i] = make([]bool, n)

		for j := range follows[i] {
			if i == j {
				continue
			}

			follows[i][j] = coin.Flip()
		}
	}

	return newFollowGraph(follows), nil
}

// FollowGraphFromMatrix builds a graph from an explicit square matrix.
// The matrix is copied; self loops and ragged rows are rejected.
func FollowGraphFromMatrix(m [][]bool) (*FollowGraph, error) {
	n := len(m)
	if n == 0 {
		return nil, fmt.Errorf("empty matrix:\n%w", ErrInvalidGraph)
	}

	follows := make([][]bool, n)

	for i, row := range m {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d:\n%w", i, len(row), n, ErrInvalidGraph)
		}

		if row[i] {
			return nil, fmt.Errorf("node %d follows itself:\n%w", i, ErrInvalidGraph)
		}

		follows[i] = append([]bool(nil), row...)
	}

	return newFollowGraph(follows), nil
}

// FullyConnected returns the graph where every node follows every other node.
func FullyConnected(n int) (*FollowGraph, error) {
	return NewFollowGraph(n, 1, nil)
}

// newFollowGraph indexes followers and counts edges.
func newFollowGraph(follows [][]bool) *FollowGraph {
	n := len(follows)
	g := &FollowGraph{
		follows:   follows,
		followers: make([][]NodeID, n),
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if follows[i][j] {
				g.followers[j] = append(g.followers[j], NodeID(i))
				g.edges++
			}
		}
	}

	return g
}

// Len returns the number of nodes.
func (g *FollowGraph) Len() int {
	return len(g.follows)
}

// Follows reports whether i follows j. Out-of-range ids yield false.
func (g *FollowGraph) Follows(i, j NodeID) bool {
	if !g.valid(i) || !g.valid(j) {
		return false
	}
	return g.follows[i][j]
}

// FollowMask returns a copy of the followee mask of node i.
func (g *FollowGraph) FollowMask(i NodeID) FollowMask {
	if !g.valid(i) {
		return nil
	}
	return append(FollowMask(nil), g.follows[i]...)
}

// Followees returns the nodes i follows, ascending.
func (g *FollowGraph) Followees(i NodeID) []NodeID {
	if !g.valid(i) {
		return nil
	}
	return FollowMask(g.follows[i]).Members()
}

// Followers returns the nodes following j, ascending.
func (g *FollowGraph) Followers(j NodeID) []NodeID {
	if !g.valid(j) {
		return nil
	}
	return append([]NodeID(nil), g.followers[j]...)
}

// EdgeCount returns the number of follow edges.
func (g *FollowGraph) EdgeCount() int {
	return g.edges
}

// Density returns the fraction of possible edges present.
func (g *FollowGraph) Density() float64 {
	n := g.Len()
	if n < 2 {
		return 0
	}
	return float64(g.edges) / float64(n*(n-1))
}

func (g *FollowGraph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.follows)
}
