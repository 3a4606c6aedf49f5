// Package vecmath holds the distance metric and validation shared by the
// vector index implementations.
package vecmath

import (
	"errors"
	"fmt"
	"sort"

	"docsearch/internal/domain"
)

var (
	// ErrAlreadyBuilt is returned when Build is called on a built index.
	ErrAlreadyBuilt = errors.New("index already built")

	// ErrDimensionMismatch is returned for vectors of inconsistent length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyVector is returned when an indexed vector has no components.
	ErrEmptyVector = errors.New("empty vector")
)

// SquaredL2 returns the squared Euclidean distance between a and b.
// Both must have the same length.
func SquaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// Dimension validates that all vectors share one non-zero length and returns it.
// An empty matrix has dimension 0.
func Dimension(vectors [][]float32) (int, error) {
	if len(vectors) == 0 {
		return 0, nil
	}
	dim := len(vectors[0])
	if dim == 0 {
		return 0, ErrEmptyVector
	}
	for i, v := range vectors {
		if len(v) != dim {
			return 0, fmt.Errorf("%w: vector %d has %d, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}
	return dim, nil
}

// CheckQuery validates a query vector against the index dimension.
func CheckQuery(query []float32, dim int) error {
	if len(query) != dim {
		return fmt.Errorf("%w: query has %d, index has %d", ErrDimensionMismatch, len(query), dim)
	}
	return nil
}

// Less orders neighbours by ascending distance, then ascending position.
func Less(a, b domain.Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Position < b.Position
}

// Sort orders neighbours in place with Less.
func Sort(ns []domain.Neighbor) {
	sort.Slice(ns, func(i, j int) bool { return Less(ns[i], ns[j]) })
}

// Copy returns a deep copy of vectors so callers cannot mutate an index.
func Copy(vectors [][]float32) [][]float32 {
	out := make([][]float32, len(vectors))
	for i, v := range vectors {
		out[i] = append([]float32(nil), v...)
	}
	return out
}
