package memory

import (
	"docsearch/internal/domain"
	"docsearch/internal/vectorstore/vecmath"
)

// Storage is a flat in-memory vector index using an exact brute-force scan
// over squared Euclidean distance.
type Storage struct {
	dimension int
	vectors   [][]float32
	built     bool
}

func NewStorage() *Storage { return &Storage{} }

// Build stores a copy of vectors. It may be called only once.
func (s *Storage) Build(vectors [][]float32) error {
	if s.built {
		return vecmath.ErrAlreadyBuilt
	}
	dim, err := vecmath.Dimension(vectors)
	if err != nil {
		return err
	}
	s.dimension = dim
	s.vectors = vecmath.Copy(vectors)
	s.built = true
	return nil
}

// Search returns the min(k, Len()) nearest positions, closest first.
func (s *Storage) Search(vector []float32, topK int) ([]domain.Neighbor, error) {
	if topK <= 0 || len(s.vectors) == 0 {
		return []domain.Neighbor{}, nil
	}
	if err := vecmath.CheckQuery(vector, s.dimension); err != nil {
		return nil, err
	}
	scored := make([]domain.Neighbor, len(s.vectors))
	for i, v := range s.vectors {
		scored[i] = domain.Neighbor{Position: i, Distance: vecmath.SquaredL2(vector, v)}
	}
	vecmath.Sort(scored)
	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}

// Len returns the number of indexed vectors.
func (s *Storage) Len() int { return len(s.vectors) }
