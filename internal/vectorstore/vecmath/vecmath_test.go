package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/domain"
)

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, 25.0, SquaredL2([]float32{0, 0}, []float32{3, 4}))
	assert.Equal(t, 0.0, SquaredL2([]float32{1, 2}, []float32{1, 2}))
}

func TestDimension(t *testing.T) {
	dim, err := Dimension(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, dim)

	dim, err = Dimension([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, 2, dim)

	_, err = Dimension([][]float32{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Dimension([][]float32{{}})
	assert.ErrorIs(t, err, ErrEmptyVector)
}

func TestSortBreaksTiesByPosition(t *testing.T) {
	ns := []domain.Neighbor{
		{Position: 3, Distance: 1},
		{Position: 1, Distance: 2},
		{Position: 0, Distance: 1},
	}
	Sort(ns)
	assert.Equal(t, []domain.Neighbor{
		{Position: 0, Distance: 1},
		{Position: 3, Distance: 1},
		{Position: 1, Distance: 2},
	}, ns)
}

func TestCopyIsDeep(t *testing.T) {
	src := [][]float32{{1, 2}}
	dst := Copy(src)
	src[0][0] = 9
	assert.Equal(t, float32(1), dst[0][0])
}
