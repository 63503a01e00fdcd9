package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Run("Should score full coverage as 100", func(t *testing.T) {
		res := Calculate([]int64{1, 2, 3}, []int64{1, 2}, []int64{3})
		assert.Equal(t, 100.0, res.Score)
		assert.Empty(t, res.MissingRequired)
	})

	t.Run("Should weight required and preferred coverage", func(t *testing.T) {
		res := Calculate([]int64{1}, []int64{1, 2}, []int64{3})
		assert.Equal(t, 42.5, res.Score)
		assert.Equal(t, []int64{2}, res.MissingRequired)
	})

	t.Run("Should give required list full weight when no preferred skills", func(t *testing.T) {
		res := Calculate([]int64{1}, []int64{1, 2, 3}, nil)
		assert.Equal(t, 33.33, res.Score)
	})

	t.Run("Should give preferred list full weight when no required skills", func(t *testing.T) {
		res := Calculate([]int64{5}, nil, []int64{5, 6})
		assert.Equal(t, 50.0, res.Score)
	})

	t.Run("Should score 0 for a job without skills", func(t *testing.T) {
		res := Calculate([]int64{1, 2}, nil, nil)
		assert.Equal(t, 0.0, res.Score)
	})

	t.Run("Should ignore duplicate skill ids", func(t *testing.T) {
		res := Calculate([]int64{1, 1}, []int64{1, 1, 2}, nil)
		assert.Equal(t, 50.0, res.Score)
	})

	t.Run("Should be monotone in required overlap", func(t *testing.T) {
		required := []int64{1, 2, 3, 4}
		preferred := []int64{9}
		prev := -1.0
		for i := 0; i <= len(required); i++ {
			res := Calculate(required[:i], required, preferred)
			assert.GreaterOrEqual(t, res.Score, prev)
			assert.GreaterOrEqual(t, res.Score, 0.0)
			assert.LessOrEqual(t, res.Score, 100.0)
			prev = res.Score
		}
	})
}
