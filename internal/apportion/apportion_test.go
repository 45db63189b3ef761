package apportion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProportional(t *testing.T) {
	t.Run("equal weights divide evenly", func(t *testing.T) {
		counts := Proportional(9, []Bucket{
			{Name: "User1", Weight: 1},
			{Name: "User2", Weight: 1},
			{Name: "User3", Weight: 1},
		})

		require.Equal(t, map[string]int{"User1": 3, "User2": 3, "User3": 3}, counts)
	})

	t.Run("sum always equals total", func(t *testing.T) {
		buckets := []Bucket{
			{Name: "a", Weight: 1},
			{Name: "b", Weight: 2},
			{Name: "c", Weight: 3},
			{Name: "d", Weight: 7},
		}
		for total := 0; total <= 100; total++ {
			counts := Proportional(total, buckets)
			sum := 0
			for _, n := range counts {
				sum += n
			}
			require.Equal(t, total, sum, "total %d", total)
		}
	})

	t.Run("largest remainder gets the leftover", func(t *testing.T) {
		// Ideals: 3.5 / 2.1 / 1.4 → floors 3/2/1, leftover 1 goes to "a".
		counts := Proportional(7, []Bucket{
			{Name: "a", Weight: 5},
			{Name: "b", Weight: 3},
			{Name: "c", Weight: 2},
		})

		require.Equal(t, map[string]int{"a": 4, "b": 2, "c": 1}, counts)
	})

	t.Run("remainder ties break by declaration order", func(t *testing.T) {
		counts := Proportional(11, []Bucket{
			{Name: "x", Weight: 1},
			{Name: "y", Weight: 1},
		})

		require.Equal(t, map[string]int{"x": 6, "y": 5}, counts)
	})

	t.Run("more buckets than units fills zero or one in order", func(t *testing.T) {
		counts := Proportional(2, []Bucket{
			{Name: "a", Weight: 1},
			{Name: "b", Weight: 1},
			{Name: "c", Weight: 1},
			{Name: "d", Weight: 1},
		})

		require.Equal(t, map[string]int{"a": 1, "b": 1, "c": 0, "d": 0}, counts)
	})

	t.Run("zero total weight falls back to equal shares", func(t *testing.T) {
		counts := Proportional(4, []Bucket{
			{Name: "a"},
			{Name: "b"},
		})

		require.Equal(t, map[string]int{"a": 2, "b": 2}, counts)
	})

	t.Run("zero total yields all zeros", func(t *testing.T) {
		counts := Proportional(0, []Bucket{{Name: "a", Weight: 1}})

		require.Equal(t, map[string]int{"a": 0}, counts)
	})
}

func TestWithFixed(t *testing.T) {
	t.Run("fixed honored exactly then remainder split by weight", func(t *testing.T) {
		counts := WithFixed(11, []Bucket{
			{Name: "User1", Fixed: true, FixedCount: 2},
			{Name: "User2", Weight: 1},
			{Name: "User3", Weight: 1},
		})

		require.Equal(t, map[string]int{"User1": 2, "User2": 5, "User3": 4}, counts)
	})

	t.Run("no fixed buckets degrades to proportional", func(t *testing.T) {
		counts := WithFixed(6, []Bucket{
			{Name: "a", Weight: 2},
			{Name: "b", Weight: 1},
		})

		require.Equal(t, map[string]int{"a": 4, "b": 2}, counts)
	})

	t.Run("target below fixed sum splits target over fixed buckets", func(t *testing.T) {
		counts := WithFixed(3, []Bucket{
			{Name: "a", Fixed: true, FixedCount: 4},
			{Name: "b", Fixed: true, FixedCount: 2},
			{Name: "c", Weight: 1},
		})

		require.Equal(t, map[string]int{"a": 2, "b": 1, "c": 0}, counts)
	})

	t.Run("surplus with only fixed buckets spreads by fixed count", func(t *testing.T) {
		counts := WithFixed(9, []Bucket{
			{Name: "a", Fixed: true, FixedCount: 4},
			{Name: "b", Fixed: true, FixedCount: 2},
		})

		require.Equal(t, map[string]int{"a": 6, "b": 3}, counts)
	})

	t.Run("fixed count of zero stays zero", func(t *testing.T) {
		counts := WithFixed(5, []Bucket{
			{Name: "a", Fixed: true, FixedCount: 0},
			{Name: "b", Weight: 1},
		})

		require.Equal(t, map[string]int{"a": 0, "b": 5}, counts)
	})
}
