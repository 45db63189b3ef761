package usergen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(g *Generator, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Next())
	}

	return out
}

func TestGenerator_Next(t *testing.T) {
	t.Run("equal targets interleave round-robin", func(t *testing.T) {
		g := New([]Entry{
			{Name: "User1", Target: 3},
			{Name: "User2", Target: 3},
			{Name: "User3", Target: 3},
		})

		require.Equal(t, 9, g.Remaining())
		require.Equal(t,
			[]string{"User1", "User2", "User3", "User1", "User2", "User3", "User1", "User2", "User3"},
			collect(g, 9))
		require.Equal(t, "", g.Next())
	})

	t.Run("each class appears exactly its target count of times", func(t *testing.T) {
		g := New([]Entry{
			{Name: "a", Target: 5},
			{Name: "b", Target: 3},
			{Name: "c", Target: 1},
		})

		seen := map[string]int{}
		for name := g.Next(); name != ""; name = g.Next() {
			seen[name]++
		}
		require.Equal(t, map[string]int{"a": 5, "b": 3, "c": 1}, seen)
	})

	t.Run("smooth interleaving avoids long runs", func(t *testing.T) {
		g := New([]Entry{
			{Name: "big", Target: 4},
			{Name: "small", Target: 2},
		})

		require.Equal(t, []string{"big", "small", "big", "big", "small", "big"}, collect(g, 6))
	})

	t.Run("fixed classes drain before weighted ones", func(t *testing.T) {
		g := New([]Entry{
			{Name: "User1", Target: 2, Fixed: true},
			{Name: "User2", Target: 5},
			{Name: "User3", Target: 4},
		})

		got := collect(g, 11)
		require.Equal(t, []string{"User1", "User1"}, got[:2])

		seen := map[string]int{}
		for _, name := range got {
			seen[name]++
		}
		require.Equal(t, map[string]int{"User1": 2, "User2": 5, "User3": 4}, seen)
	})

	t.Run("classes at or above target are never yielded", func(t *testing.T) {
		g := New([]Entry{
			{Name: "over", Target: 2, Current: 5},
			{Name: "under", Target: 3, Current: 1},
		})

		require.Equal(t, 2, g.Remaining())
		require.Equal(t, []string{"under", "under"}, collect(g, 2))
		require.Equal(t, "", g.Next())
	})

	t.Run("zero target classes contribute nothing", func(t *testing.T) {
		g := New([]Entry{
			{Name: "none", Target: 0},
			{Name: "some", Target: 2},
		})

		require.Equal(t, []string{"some", "some"}, collect(g, 2))
	})

	t.Run("empty generator yields empty string", func(t *testing.T) {
		g := New(nil)

		require.Equal(t, 0, g.Remaining())
		require.Equal(t, "", g.Next())
	})
}
