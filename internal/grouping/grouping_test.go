package grouping

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Biometria-se/grizzly-sub003/types"
)

func workers(ids ...string) []types.WorkerNode {
	out := make([]types.WorkerNode, 0, len(ids))
	for _, id := range ids {
		out = append(out, types.WorkerNode{ID: id})
	}

	return out
}

func TestBuild(t *testing.T) {
	t.Run("one group per distinct tag in declaration order", func(t *testing.T) {
		gs, err := Build(workers("w1", "w2", "w3", "w4"), []types.UserClass{
			{Name: "a", StickyTag: "auth"},
			{Name: "b", StickyTag: "search"},
			{Name: "c", StickyTag: "auth"},
		})

		require.NoError(t, err)
		require.Equal(t, []string{"auth", "search"}, gs.Tags())
	})

	t.Run("untagged classes pool into the orphan group", func(t *testing.T) {
		gs, err := Build(workers("w1", "w2"), []types.UserClass{
			{Name: "a", StickyTag: "auth"},
			{Name: "b"},
		})

		require.NoError(t, err)
		require.Equal(t, []string{"auth", types.OrphanTag}, gs.Tags())
		require.Equal(t, gs.ForTag(types.OrphanTag), gs.ForClass("b"))
	})

	t.Run("workers deal round-robin so sizes differ by at most one", func(t *testing.T) {
		gs, err := Build(workers("w1", "w2", "w3", "w4", "w5"), []types.UserClass{
			{Name: "a", StickyTag: "x"},
			{Name: "b", StickyTag: "y"},
		})

		require.NoError(t, err)
		x := gs.ForTag("x").Workers()
		y := gs.ForTag("y").Workers()
		require.Len(t, x, 3)
		require.Len(t, y, 2)
		require.Equal(t, "w1", x[0].ID)
		require.Equal(t, "w2", y[0].ID)
		require.Equal(t, "w3", x[1].ID)
	})

	t.Run("groups are disjoint", func(t *testing.T) {
		gs, err := Build(workers("w1", "w2", "w3"), []types.UserClass{
			{Name: "a", StickyTag: "x"},
			{Name: "b", StickyTag: "y"},
			{Name: "c"},
		})

		require.NoError(t, err)
		seen := map[string]int{}
		for _, tag := range gs.Tags() {
			for _, w := range gs.ForTag(tag).Workers() {
				seen[w.ID]++
			}
		}
		require.Equal(t, map[string]int{"w1": 1, "w2": 1, "w3": 1}, seen)
	})

	t.Run("more tags than workers fails", func(t *testing.T) {
		_, err := Build(workers("w1", "w2"), []types.UserClass{
			{Name: "a", StickyTag: "x"},
			{Name: "b", StickyTag: "y"},
			{Name: "c", StickyTag: "z"},
		})

		require.ErrorIs(t, err, types.ErrTooManyTags)
	})

	t.Run("tags exactly equal to workers is legal", func(t *testing.T) {
		gs, err := Build(workers("w1", "w2"), []types.UserClass{
			{Name: "a", StickyTag: "x"},
			{Name: "b", StickyTag: "y"},
		})

		require.NoError(t, err)
		require.Len(t, gs.ForTag("x").Workers(), 1)
		require.Len(t, gs.ForTag("y").Workers(), 1)
	})
}

func TestGroup_NextWorker(t *testing.T) {
	t.Run("cycles endlessly over members", func(t *testing.T) {
		gs, err := Build(workers("w1", "w2", "w3"), []types.UserClass{
			{Name: "a", StickyTag: "x"},
		})

		require.NoError(t, err)
		g := gs.ForTag("x")
		var got []string
		for i := 0; i < 7; i++ {
			got = append(got, g.NextWorker().ID)
		}
		require.Equal(t, []string{"w1", "w2", "w3", "w1", "w2", "w3", "w1"}, got)
	})
}
