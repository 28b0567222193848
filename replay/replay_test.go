package replay

import (
	"halite/game"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplay(t *testing.T) {
	t.Run("reading back recorded frames", func(t *testing.T) {
		state := game.NewState(8, 8, game.StandardConstants())
		state.AddPlayer(0, game.Position{X: 1, Y: 1})
		state.AddPlayer(1, game.Position{X: 6, Y: 6})
		state.Players[1].Halite = 2500
		state.AddShip(1, 4, game.Position{X: 3, Y: 2}, 70)
		state.AddShip(0, 2, game.Position{X: 5, Y: 5}, 10)

		dir := t.TempDir()
		w, err := Create(dir, "match")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "match.jsonl.zst"), w.Path())

		first := NewFrame(state, map[int][]game.Command{0: {game.Move(2, game.North)}, 1: {game.Spawn()}})
		require.NoError(t, w.Write(first))
		state.Advance(game.NewOrders())
		second := NewFrame(state, nil)
		require.NoError(t, w.Write(second))
		require.NoError(t, w.Close())

		frames, err := Read(w.Path())

		require.NoError(t, err)
		require.Len(t, frames, 2)
		require.Equal(t, first, frames[0])
		require.Equal(t, 1, frames[1].Turn)
		require.Equal(t, map[int]int{0: 0, 1: 2500}, frames[1].Banks)
		require.Equal(t, []int{2, 4}, []int{frames[1].Ships[0].ID, frames[1].Ships[1].ID}, "Should order ships by id")
	})

	t.Run("rejecting a missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "missing.jsonl.zst"))

		require.Error(t, err)
	})
}

func TestNewFrame(t *testing.T) {
	state := game.NewState(4, 4, game.StandardConstants())
	state.AddPlayer(0, game.Position{})
	state.AddShip(0, 1, game.Position{X: 2, Y: 2}, 5)

	frame := NewFrame(state, map[int][]game.Command{0: {game.Move(1, game.Stay), game.Spawn()}})

	require.Equal(t, "m 1 o g", frame.Commands[0])
	require.Equal(t, []game.Ship{{ID: 1, Owner: 0, Position: game.Position{X: 2, Y: 2}, Halite: 5}}, frame.Ships)
}
