package client

import (
	"bytes"
	"halite/communication"
	"halite/communication/server"
	"halite/game"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ communication.Communicator = (*ClientCommunicator)(nil)

const initMessage = `{"MAX_TURNS": 401, "MAX_ENERGY": 1000, "NEW_ENTITY_ENERGY_COST": 1000, "DROPOFF_COST": 4000, "MOVE_COST_RATIO": 10, "EXTRACT_RATIO": 4, "INSPIRATION_ENABLED": true}
2 1
0 1 1
1 2 2
4 3
0 1 2 3
4 5 6 7
8 9 10 11
`

const frameMessage = `5
0 1 0 1500
3 1 2 250
1 2 1 800
4 2 1 0
7 3 0 40
0 0 1
2
1 0 99
3 2 0
`

func TestClientInit(t *testing.T) {
	t.Run("reading constants, players and grid", func(t *testing.T) {
		cc := NewClientCommunicator(strings.NewReader(initMessage), io.Discard)

		state, me, err := cc.Init()

		require.NoError(t, err)
		require.Equal(t, 1, me, "Should read the controlled player id")
		require.Equal(t, 401, state.Constants.MaxTurns)
		require.Equal(t, 4, state.Constants.ExtractRatio)
		require.Equal(t, 4, state.Width)
		require.Equal(t, 3, state.Height)
		require.Equal(t, 6, state.Cell(game.Position{X: 2, Y: 1}).Halite, "Should read rows top to bottom")
		require.Equal(t, game.Position{X: 2, Y: 2}, state.Players[1].Shipyard)
	})

	t.Run("rejecting malformed constants", func(t *testing.T) {
		cc := NewClientCommunicator(strings.NewReader("not json\n"), io.Discard)

		_, _, err := cc.Init()

		require.Error(t, err)
	})

	t.Run("rejecting a truncated grid", func(t *testing.T) {
		cc := NewClientCommunicator(strings.NewReader(initMessage[:len(initMessage)-10]), io.Discard)

		_, _, err := cc.Init()

		require.Error(t, err)
	})
}

func TestClientUpdate(t *testing.T) {
	t.Run("reading a frame", func(t *testing.T) {
		cc := NewClientCommunicator(strings.NewReader(initMessage+frameMessage), io.Discard)
		state, _, err := cc.Init()
		require.NoError(t, err)
		state.AddShip(0, 9, game.Position{X: 0, Y: 0}, 0)

		err = cc.Update(state)

		require.NoError(t, err)
		require.Equal(t, 4, state.Turn, "Should count completed turns")
		require.Equal(t, 1500, state.Players[0].Halite)
		require.Equal(t, 800, state.Players[1].Halite)
		require.Equal(t, []int{3, 4, 7}, state.ShipIDs(), "Should replace the ships")
		require.Equal(t, 250, state.Ships[3].Halite)
		require.Equal(t, 1, state.Ships[4].Owner)
		require.Equal(t, []game.Position{{X: 0, Y: 1}}, state.Players[1].Dropoffs)
		require.Equal(t, 99, state.Cell(game.Position{X: 1, Y: 0}).Halite, "Should apply cell updates")
		require.Equal(t, 0, state.Cell(game.Position{X: 3, Y: 2}).Halite)
	})

	t.Run("reporting the end of the game", func(t *testing.T) {
		cc := NewClientCommunicator(strings.NewReader(initMessage), io.Discard)
		state, _, err := cc.Init()
		require.NoError(t, err)

		err = cc.Update(state)

		require.ErrorIs(t, err, io.EOF)
	})
}

func TestClientWrite(t *testing.T) {
	var out bytes.Buffer
	cc := NewClientCommunicator(strings.NewReader(""), &out)

	require.NoError(t, cc.Ready("bot"))
	require.NoError(t, cc.Submit([]game.Command{game.Move(1, game.North), game.Spawn()}))
	require.NoError(t, cc.Submit(nil))

	require.Equal(t, "bot\nm 1 n g\n\n", out.String())
}

func TestServerRoundTrip(t *testing.T) {
	constants := game.StandardConstants()
	state, err := game.GenerateMap(8, 8, 2, 3, constants)
	require.NoError(t, err)
	state.AddShip(0, 0, game.Position{X: 2, Y: 4}, 120)
	state.AddShip(1, 1, game.Position{X: 5, Y: 4}, 0)
	state.Players[1].Dropoffs = []game.Position{{X: 6, Y: 1}}

	var toBot bytes.Buffer
	fromBot := strings.NewReader("bot\nm 0 e g\n")
	sc := server.NewServerCommunicator(fromBot, &toBot)
	require.NoError(t, sc.SendInit(state, 1))
	state.Turn = 7
	state.Cell(game.Position{X: 3, Y: 3}).Halite = 17
	require.NoError(t, sc.SendFrame(state, []game.Position{{X: 3, Y: 3}}))

	var botOut bytes.Buffer
	cc := NewClientCommunicator(&toBot, &botOut)
	got, me, err := cc.Init()
	require.NoError(t, err)
	require.NoError(t, cc.Update(got))

	require.Equal(t, 1, me)
	require.Equal(t, state.Cells, got.Cells, "Should carry the grid and its updates")
	require.Equal(t, state.Ships, got.Ships, "Should carry every ship")
	require.Equal(t, state.Players, got.Players, "Should carry banks, shipyards and dropoffs")
	require.Equal(t, state.Turn, got.Turn)
	require.Equal(t, constants, got.Constants)

	name, err := sc.ReceiveName()
	require.NoError(t, err)
	require.Equal(t, "bot", name)
	commands, err := sc.ReceiveCommands()
	require.NoError(t, err)
	require.Equal(t, []game.Command{game.Move(0, game.East), game.Spawn()}, commands)
}
