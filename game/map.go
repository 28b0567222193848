package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

const StartingHalite = 5000 // Bank each player starts with

const (
	maxCellHalite = 1000
	patches       = 6 // Rich areas per generated tile
)

// GenerateMap builds a symmetric grid for 2 or 4 players with a shipyard per
// player. The same seed always produces the same map.
func GenerateMap(width, height, numPlayers int, seed uint64, constants Constants) (*State, error) {
	if numPlayers != 2 && numPlayers != 4 {
		return nil, fmt.Errorf("unsupported number of players: %d", numPlayers)
	}
	if width < 4 || height < 4 || width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("grid must be even and at least 4x4, got %dx%d", width, height)
	}

	rng := rand.New(rand.NewSource(seed))
	tileWidth, tileHeight := width/2, height
	if numPlayers == 4 {
		tileHeight = height / 2
	}
	tile := generateTile(rng, tileWidth, tileHeight)

	state := NewState(width, height, constants)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tx, ty := x, y
			if tx >= tileWidth {
				tx = width - 1 - x
			}
			if ty >= tileHeight {
				ty = height - 1 - y
			}
			state.Cell(Position{X: x, Y: y}).Halite = tile[ty*tileWidth+tx]
		}
	}

	for id, shipyard := range shipyards(width, height, numPlayers) {
		player := state.AddPlayer(id, shipyard)
		player.Halite = StartingHalite
		state.Cell(shipyard).Halite = 0
	}
	return state, nil
}

func generateTile(rng *rand.Rand, width, height int) []int {
	tile := make([]int, width*height)
	for i := range tile {
		tile[i] = rng.Intn(maxCellHalite / 8)
	}
	for k := 0; k < patches; k++ {
		cx, cy := rng.Intn(width), rng.Intn(height)
		radius := 1 + rng.Intn(max(2, min(width, height)/3))
		peak := maxCellHalite/4 + rng.Intn(maxCellHalite*3/4)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				d := abs(x-cx) + abs(y-cy)
				if d > radius {
					continue
				}
				tile[y*width+x] += peak * (radius - d + 1) / (radius + 1)
			}
		}
	}
	for i := range tile {
		tile[i] = min(tile[i], maxCellHalite)
	}
	return tile
}

func shipyards(width, height, numPlayers int) []Position {
	left, right := width/4, width-1-width/4
	if numPlayers == 2 {
		return []Position{{X: left, Y: height / 2}, {X: right, Y: height / 2}}
	}
	top, bottom := height/4, height-1-height/4
	return []Position{
		{X: left, Y: top},
		{X: right, Y: top},
		{X: left, Y: bottom},
		{X: right, Y: bottom},
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
