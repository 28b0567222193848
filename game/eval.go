package game

// TotalHalite sums the halite on the grid, in cargo and in banks.
func (s *State) TotalHalite() int {
	total := 0
	for _, cell := range s.Cells {
		total += cell.Halite
	}
	for _, ship := range s.Ships {
		total += ship.Halite
	}
	for _, player := range s.Players {
		total += player.Halite
	}
	return total
}

// Winner returns the player with the largest bank, the lowest id on ties, or
// -1 when there are no players.
func (s *State) Winner() int {
	winner, best := -1, -1
	for _, id := range s.PlayerIDs() {
		if bank := s.Players[id].Halite; bank > best {
			winner, best = id, bank
		}
	}
	return winner
}

// Scores returns each player's bank.
func (s *State) Scores() map[int]int {
	scores := make(map[int]int, len(s.Players))
	for id, player := range s.Players {
		scores[id] = player.Halite
	}
	return scores
}
