package searcher

import "math"

// Hyperparameters for MCTS

var DefaultExploration = 1 / math.Sqrt2 // Exploration constant c

const DefaultCutoff = 50 // Max rollout depth in turns

type uct struct {
	c         float64
	numerator float64
}

func newUCT(c float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{c: c, numerator: 2 * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	// Prioritize unexplored nodes
	if n == 0 {
		return math.Inf(1)
	}
	// UCB1 = q/n + c*sqrt(2*ln(N)/n)
	return q/n + u.c*math.Sqrt(u.numerator/n)
}
