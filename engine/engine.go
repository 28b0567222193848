package engine

import (
	"context"
	"halite/experiments/metrics"
	"time"
)

const DefaultTurnBudget = time.Second

type Engine interface {
	// Run plays a match until the turn limit and returns the winner's player ID
	Run(ctx context.Context) (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
