// meta/meta.go
package meta

import "time"

// BOT_NAME is the name announced to the engine.
const BOT_NAME = "MergedMCTS"

// EPISODES defines the iteration ceiling of a turn's search.
const EPISODES = 100

// TURN_BUDGET defines the wall clock a turn's search may use.
const TURN_BUDGET = 900 * time.Millisecond

// WITH_CUTOFF defines the rollout depth for MCTS.
const WITH_CUTOFF = 50

// SPAWN_TURN_LIMIT defines the last turn a new ship is produced on.
const SPAWN_TURN_LIMIT = 200
