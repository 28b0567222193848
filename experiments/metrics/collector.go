package metrics

import (
	"time"
)

type SearchMetric struct {
	Ships     int // Trees searched
	Horizon   int
	Duration  time.Duration
	Episodes  int
	Rollouts  int
	TreeNodes int
}

type MoveMetric struct {
	Turn   int
	Player int // Player ID
	Ships  int // Ships owned at the start of the turn
	SearchMetric
}

type GameMetric struct {
	Match     string // Match ID
	Winner    int    // Player ID
	Scores    []int  // Final bank per player ID
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Turns     int
}

type Collector interface {
	Start(ships, horizon int)
	AddEpisode()
	AddRollout()
	AddNodes(n int)
	Complete() SearchMetric
}

type collector struct {
	ships     int
	horizon   int
	startTime time.Time
	episodes  int
	rollouts  int
	nodes     int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(ships, horizon int) {
	m.startTime = time.Now()
	m.ships = ships
	m.horizon = horizon
	m.episodes = 0
	m.rollouts = 0
	m.nodes = 0
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) AddRollout() {
	m.rollouts++
}

func (m *collector) AddNodes(n int) {
	m.nodes += n
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Ships:     m.ships,
		Horizon:   m.horizon,
		Duration:  time.Since(m.startTime),
		Episodes:  m.episodes,
		Rollouts:  m.rollouts,
		TreeNodes: m.nodes,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(ships, horizon int) {}
func (m *dummyCollector) AddEpisode()              {}
func (m *dummyCollector) AddRollout()              {}
func (m *dummyCollector) AddNodes(n int)           {}
func (m *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
