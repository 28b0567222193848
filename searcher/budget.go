package searcher

import "time"

// budget decides before each iteration whether another one fits. An iteration
// is refused once the ceiling is reached or when it would likely overrun the
// deadline, judging by how long the previous iteration took.
type budget struct {
	ceiling    int       // Max iterations, 0 for no ceiling
	deadline   time.Time // Zero for no deadline
	now        func() time.Time
	started    time.Time
	last       time.Duration
	iterations int
}

func newBudget(ceiling int, deadline time.Time, now func() time.Time) *budget {
	if now == nil {
		now = time.Now
	}
	return &budget{ceiling: ceiling, deadline: deadline, now: now}
}

func (b *budget) admit() bool {
	if b.ceiling > 0 && b.iterations >= b.ceiling {
		return false
	}
	now := b.now()
	if !b.deadline.IsZero() && !now.Add(b.last).Before(b.deadline) {
		return false
	}
	b.started = now
	return true
}

// record marks the end of the admitted iteration.
func (b *budget) record() {
	b.last = b.now().Sub(b.started)
	b.iterations++
}
