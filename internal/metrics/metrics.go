package metrics

import "sync"

// Usage accumulates completion-service consumption for the process.
type Usage struct {
	mu        sync.Mutex
	requests  int
	fallbacks int
	tokens    int
	cost      float64
}

// Snapshot is a point-in-time copy of Usage.
type Snapshot struct {
	Requests  int     `json:"requests"`
	Fallbacks int     `json:"fallbacks"`
	Tokens    int     `json:"tokens"`
	Cost      float64 `json:"estimated_cost"`
}

// AddTokens records one successful completion. price is per token.
func (u *Usage) AddTokens(n int, price float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.requests++
	u.tokens += n
	u.cost += float64(n) * price
}

// AddFallback records a completion that failed and was replaced.
func (u *Usage) AddFallback() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.requests++
	u.fallbacks++
}

func (u *Usage) Cost() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cost
}

func (u *Usage) Snapshot() Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return Snapshot{
		Requests:  u.requests,
		Fallbacks: u.fallbacks,
		Tokens:    u.tokens,
		Cost:      u.cost,
	}
}
