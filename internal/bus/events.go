package bus

import "time"

// SolveCompletedEvent announces an optimal solve.
type SolveCompletedEvent struct {
	ID           string    `json:"id"`
	OptimalValue float64   `json:"optimal_value"`
	Iterations   int       `json:"iterations"`
	Dummy        string    `json:"dummy"`
	DurationMs   float64   `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// SolveFailedEvent announces an infeasible or failed solve.
type SolveFailedEvent struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Error      string    `json:"error"`
	DurationMs float64   `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ErrorReply answers a request that could not be decoded or stored.
type ErrorReply struct {
	Error string `json:"error"`
}
