package chatlog

// Record is one entry of a thread's append-only blob log.
type Record struct {
	Role      string `json:"role"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
