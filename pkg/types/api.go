package types

// CheckpointsResponse wraps the list of checkpoints returned by GET /checkpoints.
type CheckpointsResponse struct {
	// Ordered list of checkpoints in the batch.
	Checkpoints []Checkpoint `json:"checkpoints"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: batch not started
	Error string `json:"error" example:"batch not started"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// BatchStatus is returned by GET /status while a batch runs.
type BatchStatus struct {
	// Dataset split the batch evaluates.
	// example: val
	Split string `json:"split" example:"val"`
	// Derived evaluation-data path for the split.
	// example: data/highlight_val_release.jsonl
	EvalPath string `json:"eval_path" example:"data/highlight_val_release.jsonl"`
	// Per-checkpoint invocation states, in batch order.
	Invocations []InvocationStatus `json:"invocations"`
	// Number of invocations already finished (done or failed).
	// example: 3
	Completed int `json:"completed" example:"3"`
	// Total number of invocations in the batch.
	// example: 7
	Total int `json:"total" example:"7"`
	// Uptime of the batch in seconds.
	// example: 600
	UptimeSeconds int64 `json:"uptime_seconds" example:"600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
