package types

// Checkpoint represents a serialized model snapshot discoverable on disk.
type Checkpoint struct {
	// Stable identifier, the experiment directory name.
	// example: hl-video_tef-exp-2024_01_22_08_48_56
	ID string `json:"id" example:"hl-video_tef-exp-2024_01_22_08_48_56"`
	// Path to the checkpoint file, relative or absolute.
	// example: results/hl-video_tef-exp-2024_01_22_08_48_56/model_best.ckpt
	Path string `json:"path" example:"results/hl-video_tef-exp-2024_01_22_08_48_56/model_best.ckpt"`
}

// Invocation states reported for each checkpoint in a batch.
const (
	InvocationPending = "pending"
	InvocationRunning = "running"
	InvocationDone    = "done"
	InvocationFailed  = "failed"
)

// InvocationStatus summarizes one external inference invocation.
type InvocationStatus struct {
	// Checkpoint path passed to the inference command.
	// example: results/hl-video_tef-exp-2024_01_22_08_48_56/model_best.ckpt
	Checkpoint string `json:"checkpoint" example:"results/hl-video_tef-exp-2024_01_22_08_48_56/model_best.ckpt"`
	// Current state of the invocation (pending, running, done, failed).
	// example: done
	State string `json:"state" example:"done"`
	// Wall-clock duration of the invocation in seconds, once finished.
	// example: 184.2
	DurationSeconds float64 `json:"duration_seconds,omitempty" example:"184.2"`
	// Error message when State is failed.
	Error string `json:"error,omitempty"`
}
