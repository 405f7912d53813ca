package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hleval/pkg/types"
)

// DefaultCheckpoints is the ordered list of experiment checkpoints evaluated
// when no override is configured.
var DefaultCheckpoints = []string{
	"results/hl-video_tef-exp-2024_01_22_08_48_56/model_best.ckpt",
	"results/hl-video_tef-exp-2024_01_22_09_53_31/model_best.ckpt",
	"results/hl-video_tef-exp-2024_01_22_10_47_10/model_best.ckpt",
	"results/hl-video_tef-exp-2024_01_22_11_52_03/model_best.ckpt",
	"results/hl-video_tef-exp-2024_01_22_12_55_48/model_best.ckpt",
	"results/hl-video_tef-exp-2024_01_22_13_50_17/model_best.ckpt",
	"results/hl-video_tef-exp-2024_01_22_14_49_25/model_best.ckpt",
}

// EvalDataPath derives the evaluation-data path for a split.
// An empty split yields "data/highlight__release.jsonl"; callers that want
// strictness must check the split themselves (see ErrMissingSplit).
func EvalDataPath(split string) string {
	return "data/highlight_" + split + "_release.jsonl"
}

// Batch drives one sequential evaluation pass over a checkpoint list.
// Each checkpoint gets one blocking invocation of the external inference
// command; a failing invocation does not stop the batch unless FailFast is
// set. The zero value is not usable: populate Checkpoints and InferBin.
type Batch struct {
	Split       string
	Checkpoints []string
	PassThrough []string // forwarded verbatim, in order, to every invocation

	InferBin  string   // external inference program, e.g. "python"
	InferArgs []string // tokens before the driver-supplied flags
	Dir       string   // working directory for invocations; "" means cwd
	Stream    bool
	FailFast  bool

	Runner    CommandRunner
	Publisher EventPublisher
	Log       *zerolog.Logger
	Stdout    io.Writer // defaults to os.Stdout

	mu      sync.Mutex
	started time.Time
	states  []types.InvocationStatus
}

func (b *Batch) runner() CommandRunner {
	if b.Runner != nil {
		return b.Runner
	}
	return ExecRunner{}
}

func (b *Batch) publisher() EventPublisher {
	if b.Publisher != nil {
		return b.Publisher
	}
	return noopPublisher{}
}

func (b *Batch) stdout() io.Writer {
	if b.Stdout != nil {
		return b.Stdout
	}
	return os.Stdout
}

// Run executes the batch: it prints the split, the derived eval path and each
// checkpoint path to stdout before use, then invokes the inference command
// once per checkpoint in list order. The returned error is that of the last
// invocation only, mirroring sequential shell semantics; earlier failures are
// recorded in Status and published as events but do not abort the batch.
func (b *Batch) Run(ctx context.Context) error {
	out := b.stdout()
	evalPath := EvalDataPath(b.Split)
	fmt.Fprintln(out, b.Split)
	fmt.Fprintln(out, evalPath)

	b.mu.Lock()
	b.started = time.Now()
	b.states = make([]types.InvocationStatus, len(b.Checkpoints))
	for i, ckpt := range b.Checkpoints {
		b.states[i] = types.InvocationStatus{Checkpoint: ckpt, State: types.InvocationPending}
	}
	b.mu.Unlock()

	pythonPath := extendPythonPath(b.workDir())

	var lastErr error
	for i, ckpt := range b.Checkpoints {
		fmt.Fprintln(out, ckpt)
		b.setState(i, types.InvocationRunning)
		b.publisher().Publish(Event{Name: "invoke_start", Checkpoint: ckpt, Fields: map[string]any{"index": i}})
		if b.Log != nil {
			b.Log.Info().Str("checkpoint", ckpt).Str("split", b.Split).Str("eval_path", evalPath).Msg("invoke start")
		}

		args := append([]string(nil), b.InferArgs...)
		args = append(args,
			"--resume", ckpt,
			"--eval_split_name", b.Split,
			"--eval_path", evalPath,
		)
		args = append(args, b.PassThrough...)

		invocationInflight.Inc()
		start := time.Now()
		err := b.runner().Run(ctx, Cmd{
			Path:   b.InferBin,
			Args:   args,
			Env:    map[string]string{"PYTHONPATH": pythonPath},
			Dir:    b.Dir,
			Stream: b.Stream,
		})
		dur := time.Since(start)
		invocationInflight.Dec()
		batchCompleted.Set(float64(i + 1))

		if err != nil {
			invocationsTotal.WithLabelValues("error").Inc()
			invocationDuration.WithLabelValues("error").Observe(dur.Seconds())
			b.finishState(i, types.InvocationFailed, dur, err)
			b.publisher().Publish(Event{Name: "invoke_end", Checkpoint: ckpt, Fields: map[string]any{"error": err.Error()}})
			if b.Log != nil {
				b.Log.Warn().Str("checkpoint", ckpt).Dur("dur", dur).Err(err).Msg("invoke failed")
			}
			lastErr = ErrSubprocessFailure(ckpt, err)
			if b.FailFast {
				return lastErr
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		invocationsTotal.WithLabelValues("ok").Inc()
		invocationDuration.WithLabelValues("ok").Observe(dur.Seconds())
		b.finishState(i, types.InvocationDone, dur, nil)
		b.publisher().Publish(Event{Name: "invoke_end", Checkpoint: ckpt, Fields: map[string]any{"dur_seconds": dur.Seconds()}})
		if b.Log != nil {
			b.Log.Info().Str("checkpoint", ckpt).Dur("dur", dur).Msg("invoke done")
		}
		// exit status follows the last command only
		lastErr = nil
	}
	return lastErr
}

func (b *Batch) workDir() string {
	if b.Dir != "" {
		return b.Dir
	}
	return "."
}

func (b *Batch) setState(i int, state string) {
	b.mu.Lock()
	if i >= 0 && i < len(b.states) {
		b.states[i].State = state
	}
	b.mu.Unlock()
}

func (b *Batch) finishState(i int, state string, dur time.Duration, err error) {
	b.mu.Lock()
	if i >= 0 && i < len(b.states) {
		b.states[i].State = state
		b.states[i].DurationSeconds = dur.Seconds()
		if err != nil {
			b.states[i].Error = err.Error()
		}
	}
	b.mu.Unlock()
}

// Status returns a snapshot of the batch for the status server.
func (b *Batch) Status() types.BatchStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	st := types.BatchStatus{
		Split:          b.Split,
		EvalPath:       EvalDataPath(b.Split),
		Invocations:    append([]types.InvocationStatus(nil), b.states...),
		Total:          len(b.Checkpoints),
		ServerTimeUnix: time.Now().Unix(),
	}
	if !b.started.IsZero() {
		st.UptimeSeconds = int64(time.Since(b.started).Seconds())
	}
	for _, s := range st.Invocations {
		if s.State == types.InvocationDone || s.State == types.InvocationFailed {
			st.Completed++
		}
	}
	return st
}

// List returns the configured checkpoints as registry-style values.
// ID is the experiment directory name holding the checkpoint file.
func (b *Batch) List() []types.Checkpoint {
	out := make([]types.Checkpoint, 0, len(b.Checkpoints))
	for _, p := range b.Checkpoints {
		out = append(out, types.Checkpoint{ID: filepath.Base(filepath.Dir(p)), Path: p})
	}
	return out
}

// Ready reports whether the batch has started.
func (b *Batch) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.started.IsZero()
}

// extendPythonPath appends dir to the inherited PYTHONPATH rather than
// replacing it, so the inference program can resolve its local modules.
func extendPythonPath(dir string) string {
	cur := os.Getenv("PYTHONPATH")
	if cur == "" {
		return dir
	}
	return cur + string(os.PathListSeparator) + dir
}
