package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"hleval/pkg/types"
)

// recorder captures invocations instead of spawning processes.
type recorder struct {
	cmds    []Cmd
	failIdx map[int]error // invocation index -> error to return
}

func (r *recorder) Run(ctx context.Context, c Cmd) error {
	idx := len(r.cmds)
	r.cmds = append(r.cmds, c)
	if err, ok := r.failIdx[idx]; ok {
		return err
	}
	return nil
}

func TestEvalDataPath(t *testing.T) {
	cases := map[string]string{
		"val":  "data/highlight_val_release.jsonl",
		"test": "data/highlight_test_release.jsonl",
		"":     "data/highlight__release.jsonl",
	}
	for split, want := range cases {
		if got := EvalDataPath(split); got != want {
			t.Fatalf("EvalDataPath(%q)=%q want %q", split, got, want)
		}
	}
}

func TestRun_SevenInvocationsInOrder(t *testing.T) {
	rec := &recorder{}
	b := &Batch{
		Split:       "val",
		Checkpoints: DefaultCheckpoints,
		InferBin:    "python",
		InferArgs:   []string{"run_inference.py"},
		Runner:      rec,
		Stdout:      &bytes.Buffer{},
	}
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rec.cmds) != 7 {
		t.Fatalf("expected 7 invocations, got %d", len(rec.cmds))
	}
	first := rec.cmds[0].Args
	if first[0] != "run_inference.py" || first[1] != "--resume" ||
		first[2] != "results/hl-video_tef-exp-2024_01_22_08_48_56/model_best.ckpt" {
		t.Fatalf("unexpected first argv: %v", first)
	}
	last := rec.cmds[6].Args
	if last[2] != "results/hl-video_tef-exp-2024_01_22_14_49_25/model_best.ckpt" {
		t.Fatalf("unexpected last checkpoint: %v", last)
	}
	for i, c := range rec.cmds {
		if c.Path != "python" {
			t.Fatalf("cmd %d path=%q", i, c.Path)
		}
		if c.Args[2] != b.Checkpoints[i] {
			t.Fatalf("cmd %d out of order: %q", i, c.Args[2])
		}
		if c.Args[3] != "--eval_split_name" || c.Args[4] != "val" {
			t.Fatalf("cmd %d missing split: %v", i, c.Args)
		}
		if c.Args[5] != "--eval_path" || c.Args[6] != "data/highlight_val_release.jsonl" {
			t.Fatalf("cmd %d missing eval path: %v", i, c.Args)
		}
	}
}

func TestRun_PassThroughForwarded(t *testing.T) {
	rec := &recorder{}
	b := &Batch{
		Split:       "test",
		Checkpoints: []string{"a.ckpt", "b.ckpt"},
		PassThrough: []string{"--nms_thd", "0.7", "--no_sort_results"},
		InferBin:    "python",
		Runner:      rec,
		Stdout:      &bytes.Buffer{},
	}
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, c := range rec.cmds {
		n := len(c.Args)
		got := c.Args[n-3:]
		if got[0] != "--nms_thd" || got[1] != "0.7" || got[2] != "--no_sort_results" {
			t.Fatalf("cmd %d pass-through mangled: %v", i, c.Args)
		}
	}
}

func TestRun_EmptySplitPermissive(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer
	b := &Batch{
		Checkpoints: DefaultCheckpoints,
		InferBin:    "python",
		Runner:      rec,
		Stdout:      &out,
	}
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rec.cmds) != 7 {
		t.Fatalf("expected 7 invocations, got %d", len(rec.cmds))
	}
	c := rec.cmds[0]
	if c.Args[2] != "--eval_split_name" || c.Args[3] != "" {
		t.Fatalf("expected empty split token: %v", c.Args)
	}
	if c.Args[5] != "data/highlight__release.jsonl" {
		t.Fatalf("expected permissive path: %v", c.Args)
	}
	if !strings.HasPrefix(out.String(), "\ndata/highlight__release.jsonl\n") {
		t.Fatalf("unexpected stdout prefix: %q", out.String())
	}
}

func TestRun_ContinueOnError(t *testing.T) {
	boom := errors.New("exit status 1")
	rec := &recorder{failIdx: map[int]error{2: boom}}
	pub := NewMemoryPublisher()
	b := &Batch{
		Split:       "val",
		Checkpoints: DefaultCheckpoints,
		InferBin:    "python",
		Runner:      rec,
		Publisher:   pub,
		Stdout:      &bytes.Buffer{},
	}
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("last invocation succeeded, want nil error, got %v", err)
	}
	if len(rec.cmds) != 7 {
		t.Fatalf("failure stopped the batch: %d invocations", len(rec.cmds))
	}
	st := b.Status()
	if st.Invocations[2].State != types.InvocationFailed || st.Invocations[2].Error == "" {
		t.Fatalf("unexpected status: %+v", st.Invocations[2])
	}
	if st.Completed != 7 || st.Total != 7 {
		t.Fatalf("unexpected totals: %+v", st)
	}
	var starts, ends int
	for _, e := range pub.Events() {
		switch e.Name {
		case "invoke_start":
			starts++
		case "invoke_end":
			ends++
		}
	}
	if starts != 7 || ends != 7 {
		t.Fatalf("events starts=%d ends=%d", starts, ends)
	}
}

func TestRun_LastFailureIsReturned(t *testing.T) {
	boom := errors.New("exit status 2")
	rec := &recorder{failIdx: map[int]error{6: boom}}
	b := &Batch{
		Split:       "val",
		Checkpoints: DefaultCheckpoints,
		InferBin:    "python",
		Runner:      rec,
		Stdout:      &bytes.Buffer{},
	}
	err := b.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error from last invocation")
	}
	if !IsSubprocessFailure(err) {
		t.Fatalf("expected subprocess failure, got %T", err)
	}
	if ckpt, ok := FailedCheckpoint(err); !ok || ckpt != DefaultCheckpoints[6] {
		t.Fatalf("unexpected failed checkpoint: %q", ckpt)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause")
	}
}

func TestRun_FailFast(t *testing.T) {
	rec := &recorder{failIdx: map[int]error{3: errors.New("exit status 1")}}
	b := &Batch{
		Split:       "val",
		Checkpoints: DefaultCheckpoints,
		InferBin:    "python",
		FailFast:    true,
		Runner:      rec,
		Stdout:      &bytes.Buffer{},
	}
	if err := b.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if len(rec.cmds) != 4 {
		t.Fatalf("expected 4 invocations before stopping, got %d", len(rec.cmds))
	}
}

func TestRun_StdoutContract(t *testing.T) {
	rec := &recorder{}
	var out bytes.Buffer
	b := &Batch{
		Split:       "val",
		Checkpoints: []string{"a.ckpt", "b.ckpt"},
		InferBin:    "python",
		Runner:      rec,
		Stdout:      &out,
	}
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "val\ndata/highlight_val_release.jsonl\na.ckpt\nb.ckpt\n"
	if out.String() != want {
		t.Fatalf("stdout=%q want %q", out.String(), want)
	}
}

func TestRun_PythonPathExtended(t *testing.T) {
	t.Setenv("PYTHONPATH", "/opt/libs")
	rec := &recorder{}
	b := &Batch{
		Split:       "val",
		Checkpoints: []string{"a.ckpt"},
		InferBin:    "python",
		Runner:      rec,
		Stdout:      &bytes.Buffer{},
	}
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := fmt.Sprintf("/opt/libs%c.", os.PathListSeparator)
	if got := rec.cmds[0].Env["PYTHONPATH"]; got != want {
		t.Fatalf("PYTHONPATH=%q want %q", got, want)
	}
}

func TestListAndReady(t *testing.T) {
	b := &Batch{
		Split:       "val",
		Checkpoints: []string{"results/exp-1/model_best.ckpt"},
		InferBin:    "python",
		Runner:      &recorder{},
		Stdout:      &bytes.Buffer{},
	}
	if b.Ready() {
		t.Fatalf("ready before run")
	}
	ck := b.List()
	if len(ck) != 1 || ck[0].ID != "exp-1" || ck[0].Path != "results/exp-1/model_best.ckpt" {
		t.Fatalf("unexpected list: %+v", ck)
	}
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !b.Ready() {
		t.Fatalf("not ready after run")
	}
}
