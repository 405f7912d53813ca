package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFile(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "highlight_val_release.jsonl")
	content := `{"qid": 7803, "query": "Man in gray top walks from outside to inside.", "duration": 150, "vid": "RoripwjYFp8_360.0_510.0", "relevant_clip_ids": [13, 14, 15, 16, 17], "relevant_windows": [[26, 36]]}

{"qid": 7804, "query": "A dog runs across the yard.", "duration": 120, "vid": "abc_0.0_120.0", "saliency_scores": [[1,2,3],[0,0,1]]}
not json at all
{"qid": 7805, "query": "q", "duration": 60, "vid": "v"}
`
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, rep, err := ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if rep.Malformed != 1 || len(rep.BadLines) != 1 || rep.BadLines[0] != 4 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	r := records[0]
	if r.QID != 7803 || r.VID != "RoripwjYFp8_360.0_510.0" || r.Duration != 150 {
		t.Fatalf("unexpected record: %+v", r)
	}
	if len(r.RelevantClipIDs) != 5 || len(r.RelevantWindows) != 1 || r.RelevantWindows[0][1] != 36 {
		t.Fatalf("unexpected labels: %+v", r)
	}
	if len(records[1].SaliencyScores) != 2 {
		t.Fatalf("unexpected saliency: %+v", records[1])
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
