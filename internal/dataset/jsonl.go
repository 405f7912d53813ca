package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Record is one line of an evaluation-data JSONL file, e.g.
//
//	{"qid": 7803, "query": "Man in gray top walks from outside to inside.",
//	 "duration": 150, "vid": "RoripwjYFp8_360.0_510.0",
//	 "relevant_clip_ids": [13, 14, 15, 16, 17],
//	 "relevant_windows": [[26, 36]]}
type Record struct {
	QID             int64       `json:"qid"`
	Query           string      `json:"query"`
	Duration        float64     `json:"duration"`
	VID             string      `json:"vid"`
	RelevantClipIDs []int       `json:"relevant_clip_ids,omitempty"`
	RelevantWindows [][]float64 `json:"relevant_windows,omitempty"`
	SaliencyScores  [][]int     `json:"saliency_scores,omitempty"`
}

// Report summarizes a preflight pass over an evaluation-data file.
type Report struct {
	Path      string
	Records   int
	Malformed int
	// line numbers (1-based) of undecodable lines, capped at 20
	BadLines []int
}

const maxBadLines = 20

// buffer large enough for long saliency/window annotations
const maxLineBytes = 1 << 20

// ReadFile decodes a line-delimited JSON evaluation-data file.
// Blank lines are skipped; undecodable lines are dropped and counted in the
// report rather than aborting, so a partially corrupt file is still usable.
func ReadFile(path string) ([]Record, Report, error) {
	rep := Report{Path: path}
	f, err := os.Open(path)
	if err != nil {
		return nil, rep, fmt.Errorf("open eval data: %w", err)
	}
	defer f.Close()

	var records []Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" { continue }
		var r Record
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			rep.Malformed++
			if len(rep.BadLines) < maxBadLines {
				rep.BadLines = append(rep.BadLines, lineNo)
			}
			continue
		}
		records = append(records, r)
	}
	if err := sc.Err(); err != nil {
		return records, rep, fmt.Errorf("scan eval data: %w", err)
	}
	rep.Records = len(records)
	return records, rep, nil
}
