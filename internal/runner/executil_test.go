package runner

import (
	"bytes"
	"testing"
)

func TestStream(t *testing.T) {
	// ensure stream consumes a reader without panicking
	stream(bytes.NewBufferString("line1\nline2\n"))
}

func TestProcManagerKillAll(t *testing.T) {
	pm := NewProcManager()
	pm.Add(nil) // nil entries are tolerated
	if err := pm.KillAll(); err != nil {
		t.Fatalf("killall: %v", err)
	}
	// second call is a no-op on the drained list
	if err := pm.KillAll(); err != nil {
		t.Fatalf("killall again: %v", err)
	}
}
