package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// All writes on a nil manager are no-ops
	if err := om.WriteFrame(FrameSample{}); err != nil {
		t.Errorf("WriteFrame on nil: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("expected empty dir, got %q", om.Dir())
	}
}

func TestOutputManager_HeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 0; i < 3; i++ {
		ev := SwitchEvent{Tick: uint64(i), From: "logo", To: "dna", Policy: "cycle"}
		if err := om.WriteSwitch(ev); err != nil {
			t.Fatalf("WriteSwitch: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "switches.csv"))
	if err != nil {
		t.Fatalf("open switches.csv: %v", err)
	}
	defer f.Close()

	var rows []SwitchEvent
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[2].Tick != 2 || rows[2].To != "dna" {
		t.Errorf("unexpected last row %+v", rows[2])
	}

	for _, name := range []string{"frames.csv", "windows.csv", "perf.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}
