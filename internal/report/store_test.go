package report

import (
	"fmt"
	"testing"
)

func sampleRecord(id string) *Record {
	return &Record{
		ID:       id,
		Tool:     "flake8",
		Target:   ".",
		ExitCode: 1,
		Passed:   false,
		Issues: []Issue{
			{File: "src/api/main.py", Line: 3, Col: 1, Code: "F401", Message: "'os' imported but unused"},
			{File: "src/api/main.py", Line: 12, Col: 80, Code: "E501", Message: "line too long (92 > 79 characters)"},
			{File: "src/api/models.py", Line: 7, Col: 5, Code: "E303", Message: "too many blank lines (3)"},
		},
	}
}

func TestDiskStore_RoundTrip(t *testing.T) {
	s := NewDiskStore()
	rec := sampleRecord("run-1")

	if err := s.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("run-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Tool != "flake8" || got.ExitCode != 1 || got.Passed {
		t.Errorf("Load = %+v, want saved record", got)
	}
	if len(got.Issues) != 3 {
		t.Errorf("len(Issues) = %d, want 3", len(got.Issues))
	}
}

func TestDiskStore_LoadMissing(t *testing.T) {
	s := NewDiskStore()
	if _, err := s.Load("no-such-run"); err == nil {
		t.Fatal("expected error for missing record")
	}
}

// countingStore counts backing-store loads to observe cache behaviour.
type countingStore struct {
	inner *DiskStore
	loads int
}

func (c *countingStore) Save(rec *Record) error { return c.inner.Save(rec) }

func (c *countingStore) Load(runID string) (*Record, error) {
	c.loads++
	return c.inner.Load(runID)
}

func TestLRUStore_CacheHit(t *testing.T) {
	back := &countingStore{inner: NewDiskStore()}
	s := NewLRUStore(2, back)

	if err := s.Save(sampleRecord("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load("a"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.loads != 0 {
		t.Errorf("backing loads = %d, want 0 (cache hit)", back.loads)
	}
}

func TestLRUStore_EvictionFallsBackToDisk(t *testing.T) {
	back := &countingStore{inner: NewDiskStore()}
	s := NewLRUStore(2, back)

	for i := 0; i < 3; i++ {
		if err := s.Save(sampleRecord(fmt.Sprintf("run-%d", i))); err != nil {
			t.Fatal(err)
		}
	}

	// run-0 was evicted; loading it must hit the backing store.
	got, err := s.Load("run-0")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != "run-0" {
		t.Errorf("ID = %q, want run-0", got.ID)
	}
	if back.loads != 1 {
		t.Errorf("backing loads = %d, want 1 (eviction)", back.loads)
	}

	// Second load is served from the cache again.
	if _, err := s.Load("run-0"); err != nil {
		t.Fatal(err)
	}
	if back.loads != 1 {
		t.Errorf("backing loads = %d, want 1 (promoted)", back.loads)
	}
}

func TestRecord_ByFile(t *testing.T) {
	rec := sampleRecord("r")
	got := rec.ByFile("src/api/main.py")
	if len(got) != 2 {
		t.Fatalf("len(ByFile) = %d, want 2", len(got))
	}
	if got[0].Code != "F401" || got[1].Code != "E501" {
		t.Errorf("ByFile codes = %q, %q, want F401, E501", got[0].Code, got[1].Code)
	}
	if rec.ByFile("nope.py") != nil {
		t.Error("ByFile(nope.py) should be nil")
	}
}

func TestRecord_Files(t *testing.T) {
	rec := sampleRecord("r")
	files := rec.Files()
	if len(files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(files))
	}
	if files[0] != "src/api/main.py" || files[1] != "src/api/models.py" {
		t.Errorf("Files = %v, want first-seen order", files)
	}
}
