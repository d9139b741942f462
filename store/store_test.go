package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	c, err := Open[record](path, testLogger())
	if err != nil {
		t.Fatalf("opening collection: %v", err)
	}

	if got := c.Load(); len(got) != 0 {
		t.Fatalf("new collection should be empty, got %d items", len(got))
	}

	want := []record{{ID: "a", Name: "first"}, {ID: "b", Name: "second"}}
	if err := c.Replace(want); err != nil {
		t.Fatalf("replacing collection: %v", err)
	}

	reopened, err := Open[record](path, testLogger())
	if err != nil {
		t.Fatalf("reopening collection: %v", err)
	}

	if diff := cmp.Diff(want, reopened.Load()); diff != "" {
		t.Fatalf("collection mismatch after reopen (-want +got):\n%s", diff)
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Open[record](path, testLogger())
	if err != nil {
		t.Fatalf("opening corrupt collection: %v", err)
	}

	if got := c.Load(); len(got) != 0 {
		t.Fatalf("corrupt collection should load empty, got %d items", len(got))
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	c, err := Open[record](path, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Replace([]record{{ID: "a"}}); err != nil {
		t.Fatal(err)
	}

	got := c.Load()
	got[0].ID = "mutated"

	if c.Load()[0].ID != "a" {
		t.Fatal("mutating a loaded slice must not affect the collection")
	}
}
