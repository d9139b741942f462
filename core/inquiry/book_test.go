package inquiry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bassamfouad/mouhajer-api/store"
	"github.com/sirupsen/logrus"
)

func testBook(t *testing.T) *Book {
	t.Helper()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)

	coll, err := store.Open[Inquiry](filepath.Join(t.TempDir(), "inquiries.json"), log)
	if err != nil {
		t.Fatalf("opening inquiries collection: %v", err)
	}
	return NewBook(coll)
}

func TestCreateStampsReferenceAndStatus(t *testing.T) {
	b := testBook(t)

	q, err := b.Create(InquiryNew{
		Name:    "Leila Haddad",
		Email:   "leila@example.com",
		Message: "Looking for a full villa fit-out quote.",
	})
	if err != nil {
		t.Fatalf("creating inquiry: %v", err)
	}

	if !strings.HasPrefix(q.Reference, "INQ-") || len(q.Reference) != 10 {
		t.Fatalf("unexpected reference %q", q.Reference)
	}
	if q.Status != StatusNew {
		t.Fatalf("new inquiry must start in %q, got %q", StatusNew, q.Status)
	}
	if q.Locale != "en" {
		t.Fatalf("missing locale must default to en, got %q", q.Locale)
	}
}

func TestUpdateStatus(t *testing.T) {
	b := testBook(t)

	q, err := b.Create(InquiryNew{
		Name:    "Omar Said",
		Email:   "omar@example.com",
		Message: "Interested in the marble dining table.",
		Locale:  "ar",
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := b.UpdateStatus(q.ID, StatusContacted)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Status != StatusContacted {
		t.Fatalf("status not updated: %+v", got)
	}

	missing, err := b.UpdateStatus("missing", StatusClosed)
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Fatal("updating an unknown id must return nil")
	}
}
