package ads

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bassamfouad/mouhajer-api/store"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)

	coll, err := store.Open[Advertisement](filepath.Join(t.TempDir(), "ads.json"), log)
	if err != nil {
		t.Fatalf("opening ads collection: %v", err)
	}
	return NewLedger(coll)
}

func newAd(cap *int) AdNew {
	return AdNew{
		Title:          Text{En: "Summer Sale", Ar: "تخفيضات الصيف"},
		Type:           MediaImage,
		ImageURL:       "https://cdn.example.com/sale.jpg",
		LinkURL:        "https://example.com/sale",
		Zone:           ZoneBanner,
		ShowOnAllPages: true,
		Priority:       5,
		MaxImpressions: cap,
		Active:         true,
	}
}

func intp(v int) *int { return &v }

func TestCreateGetRoundTrip(t *testing.T) {
	l := testLedger(t)

	created, err := l.Create(newAd(nil))
	if err != nil {
		t.Fatalf("creating ad: %v", err)
	}

	if created.ClickCount != 0 || created.ImpressionCount != 0 {
		t.Fatal("counters must start at zero")
	}

	got := l.Get(created.ID)
	if got == nil {
		t.Fatal("created ad not found by id")
	}
	if diff := cmp.Diff(created, *got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Fatalf("round trip mismatch (-created +got):\n%s", diff)
	}
}

func TestImpressionCapDeactivates(t *testing.T) {
	l := testLedger(t)

	a, err := l.Create(newAd(intp(3)))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := l.RecordImpression(a.ID); err != nil {
			t.Fatalf("impression %d: %v", i, err)
		}
	}

	if got := l.Get(a.ID); !got.Active {
		t.Fatal("ad must stay active one impression below the cap")
	}

	if err := l.RecordImpression(a.ID); err != nil {
		t.Fatal(err)
	}

	got := l.Get(a.ID)
	if got.Active {
		t.Fatal("ad must be deactivated when impressions reach the cap")
	}
	if got.ImpressionCount != 3 {
		t.Fatalf("expected 3 impressions, got %d", got.ImpressionCount)
	}

	// The cap only ever turns Active off; further impressions keep
	// counting without flipping anything back.
	if err := l.RecordImpression(a.ID); err != nil {
		t.Fatal(err)
	}
	got = l.Get(a.ID)
	if got.Active || got.ImpressionCount != 4 {
		t.Fatalf("expected inactive with 4 impressions, got active=%v count=%d", got.Active, got.ImpressionCount)
	}
}

func TestNoCapNeverDeactivates(t *testing.T) {
	l := testLedger(t)

	a, err := l.Create(newAd(nil))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 50; i++ {
		if err := l.RecordImpression(a.ID); err != nil {
			t.Fatal(err)
		}
	}

	got := l.Get(a.ID)
	if !got.Active {
		t.Fatal("ad without a cap must never auto-deactivate")
	}
	if got.ImpressionCount != 50 {
		t.Fatalf("expected 50 impressions, got %d", got.ImpressionCount)
	}
}

func TestClickLeavesImpressionsAndActiveAlone(t *testing.T) {
	l := testLedger(t)

	a, err := l.Create(newAd(intp(1)))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := l.RecordClick(a.ID); err != nil {
			t.Fatal(err)
		}
	}

	got := l.Get(a.ID)
	if got.ClickCount != 5 {
		t.Fatalf("expected 5 clicks, got %d", got.ClickCount)
	}
	if got.ImpressionCount != 0 {
		t.Fatalf("clicks must not move the impression counter, got %d", got.ImpressionCount)
	}
	if !got.Active {
		t.Fatal("clicks must never deactivate an ad")
	}
}

func TestRecordOnUnknownIDIsNoop(t *testing.T) {
	l := testLedger(t)

	if _, err := l.Create(newAd(nil)); err != nil {
		t.Fatal(err)
	}

	if err := l.RecordImpression("missing"); err != nil {
		t.Fatalf("impression on unknown id must be a no-op, got %v", err)
	}
	if err := l.RecordClick("missing"); err != nil {
		t.Fatalf("click on unknown id must be a no-op, got %v", err)
	}
}

func TestDeleteMissingLeavesCollectionUnchanged(t *testing.T) {
	l := testLedger(t)

	if _, err := l.Create(newAd(nil)); err != nil {
		t.Fatal(err)
	}

	before := len(l.List())
	removed, err := l.Delete("missing")
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("deleting an unknown id must report no removal")
	}
	if got := len(l.List()); got != before {
		t.Fatalf("collection length changed from %d to %d", before, got)
	}
}

func TestDelete(t *testing.T) {
	l := testLedger(t)

	a, err := l.Create(newAd(nil))
	if err != nil {
		t.Fatal(err)
	}

	removed, err := l.Delete(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Fatal("expected removal to be reported")
	}
	if l.Get(a.ID) != nil {
		t.Fatal("deleted ad still present")
	}
}

func TestUpdateMergesAndRefreshesUpdatedAt(t *testing.T) {
	l := testLedger(t)

	a, err := l.Create(newAd(nil))
	if err != nil {
		t.Fatal(err)
	}

	up := AdUp{
		Priority: intp(9),
		Active:   boolp(false),
	}
	got, err := l.Update(a.ID, up)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("update returned not found for an existing ad")
	}

	if got.Priority != 9 || got.Active {
		t.Fatalf("partial update not applied: priority=%d active=%v", got.Priority, got.Active)
	}
	if got.Title != a.Title || got.Zone != a.Zone {
		t.Fatal("untouched fields must survive a partial update")
	}
	if got.UpdatedAt.Before(a.UpdatedAt) {
		t.Fatal("update must refresh UpdatedAt")
	}
}

func TestUpdateUnknownIDReturnsNil(t *testing.T) {
	l := testLedger(t)

	got, err := l.Update("missing", AdUp{Priority: intp(2)})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("updating an unknown id must return nil")
	}
}

func TestWriteFailureSurfacesAndLeavesStateAlone(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not bind for root")
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)

	dir := t.TempDir()
	coll, err := store.Open[Advertisement](filepath.Join(dir, "ads.json"), log)
	if err != nil {
		t.Fatal(err)
	}
	l := NewLedger(coll)

	a, err := l.Create(newAd(intp(3)))
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	if err := l.RecordImpression(a.ID); err == nil {
		t.Fatal("impression against an unwritable store must return the write error")
	}
	if _, err := l.Create(newAd(nil)); err == nil {
		t.Fatal("create against an unwritable store must return the write error")
	}

	got := l.Get(a.ID)
	if got == nil || got.ImpressionCount != 0 || !got.Active {
		t.Fatalf("failed write must leave the record untouched: %+v", got)
	}
	if n := len(l.List()); n != 1 {
		t.Fatalf("failed create must not grow the collection, got %d records", n)
	}
}

func TestImpressionsSurviveReopen(t *testing.T) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)

	path := filepath.Join(t.TempDir(), "ads.json")

	coll, err := store.Open[Advertisement](path, log)
	if err != nil {
		t.Fatal(err)
	}
	l := NewLedger(coll)

	a, err := l.Create(newAd(nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := l.RecordImpression(a.ID); err != nil {
		t.Fatal(err)
	}

	reopened, err := store.Open[Advertisement](path, log)
	if err != nil {
		t.Fatal(err)
	}

	got := NewLedger(reopened).Get(a.ID)
	if got == nil || got.ImpressionCount != 1 {
		t.Fatalf("impression lost across reopen: %+v", got)
	}
}

func boolp(v bool) *bool { return &v }
