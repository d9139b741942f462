package product

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bassamfouad/mouhajer-api/store"
	"github.com/sirupsen/logrus"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)

	coll, err := store.Open[Product](filepath.Join(t.TempDir(), "products.json"), log)
	if err != nil {
		t.Fatalf("opening products collection: %v", err)
	}
	return NewCatalog(coll)
}

func newSideboard() ProductNew {
	return ProductNew{
		Name:     Text{En: "Oak Sideboard", Ar: "خزانة جانبية من البلوط"},
		Price:    18500,
		Currency: "AED",
		Category: "storage",
		Colors:   []Variant{{Name: "Natural", Hex: "#c19a6b"}},
		InStock:  true,
	}
}

func intp(v int) *int { return &v }

func TestCreateAndGet(t *testing.T) {
	c := testCatalog(t)

	p, err := c.Create(newSideboard())
	if err != nil {
		t.Fatalf("creating product: %v", err)
	}

	got := c.Get(p.ID)
	if got == nil {
		t.Fatal("created product not found")
	}
	if got.Name.En != "Oak Sideboard" || got.Price != 18500 {
		t.Fatalf("unexpected product: %+v", got)
	}

	if c.Get("missing") != nil {
		t.Fatal("unknown id must return nil")
	}
}

func TestUpdatePartial(t *testing.T) {
	c := testCatalog(t)

	p, err := c.Create(newSideboard())
	if err != nil {
		t.Fatal(err)
	}

	sale := intp(15000)
	got, err := c.Update(p.ID, ProductUp{SalePrice: sale})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("update returned not found for an existing product")
	}

	if got.SalePrice == nil || *got.SalePrice != 15000 {
		t.Fatalf("sale price not applied: %+v", got.SalePrice)
	}
	if got.Price != p.Price || got.Name != p.Name {
		t.Fatal("untouched fields must survive a partial update")
	}
}

func TestUpdateUnknownReturnsNil(t *testing.T) {
	c := testCatalog(t)

	got, err := c.Update("missing", ProductUp{Price: intp(1)})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("updating an unknown id must return nil")
	}
}

func TestDelete(t *testing.T) {
	c := testCatalog(t)

	p, err := c.Create(newSideboard())
	if err != nil {
		t.Fatal(err)
	}

	removed, err := c.Delete(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Fatal("expected removal to be reported")
	}

	removed, err = c.Delete(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("second delete must report no removal")
	}
}
