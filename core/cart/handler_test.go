package cart_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/bassamfouad/mouhajer-api/api/middleware"
	"github.com/bassamfouad/mouhajer-api/api/web"
	"github.com/bassamfouad/mouhajer-api/core/auth"
	"github.com/bassamfouad/mouhajer-api/core/cart"
	"github.com/bassamfouad/mouhajer-api/core/product"
	"github.com/bassamfouad/mouhajer-api/store"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type cartEnv struct {
	server  *httptest.Server
	client  *http.Client
	catalog *product.Catalog
}

func newCartEnv(t *testing.T) *cartEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)

	coll, err := store.Open[product.Product](filepath.Join(t.TempDir(), "products.json"), log)
	if err != nil {
		t.Fatalf("opening products collection: %v", err)
	}
	catalog := product.NewCatalog(coll)

	sm := scs.New()
	st := &cart.SessionStore{Session: sm, Log: log}

	r := mux.NewRouter()
	handle := func(method, path string, h web.Handler) {
		h = web.WrapMiddleware([]web.Middleware{
			auth.LoadAndSave(sm),
			middleware.Errors(log),
		}, h)

		r.Handle(path, http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
			if err := h(rq.Context(), w, rq); err != nil {
				t.Errorf("handler %s %s: %v", method, path, err)
			}
		})).Methods(method)
	}

	handle(http.MethodGet, "/cart", cart.HandleShow(st))
	handle(http.MethodDelete, "/cart", cart.HandleClear(st))
	handle(http.MethodPut, "/cart/items", cart.HandleAddItem(st, catalog))
	handle(http.MethodPut, "/cart/items/{product_id}/{color}", cart.HandleUpdateItem(st))
	handle(http.MethodDelete, "/cart/items/{product_id}/{color}", cart.HandleDeleteItem(st))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	return &cartEnv{
		server:  server,
		client:  &http.Client{Jar: jar},
		catalog: catalog,
	}
}

func (e *cartEnv) do(t *testing.T, method, path string, body interface{}, wantStatus int) cart.View {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d", method, path, resp.StatusCode, wantStatus)
	}

	var view cart.View
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
			t.Fatalf("decoding cart view: %v", err)
		}
	}
	return view
}

func TestCartFlowAcrossRequests(t *testing.T) {
	env := newCartEnv(t)

	armchair, err := env.catalog.Create(product.ProductNew{
		Name:     product.Text{En: "Velvet Armchair", Ar: "كرسي مخملي"},
		Price:    12000,
		Currency: "AED",
		Category: "seating",
		Colors: []product.Variant{
			{Name: "Emerald", Hex: "#0f5d4e"},
			{Name: "Sand", Hex: "#d9c7a7"},
		},
		InStock: true,
	})
	if err != nil {
		t.Fatalf("seeding catalog: %v", err)
	}

	view := env.do(t, http.MethodGet, "/cart", nil, http.StatusOK)
	if view.TotalItems != 0 {
		t.Fatalf("fresh session cart not empty: %+v", view)
	}

	add := cart.ItemNew{ProductID: armchair.ID, Color: "Emerald", Quantity: 2}
	view = env.do(t, http.MethodPut, "/cart/items", add, http.StatusOK)
	if view.TotalItems != 2 || view.TotalPrice != 24000 {
		t.Fatalf("after add: items=%d price=%d", view.TotalItems, view.TotalPrice)
	}
	if !view.Open {
		t.Fatal("adding an item must open the cart")
	}

	// Same pair merges into the existing line, across requests.
	add.Quantity = 1
	view = env.do(t, http.MethodPut, "/cart/items", add, http.StatusOK)
	if len(view.Items) != 1 || view.TotalItems != 3 {
		t.Fatalf("after merge: lines=%d items=%d", len(view.Items), view.TotalItems)
	}

	// The session cookie carries the cart into a fresh request.
	view = env.do(t, http.MethodGet, "/cart", nil, http.StatusOK)
	if view.TotalItems != 3 {
		t.Fatalf("cart did not survive the session round trip: %+v", view)
	}

	itemPath := fmt.Sprintf("/cart/items/%s/%s", armchair.ID, "Emerald")
	view = env.do(t, http.MethodPut, itemPath, cart.QuantityUp{Quantity: 0}, http.StatusOK)
	if view.TotalItems != 0 {
		t.Fatalf("update to zero must remove the line: %+v", view)
	}

	env.do(t, http.MethodPut, "/cart/items", cart.ItemNew{ProductID: armchair.ID, Color: "Sand", Quantity: 1}, http.StatusOK)
	env.do(t, http.MethodDelete, "/cart", nil, http.StatusNoContent)

	view = env.do(t, http.MethodGet, "/cart", nil, http.StatusOK)
	if view.TotalItems != 0 || view.TotalPrice != 0 {
		t.Fatalf("cleared cart must be empty: %+v", view)
	}
}
