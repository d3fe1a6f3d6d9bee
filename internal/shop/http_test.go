package shop_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"DragonMart/internal/blob"
	"DragonMart/internal/shop"
)

func newStorefrontTS(t *testing.T) *httptest.Server {
	t.Helper()

	engine := shop.New(context.Background(), shop.Deps{
		Store: blob.NewMemStore(),
		Log:   zap.NewNop(),
	})
	s := &shop.Server{Shop: engine, Log: zap.NewNop()}

	h := shop.NewHandler(s, shop.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "storefront",
		// Registry: nil
	})

	return httptest.NewServer(h)
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestPublicAPI_BrowseCartCheckout(t *testing.T) {
	ts := newStorefrontTS(t)
	defer ts.Close()

	// The demo catalog serves the first run.
	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/products?sort=price_asc", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("products: status %d", resp.StatusCode)
	}
	var products []struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal(raw, &products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("want 3 demo products, got %d", len(products))
	}
	for i := 1; i < len(products); i++ {
		if products[i].Price < products[i-1].Price {
			t.Fatalf("price_asc not sorted: %v", products)
		}
	}

	// Fill the cart.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/cart/"+products[0].ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add to cart: status %d", resp.StatusCode)
	}

	// Checkout without a session is refused and changes nothing.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/checkout", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("checkout without session: status %d", resp.StatusCode)
	}
	resp, raw = doJSON(t, http.MethodGet, ts.URL+"/cart", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cart: status %d", resp.StatusCode)
	}
	var view struct {
		Count    int     `json:"count"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := json.Unmarshal(raw, &view); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if view.Count != 1 {
		t.Fatalf("cart count after refused checkout: %d", view.Count)
	}

	// Sign in and retry.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/session", map[string]string{
		"name": "Hanif", "email": "hanif@example.com",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}

	resp, raw = doJSON(t, http.MethodPost, ts.URL+"/checkout", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("checkout: status %d body %s", resp.StatusCode, raw)
	}
	var placed struct {
		ID     string  `json:"id"`
		Total  float64 `json:"total"`
		Status string  `json:"status"`
	}
	if err := json.Unmarshal(raw, &placed); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if placed.Status != "Processing" || placed.Total != view.Subtotal {
		t.Fatalf("unexpected order %+v (want subtotal %v)", placed, view.Subtotal)
	}

	resp, raw = doJSON(t, http.MethodGet, ts.URL+"/orders", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("orders: status %d", resp.StatusCode)
	}
	var orders []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &orders); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != placed.ID {
		t.Fatalf("orders after checkout: %+v", orders)
	}
}

func TestPublicAPI_AdminProductLifecycle(t *testing.T) {
	ts := newStorefrontTS(t)
	defer ts.Close()

	create := map[string]any{
		"title":    "USB-C Dock",
		"category": "Electronics",
		"price":    249.0,
		"stock":    8,
		"prime":    true,
		"img":      "https://cdn.example/dock.jpg",
		"images":   []string{"https://cdn.example/dock-side.jpg", ""},
		"videos":   []string{"https://cdn.example/dock.mp4"},
		"desc":     "Single-cable desk setup.",
	}

	// Customers cannot reach the admin surface.
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/session", map[string]string{
		"email": "shopper@example.com", "role": "customer",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/products", create)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer create: status %d", resp.StatusCode)
	}

	// Admins can.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/session", map[string]string{
		"email": "admin@example.com", "role": "admin",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login: status %d", resp.StatusCode)
	}

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/products", create)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d body %s", resp.StatusCode, raw)
	}
	var created struct {
		ID      string   `json:"id"`
		Rating  float64  `json:"rating"`
		Reviews int      `json:"reviews"`
		Images  []string `json:"images"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.Reviews != 0 || created.Rating != 4.4 {
		t.Fatalf("new-product defaults not applied: %+v", created)
	}
	if len(created.Images) != 2 {
		t.Fatalf("blank image not stripped: %v", created.Images)
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/products/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}

	// Deleting again stays a no-op, not an error.
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/products/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("repeat delete: status %d", resp.StatusCode)
	}
}

func TestPublicAPI_BadCriteriaRejected(t *testing.T) {
	ts := newStorefrontTS(t)
	defer ts.Close()

	for _, q := range []string{
		"?sort=cheapest",
		"?category=Gadgets",
		"?max_price=lots",
		"?prime=maybe",
	} {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+"/products"+q, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: status %d", q, resp.StatusCode)
		}
	}
}

func TestPublicAPI_SessionEndpoints(t *testing.T) {
	ts := newStorefrontTS(t)
	defer ts.Close()

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/session", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("logged-out session: status %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/session", map[string]string{"email": ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty email: status %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/session", map[string]string{
		"email": "x@example.com", "role": "root",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad role: status %d", resp.StatusCode)
	}

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/session", map[string]string{
		"email": "X@Example.com",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	var sess struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(raw, &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if sess.Email != "x@example.com" || sess.Role != "customer" {
		t.Fatalf("unexpected session %+v", sess)
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/session", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: status %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/session", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("session after logout: status %d", resp.StatusCode)
	}
}
