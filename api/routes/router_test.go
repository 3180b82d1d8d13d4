package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/keepstockhq/keepstock-backend/internal/auth"
	"github.com/keepstockhq/keepstock-backend/internal/inventory"
	"github.com/keepstockhq/keepstock-backend/internal/reports"
	"github.com/keepstockhq/keepstock-backend/internal/seed"
	"github.com/keepstockhq/keepstock-backend/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "8080", LogLevel: "error"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "keepstock",
			ExpirationMinutes: 60,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8192,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		Inventory: config.InventoryConfig{LowStockThreshold: 10, RecentBoxesLimit: 5},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := testConfig()

	seedData := inventory.SeedData{
		Products: []inventory.Product{
			{SKU: "101001", Name: "Basic Crew Tee", Price: 499, Rack: "A1", Department: "T-Shirts"},
			{SKU: "102001", Name: "Slim Fit Jeans", Price: 1299, Rack: "B2", Department: "Jeans"},
		},
		Stores: []inventory.Store{
			{Code: "XPTN", Name: "XPTN Store"},
			{Code: "XPDN", Name: "XPDN Store"},
		},
		StockItems: []inventory.StockItem{
			{ID: "xpdn-1", SKU: "101001", Quantity: 7, BoxNumber: "XPDN-BOX-001", Timestamp: "2026-01-05T09:00:00Z", StoreName: "XPDN Store"},
		},
	}

	repo, err := inventory.NewFileStore(t.TempDir(), seedData, nil)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	inventoryService, err := inventory.NewService(repo)
	if err != nil {
		t.Fatalf("inventory.NewService: %v", err)
	}
	reportsService, err := reports.NewService(inventoryService)
	if err != nil {
		t.Fatalf("reports.NewService: %v", err)
	}

	creds, err := auth.NewSeedCredentials([]seed.User{
		{Username: "XPTN", Password: "@JC5008", Store: "XPTN Store"},
		{Username: "XPDN", Password: "@JC5009", Store: "XPDN Store"},
	}, cfg.Password)
	if err != nil {
		t.Fatalf("NewSeedCredentials: %v", err)
	}
	sessions, err := auth.NewFileSessionStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSessionStore: %v", err)
	}
	authService, err := auth.NewService(creds, sessions, cfg.JWT)
	if err != nil {
		t.Fatalf("auth.NewService: %v", err)
	}

	server := httptest.NewServer(NewRouter(cfg, nil, authService, inventoryService, reportsService))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	envelope := map[string]json.RawMessage{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp, envelope
}

func login(t *testing.T, server *httptest.Server) string {
	t.Helper()
	return loginAs(t, server, "XPTN", "@JC5008", "XPTN Store")
}

func loginAs(t *testing.T, server *httptest.Server, username, password, wantStore string) string {
	t.Helper()

	resp, envelope := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}

	var data struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Store    string `json:"store"`
		} `json:"user"`
	}
	if err := json.Unmarshal(envelope["data"], &data); err != nil {
		t.Fatalf("decoding login data: %v", err)
	}
	if data.Token == "" || data.User.Store != wantStore {
		t.Fatalf("unexpected login payload %+v", data)
	}
	return data.Token
}

func TestHealthLive(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health/live")
	if err != nil {
		t.Fatalf("GET /health/live: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	server := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", "", map[string]string{
		"username": "XPTN",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	var apiErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope["error"], &apiErr); err != nil {
		t.Fatalf("decoding error: %v", err)
	}
	if apiErr.Code != "UNAUTHORIZED" || apiErr.Message != "invalid credentials" {
		t.Fatalf("unexpected error payload %+v", apiErr)
	}
}

func TestLoginValidatesBody(t *testing.T) {
	server := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", "", map[string]string{
		"username": "XPTN",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var apiErr struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(envelope["error"], &apiErr); err != nil {
		t.Fatalf("decoding error: %v", err)
	}
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q", apiErr.Code)
	}
	if apiErr.Details["password"] == "" {
		t.Fatalf("expected a detail for the password field, got %+v", apiErr.Details)
	}
}

func TestAuthenticatedRoutesRejectAnonymous(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{
		"/api/v1/stock",
		"/api/v1/refills",
		"/api/v1/products",
		"/api/v1/boxes",
		"/api/v1/reports/summary",
	} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("GET %s status = %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestStockLifecycleOverHTTP(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server)

	resp, envelope := doJSON(t, http.MethodPost, server.URL+"/api/v1/stock", token, map[string]any{
		"sku":        "101001",
		"quantity":   20,
		"box_number": "XPTN-BOX-001",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}

	var created inventory.StockItem
	if err := json.Unmarshal(envelope["data"], &created); err != nil {
		t.Fatalf("decoding created item: %v", err)
	}
	if created.ID == "" || created.StoreName != "XPTN Store" {
		t.Fatalf("unexpected created item %+v", created)
	}

	resp, envelope = doJSON(t, http.MethodGet, server.URL+"/api/v1/stock", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var items []inventory.StockItem
	if err := json.Unmarshal(envelope["data"], &items); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("unexpected list %+v", items)
	}

	resp, _ = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/v1/stock/%s", server.URL, created.ID), token, map[string]any{
		"quantity": 35,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPatch, server.URL+"/api/v1/stock/does-not-exist", token, map[string]any{
		"quantity": 35,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("update of unknown id status = %d, want 404", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/stock/%s", server.URL, created.ID), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	// Delete is idempotent: repeating it succeeds.
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/stock/%s", server.URL, created.ID), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("repeated delete status = %d", resp.StatusCode)
	}
}

func TestStockCreateValidation(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing sku", map[string]any{"quantity": 5, "box_number": "XPTN-BOX-001"}},
		{"zero quantity", map[string]any{"sku": "101001", "quantity": 0, "box_number": "XPTN-BOX-001"}},
		{"unknown field", map[string]any{"sku": "101001", "quantity": 5, "box_number": "XPTN-BOX-001", "bogus": true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/stock", token, tc.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestBoxAllocationOverHTTP(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server)

	resp, envelope := doJSON(t, http.MethodPost, server.URL+"/api/v1/boxes/next", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("next status = %d", resp.StatusCode)
	}
	var next struct {
		BoxNumber string `json:"box_number"`
	}
	if err := json.Unmarshal(envelope["data"], &next); err != nil {
		t.Fatalf("decoding next box: %v", err)
	}
	if next.BoxNumber != "XPTN-BOX-001" {
		t.Fatalf("first allocation = %q, want XPTN-BOX-001", next.BoxNumber)
	}

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/stock", token, map[string]any{
		"sku":        "101001",
		"quantity":   20,
		"box_number": next.BoxNumber,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	resp, envelope = doJSON(t, http.MethodPost, server.URL+"/api/v1/boxes/next", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("next status = %d", resp.StatusCode)
	}
	if err := json.Unmarshal(envelope["data"], &next); err != nil {
		t.Fatalf("decoding next box: %v", err)
	}
	if next.BoxNumber != "XPTN-BOX-002" {
		t.Fatalf("second allocation = %q, want XPTN-BOX-002", next.BoxNumber)
	}
}

func TestBoxLabelOverHTTP(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/stock", token, map[string]any{
		"sku":        "102001",
		"quantity":   8,
		"box_number": "XPTN-BOX-001",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	resp, envelope := doJSON(t, http.MethodGet, server.URL+"/api/v1/boxes/XPTN-BOX-001/label", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("label status = %d", resp.StatusCode)
	}
	var label inventory.BoxLabel
	if err := json.Unmarshal(envelope["data"], &label); err != nil {
		t.Fatalf("decoding label: %v", err)
	}
	if label.ProductName != "Slim Fit Jeans" || label.Department != "Jeans" || label.Quantity != 8 {
		t.Fatalf("unexpected label %+v", label)
	}

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/boxes/XPTN-BOX-404/label", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown box label status = %d, want 404", resp.StatusCode)
	}
}

func TestReportsOverHTTP(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server)

	for _, body := range []map[string]any{
		{"sku": "101001", "quantity": 20, "box_number": "XPTN-BOX-001"},
		{"sku": "102001", "quantity": 5, "box_number": "XPTN-BOX-002"},
	} {
		resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/stock", token, body)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create status = %d", resp.StatusCode)
		}
	}

	resp, envelope := doJSON(t, http.MethodGet, server.URL+"/api/v1/reports/summary", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary status = %d", resp.StatusCode)
	}
	var summary reports.Summary
	if err := json.Unmarshal(envelope["data"], &summary); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if summary.TotalStock != 25 || summary.UniqueBoxes != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	resp, envelope = doJSON(t, http.MethodGet, server.URL+"/api/v1/reports/low-stock?threshold=10", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("low stock status = %d", resp.StatusCode)
	}
	var low []inventory.StockItem
	if err := json.Unmarshal(envelope["data"], &low); err != nil {
		t.Fatalf("decoding low stock: %v", err)
	}
	if len(low) != 1 || low[0].SKU != "102001" {
		t.Fatalf("unexpected low stock %+v", low)
	}

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/reports/low-stock?threshold=banana", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad threshold status = %d, want 400", resp.StatusCode)
	}
}

func TestMutationsScopedToAuthenticatedStore(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server)

	// The seeded record belongs to XPDN; the XPTN account must not be
	// able to reach it.
	resp, _ := doJSON(t, http.MethodPatch, server.URL+"/api/v1/stock/xpdn-1", token, map[string]any{
		"quantity": 99,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign update status = %d, want 404", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/stock/xpdn-1", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("foreign delete status = %d, want 200", resp.StatusCode)
	}

	otherToken := loginAs(t, server, "XPDN", "@JC5009", "XPDN Store")
	resp, envelope := doJSON(t, http.MethodGet, server.URL+"/api/v1/stock", otherToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var items []inventory.StockItem
	if err := json.Unmarshal(envelope["data"], &items); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(items) != 1 || items[0].ID != "xpdn-1" || items[0].Quantity != 7 {
		t.Fatalf("foreign mutation touched the record: %+v", items)
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/session", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("pre-login session status = %d, want 404", resp.StatusCode)
	}

	login(t, server)

	resp, envelope := doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/session", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session status = %d", resp.StatusCode)
	}
	var identity struct {
		Username string `json:"username"`
		Store    string `json:"store"`
	}
	if err := json.Unmarshal(envelope["data"], &identity); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	if identity.Store != "XPTN Store" {
		t.Fatalf("unexpected session %+v", identity)
	}

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/logout", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/session", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("post-logout session status = %d, want 404", resp.StatusCode)
	}
}
