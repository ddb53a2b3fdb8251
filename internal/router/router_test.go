package router

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/config"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/infra"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func init() { gin.SetMode(gin.TestMode) }

func testConfig() *config.Config {
	return &config.Config{
		Env:                      "test",
		StoreDriver:              infra.DriverMemory,
		ShopName:                 "ராஜா ஸ்நாக்ஸ் / RAJA SNACKS",
		DefaultLanguage:          "english",
		SeedSampleCatalog:        true,
		EnableBillLog:            true,
		EnableKeyboardNavigation: true,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(cfg, infra.NewMemoryStore(), node)
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

type productJSON struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameLocalized string `json:"nameLocalized"`
	Price         string `json:"price"`
}

type draftJSON struct {
	ID   string `json:"id"`
	Bill struct {
		CustomerName string `json:"customerName"`
		Items        []struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Quantity  int    `json:"quantity"`
			LineTotal string `json:"lineTotal"`
		} `json:"items"`
	} `json:"bill"`
	Search struct {
		Query       string        `json:"query"`
		Suggestions []productJSON `json:"suggestions"`
		Highlight   int           `json:"highlight"`
		Selected    *productJSON  `json:"selected"`
	} `json:"search"`
	EditingLineID *string `json:"editingLineId"`
	Table         struct {
		Empty        bool   `json:"empty"`
		EmptyMessage string `json:"emptyMessage"`
		Rows         []struct {
			Serial  int      `json:"serial"`
			Name    string   `json:"name"`
			Editing bool     `json:"editing"`
			Actions []string `json:"actions"`
		} `json:"rows"`
	} `json:"table"`
	Total string `json:"total"`
}

func createDraft(t *testing.T, r http.Handler) draftJSON {
	t.Helper()
	w := do(t, r, http.MethodPost, "/v1/billing/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var d draftJSON
	decodeJSON(t, w, &d)
	return d
}

func catalogByName(t *testing.T, r http.Handler) map[string]productJSON {
	t.Helper()
	w := do(t, r, http.MethodGet, "/v1/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []productJSON
	decodeJSON(t, w, &list)
	out := make(map[string]productJSON, len(list))
	for _, p := range list {
		out[p.Name] = p
	}
	return out
}

// ── Ambient endpoints ────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	r := newTestServer(t, testConfig())
	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"store":"connected","driver":"memory"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestShell(t *testing.T) {
	r := newTestServer(t, testConfig())

	w := do(t, r, http.MethodGet, "/v1/shell?lang=tamil", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var shell struct {
		ShopName  string            `json:"shopName"`
		Language  string            `json:"language"`
		Languages []string          `json:"languages"`
		Labels    map[string]string `json:"labels"`
	}
	decodeJSON(t, w, &shell)
	assert.Equal(t, "ராஜா ஸ்நாக்ஸ்", shell.ShopName)
	assert.Equal(t, "tamil", shell.Language)
	assert.Equal(t, []string{"english", "tamil"}, shell.Languages)
	assert.Equal(t, "பொருட்கள்", shell.Labels["stock"])

	w = do(t, r, http.MethodGet, "/v1/shell?lang=klingon", nil)
	decodeJSON(t, w, &shell)
	assert.Equal(t, "english", shell.Language)
	assert.Equal(t, "RAJA SNACKS", shell.ShopName)
}

// ── Stock screen ─────────────────────────────────────────────────────────────

func TestCatalogCRUD(t *testing.T) {
	r := newTestServer(t, testConfig())

	w := do(t, r, http.MethodPost, "/v1/catalog", map[string]any{"name": "Tea", "nameLocalized": "தேநீர்", "price": "12.5"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tea productJSON
	decodeJSON(t, w, &tea)
	assert.NotEmpty(t, tea.ID)
	assert.Equal(t, "12.5", tea.Price)

	w = do(t, r, http.MethodPost, "/v1/catalog", map[string]any{"name": "", "price": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, "/v1/catalog", map[string]any{"name": "Coffee", "price": "abc"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	decodeJSON(t, w, &verr)
	assert.Contains(t, verr.Fields, "price")

	w = do(t, r, http.MethodPut, "/v1/catalog/"+tea.ID, map[string]any{"price": 15})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &tea)
	assert.Equal(t, "15", tea.Price)
	assert.Equal(t, "தேநீர்", tea.NameLocalized)

	w = do(t, r, http.MethodPut, "/v1/catalog/12345", map[string]any{"price": 15})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodPut, "/v1/catalog/not-an-id", map[string]any{"price": 15})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodDelete, "/v1/catalog/"+tea.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodDelete, "/v1/catalog/"+tea.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, catalogByName(t, r))
}

func TestCatalogCSV(t *testing.T) {
	r := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/v1/catalog/import",
		strings.NewReader("id,name,name_localized,price\n,Rice,அரிசி,50\n,Oil,,120\n"))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"created":2,"updated":0,"total":2}`, w.Body.String())

	// multipart upload of an update
	rice := catalogByName(t, r)["Rice"]
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("id,name,name_localized,price\n" + rice.ID + ",Rice,அரிசி,55\n"))
	require.NoError(t, mw.Close())
	req = httptest.NewRequest(http.MethodPost, "/v1/catalog/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"created":0,"updated":1,"total":2}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/v1/catalog/export.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), rice.ID+",Rice,அரிசி,55.00")
	assert.Contains(t, w.Body.String(), ",Oil,,120.00")

	req = httptest.NewRequest(http.MethodPost, "/v1/catalog/import",
		strings.NewReader("id,name,name_localized,price\n,Salt,,\n"))
	req.Header.Set("Content-Type", "text/csv")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// ── Billing screen ───────────────────────────────────────────────────────────

func TestBillingFlow(t *testing.T) {
	r := newTestServer(t, testConfig())

	d := createDraft(t, r)
	assert.True(t, d.Table.Empty)
	assert.Equal(t, "No items added to bill", d.Table.EmptyMessage)
	assert.Equal(t, "₹0.00", d.Total)
	base := "/v1/billing/drafts/" + d.ID

	// the empty catalog was seeded on first use
	products := catalogByName(t, r)
	require.Contains(t, products, "Rice")
	rice, oil := products["Rice"], products["Oil"]

	w := do(t, r, http.MethodGet, base+"/suggestions?q=RICE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &d)
	require.Len(t, d.Search.Suggestions, 1)
	assert.Equal(t, rice.ID, d.Search.Suggestions[0].ID)

	w = do(t, r, http.MethodPost, base+"/select", map[string]any{"productId": rice.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, r, http.MethodPost, base+"/lines", map[string]any{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &d)
	require.Len(t, d.Bill.Items, 1)
	assert.Equal(t, "150", d.Bill.Items[0].LineTotal)
	assert.Equal(t, "₹150.00", d.Total)
	assert.Nil(t, d.Search.Selected)
	riceLine := d.Bill.Items[0].ID

	w = do(t, r, http.MethodPost, base+"/lines", map[string]any{"productId": oil.ID, "quantity": "1"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &d)
	require.Len(t, d.Table.Rows, 2)
	assert.Equal(t, 2, d.Table.Rows[1].Serial)
	oilLine := d.Bill.Items[1].ID

	// a quantity wider than int64 is rejected instead of wrapping
	w = do(t, r, http.MethodPost, base+"/lines", map[string]any{"productId": oil.ID, "quantity": "18446744073709551621"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = do(t, r, http.MethodGet, base, nil)
	decodeJSON(t, w, &d)
	assert.Len(t, d.Bill.Items, 2)

	// single edit in flight
	w = do(t, r, http.MethodPost, base+"/lines/"+riceLine+"/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &d)
	require.NotNil(t, d.EditingLineID)
	assert.Equal(t, riceLine, *d.EditingLineID)
	assert.Equal(t, []string{"save", "cancel"}, d.Table.Rows[0].Actions)
	assert.Equal(t, []string{"edit", "remove"}, d.Table.Rows[1].Actions)

	w = do(t, r, http.MethodPost, base+"/lines/"+oilLine+"/edit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPut, base+"/lines/"+riceLine, map[string]any{"quantity": 5, "unitPrice": "50"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &d)
	assert.Nil(t, d.EditingLineID)
	assert.Equal(t, "₹370.00", d.Total)

	w = do(t, r, http.MethodPost, base+"/lines/"+oilLine+"/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, base+"/edit/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &d)
	assert.Nil(t, d.EditingLineID)

	w = do(t, r, http.MethodDelete, base+"/lines/"+oilLine, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &d)
	assert.Equal(t, "₹250.00", d.Total)
	w = do(t, r, http.MethodDelete, base+"/lines/"+oilLine, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// documents need customer details first
	w = do(t, r, http.MethodGet, base+"/print", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = do(t, r, http.MethodGet, base+"/pdf", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPut, base+"/customer", map[string]any{"customerName": "Kumar", "customerMobile": "9876543210", "date": "2024-03-01"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, r, http.MethodPut, base+"/customer", map[string]any{"date": "01/03/2024"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodGet, base+"/print?lang=tamil", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "அரிசி")
	assert.Contains(t, w.Body.String(), "₹250.00")

	w = do(t, r, http.MethodGet, base+"/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Kumar_2024-03-01_bill.pdf")
	assert.Equal(t, "true", w.Header().Get("X-Font-Fallback"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	// without the Tamil font a Tamil export comes out in English
	w = do(t, r, http.MethodGet, base+"/pdf?lang=tamil", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Font-Fallback"))
	assert.Equal(t, "english", w.Header().Get("X-Document-Language"))

	// save closes the draft and lands in the log
	w = do(t, r, http.MethodPost, base+"/save", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var snap struct {
		ID    string `json:"id"`
		Total string `json:"total"`
	}
	decodeJSON(t, w, &snap)
	assert.Equal(t, "250", snap.Total)

	w = do(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/v1/bills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bills []struct {
		ID    string `json:"id"`
		Total string `json:"total"`
		Items int    `json:"items"`
	}
	decodeJSON(t, w, &bills)
	require.Len(t, bills, 1)
	assert.Equal(t, snap.ID, bills[0].ID)
	assert.Equal(t, "250.00", bills[0].Total)

	w = do(t, r, http.MethodGet, "/v1/bills/"+snap.ID+"/pdf?lang=tamil", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}

func TestKeyboardNavigation(t *testing.T) {
	r := newTestServer(t, testConfig())
	d := createDraft(t, r)
	base := "/v1/billing/drafts/" + d.ID

	do(t, r, http.MethodGet, base+"/suggestions?q=i", nil) // Rice, Oil
	do(t, r, http.MethodPost, base+"/navigate", map[string]any{"key": "up"})
	w := do(t, r, http.MethodPost, base+"/navigate", map[string]any{"key": "enter"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeJSON(t, w, &d)
	require.NotNil(t, d.Search.Selected)
	assert.Equal(t, "Oil", d.Search.Selected.Name)

	w = do(t, r, http.MethodPost, base+"/navigate", map[string]any{"key": "left"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	cfg := testConfig()
	cfg.EnableKeyboardNavigation = false
	r = newTestServer(t, cfg)
	d = createDraft(t, r)
	w = do(t, r, http.MethodPost, "/v1/billing/drafts/"+d.ID+"/navigate", map[string]any{"key": "down"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDraftLanguageAndDiscard(t *testing.T) {
	r := newTestServer(t, testConfig())
	d := createDraft(t, r)
	base := "/v1/billing/drafts/" + d.ID

	rice := catalogByName(t, r)["Rice"]
	do(t, r, http.MethodPost, base+"/lines", map[string]any{"productId": rice.ID, "quantity": 1})

	w := do(t, r, http.MethodGet, base+"?lang=tamil", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &d)
	assert.Equal(t, "அரிசி", d.Table.Rows[0].Name)

	w = do(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/v1/billing/drafts/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EnableBillLog = false
	r := newTestServer(t, cfg)
	d := createDraft(t, r)
	base := "/v1/billing/drafts/" + d.ID

	rice := catalogByName(t, r)["Rice"]
	do(t, r, http.MethodPost, base+"/lines", map[string]any{"productId": rice.ID})
	do(t, r, http.MethodPut, base+"/customer", map[string]any{"customerName": "Kumar", "customerMobile": "1"})

	w := do(t, r, http.MethodPost, base+"/save", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodGet, "/v1/bills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
