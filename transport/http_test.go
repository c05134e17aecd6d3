package transport_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	productapp "github.com/muhammadheryan/product-console/application/product"
	"github.com/muhammadheryan/product-console/cmd/config"
	productmocks "github.com/muhammadheryan/product-console/mocks/repository/product"
	"github.com/muhammadheryan/product-console/model"
	sessionrepo "github.com/muhammadheryan/product-console/repository/session"
	"github.com/muhammadheryan/product-console/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const cookieName = "sid"

type browser struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newBrowser(t *testing.T, productRepo *productmocks.ProductRepository) *browser {
	t.Helper()
	cfg := &config.Config{
		Server:  config.ServerConfig{MetricsAPIKey: "secret"},
		Session: config.SessionConfig{CookieName: cookieName, TTL: time.Hour},
	}
	app := productapp.NewProductApp(productRepo, sessionrepo.NewMemoryRepository(time.Hour))
	return &browser{t: t, handler: transport.NewTransport(cfg, app)}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}

	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			b.cookie = c
		}
	}
	return rec
}

func (b *browser) post(path string, form url.Values) {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	rec := b.do(http.MethodPost, path, form)
	require.Equal(b.t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(b.t, "/", rec.Header().Get("Location"))
}

func (b *browser) state() *model.State {
	b.t.Helper()
	rec := b.do(http.MethodGet, "/api/state", nil)
	require.Equal(b.t, http.StatusOK, rec.Code)

	var res struct {
		Code string              `json:"code"`
		Data model.StateResponse `json:"data"`
	}
	require.NoError(b.t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(b.t, "0000", res.Code)
	require.NotNil(b.t, res.Data.State)
	return res.Data.State
}

func products() []model.Product {
	return []model.Product{
		{ID: 1, Title: "Lamp", Description: "Desk lamp", SellerID: 3},
		{ID: 2, Title: "Chair", Description: "Office chair", SellerID: 4},
	}
}

func TestIndex_FirstRenderLoads(t *testing.T) {
	repo := productmocks.NewProductRepository(t)
	repo.On("List", mock.Anything).Return(products(), nil).Once()
	b := newBrowser(t, repo)

	rec := b.do(http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.NotNil(t, b.cookie)
	assert.True(t, b.cookie.HttpOnly)
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `class="product-row`))

	// same session, no second List call
	rec = b.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIndex_LoadFailureShowsBanner(t *testing.T) {
	repo := productmocks.NewProductRepository(t)
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	b := newBrowser(t, repo)

	rec := b.do(http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to fetch products")
	assert.Contains(t, rec.Body.String(), "No products found")
}

func TestState_FreshSessionIsNotLoading(t *testing.T) {
	b := newBrowser(t, productmocks.NewProductRepository(t))

	st := b.state()

	assert.False(t, st.Loading)
	assert.False(t, st.Loaded)
	assert.Empty(t, st.Products)
}

func TestReload(t *testing.T) {
	repo := productmocks.NewProductRepository(t)
	repo.On("List", mock.Anything).Return(products(), nil).Once()
	repo.On("List", mock.Anything).Return(products()[1:], nil).Once()
	b := newBrowser(t, repo)

	rec := b.do(http.MethodGet, "/", nil)
	assert.Contains(t, rec.Body.String(), `action="/products/reload"`)

	b.post("/products/reload", nil)

	st := b.state()
	assert.False(t, st.Loading)
	assert.Equal(t, products()[1:], st.Products)
}

func TestCreateFlow(t *testing.T) {
	repo := productmocks.NewProductRepository(t)
	repo.On("List", mock.Anything).Return([]model.Product{}, nil).Once()
	repo.On("Create", mock.Anything, &model.ProductPayload{Title: "A", Description: "B", SellerID: 3}).Return(nil).Once()
	repo.On("List", mock.Anything).Return([]model.Product{{ID: 5, Title: "A", Description: "B", SellerID: 3}}, nil).Once()
	b := newBrowser(t, repo)

	b.do(http.MethodGet, "/", nil)
	b.post("/products/new", nil)
	assert.True(t, b.state().ModalOpen)

	b.post("/products/save", url.Values{"title": {"A"}, "description": {"B"}, "seller_id": {"3"}})

	st := b.state()
	assert.False(t, st.ModalOpen)
	assert.Equal(t, model.Draft{}, st.Draft)
	assert.Nil(t, st.EditingID)
	assert.Equal(t, []model.Product{{ID: 5, Title: "A", Description: "B", SellerID: 3}}, st.Products)
}

func TestEditFlow(t *testing.T) {
	repo := productmocks.NewProductRepository(t)
	repo.On("List", mock.Anything).Return(products(), nil)
	repo.On("Update", mock.Anything, uint64(2), &model.ProductPayload{Title: "Stool", Description: "Office chair", SellerID: 4}).Return(nil).Once()
	b := newBrowser(t, repo)

	b.do(http.MethodGet, "/", nil)
	b.post("/products/2/edit", nil)

	rec := b.do(http.MethodGet, "/", nil)
	assert.Contains(t, rec.Body.String(), "Update Product")
	assert.Contains(t, rec.Body.String(), `value="Chair"`)

	rec = b.do(http.MethodPost, "/draft", url.Values{"name": {"title"}, "value": {"Stool"}})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Stool", b.state().Draft.Title)

	b.post("/products/save", url.Values{"title": {"Stool"}, "description": {"Office chair"}, "seller_id": {"4"}})
	assert.Nil(t, b.state().EditingID)
}

func TestSaveFailureKeepsModalOpen(t *testing.T) {
	repo := productmocks.NewProductRepository(t)
	repo.On("List", mock.Anything).Return(products(), nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("status 500")).Once()
	b := newBrowser(t, repo)

	b.do(http.MethodGet, "/", nil)
	b.post("/products/new", nil)
	b.post("/products/save", url.Values{"title": {"A"}, "description": {"B"}, "seller_id": {"3"}})

	st := b.state()
	assert.True(t, st.ModalOpen)
	assert.Equal(t, "Failed to save product", st.Error)
	assert.Equal(t, model.Draft{Title: "A", Description: "B", SellerID: "3"}, st.Draft)
	assert.Equal(t, products(), st.Products)
}

func TestDeleteFlow(t *testing.T) {
	repo := productmocks.NewProductRepository(t)
	repo.On("List", mock.Anything).Return(products(), nil).Once()
	repo.On("Delete", mock.Anything, uint64(1)).Return(nil).Once()
	repo.On("List", mock.Anything).Return(products()[1:], nil).Once()
	b := newBrowser(t, repo)

	b.do(http.MethodGet, "/", nil)

	// declined: nothing is sent
	b.post("/products/1/delete", nil)
	rec := b.do(http.MethodGet, "/", nil)
	assert.Contains(t, rec.Body.String(), "Are you sure you want to delete this product?")
	b.post("/products/1/delete/confirm", url.Values{"confirm": {"no"}})
	st := b.state()
	assert.Nil(t, st.PendingDeleteID)
	assert.Len(t, st.Products, 2)

	// confirmed: exactly one delete
	b.post("/products/1/delete", nil)
	b.post("/products/1/delete/confirm", url.Values{"confirm": {"yes"}})
	assert.Equal(t, products()[1:], b.state().Products)
}

func TestCancelAndClose(t *testing.T) {
	repo := productmocks.NewProductRepository(t)
	repo.On("List", mock.Anything).Return(products(), nil).Once()
	b := newBrowser(t, repo)

	b.do(http.MethodGet, "/", nil)
	b.post("/products/1/edit", nil)
	b.post("/modal/close", nil)

	st := b.state()
	assert.False(t, st.ModalOpen)
	assert.Equal(t, "Lamp", st.Draft.Title)

	b.post("/modal/cancel", nil)
	st = b.state()
	assert.False(t, st.ModalOpen)
	assert.Equal(t, model.Draft{}, st.Draft)
	assert.Nil(t, st.EditingID)
}

func TestChangeDraft_UnknownField(t *testing.T) {
	b := newBrowser(t, productmocks.NewProductRepository(t))

	rec := b.do(http.MethodPost, "/draft", url.Values{"name": {"id"}, "value": {"1"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"0003"`)
}

func TestHealthAndMetrics(t *testing.T) {
	b := newBrowser(t, productmocks.NewProductRepository(t))

	rec := b.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Nil(t, b.cookie)

	rec = b.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
