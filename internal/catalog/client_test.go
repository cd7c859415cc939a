package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsFixture = `[
	{"id":1,"title":"Backpack","price":109.95,"description":"Fits laptops","category":"men's clothing","image":"https://example.com/1.png","rating":{"rate":3.9,"count":120}},
	{"id":2,"title":"T-Shirt","price":22.3,"description":"Slim fit","category":"men's clothing","image":"https://example.com/2.png","rating":{"rate":4.1,"count":259}}
]`

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(productsFixture))
	})
	mux.HandleFunc("/products/categories", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["electronics","jewelery","men's clothing"]`))
	})
	mux.HandleFunc("/products/category/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(productsFixture))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFetchAllItems(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClient(srv.URL)

	items, err := client.FetchAllItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, "Backpack", items[0].Title)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("109.95")))
	assert.Equal(t, 3.9, items[0].Rating.Rate)
	assert.Equal(t, 120, items[0].Rating.Count)
}

func TestClientFetchCategories(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClient(srv.URL)

	categories, err := client.FetchCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery", "men's clothing"}, categories)
}

func TestClientFetchByCategory(t *testing.T) {
	srv := newCatalogServer(t)
	client := NewClient(srv.URL)

	items, err := client.FetchByCategory(context.Background(), "men's clothing")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL)
	_, err := client.FetchAllItems(context.Background())
	assert.Error(t, err)
}
