package state

import (
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/acmeshop/catalog/internal/catalog/service"
	"github.com/acmeshop/catalog/internal/catalog/store"
	"github.com/acmeshop/catalog/internal/catalog/transport/rest"
	"github.com/acmeshop/catalog/internal/webui/client"
	"github.com/acmeshop/catalog/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a mock implementation of the API interface with error injection.
type fakeAPI struct {
	products []client.Product
	product  *client.Product
	error    error
	calls    int
}

func (f *fakeAPI) List(_ context.Context) ([]client.Product, error) {
	f.calls++
	if f.error != nil {
		return nil, f.error
	}
	return f.products, nil
}

func (f *fakeAPI) Create(_ context.Context, _ client.ProductFields) (*client.Product, error) {
	f.calls++
	if f.error != nil {
		return nil, f.error
	}
	return f.product, nil
}

func (f *fakeAPI) Update(_ context.Context, _ int64, _ client.ProductFields) (*client.Product, error) {
	f.calls++
	if f.error != nil {
		return nil, f.error
	}
	return f.product, nil
}

func (f *fakeAPI) Delete(_ context.Context, _ int64) error {
	f.calls++
	return f.error
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newTestBackend wires the real REST handler over the in-memory store into an
// httptest server and returns a cache backed by a real client against it.
func newTestBackend(t *testing.T) (*ProductCache, func()) {
	t.Helper()

	mux := server.NewChiRouter(testLogger())
	handler := rest.NewHandler(service.NewService(store.NewInMemoryStore()), testLogger())
	handler.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)

	api := client.New(srv.URL, 5*time.Second)
	return NewProductCache(api, testLogger()), srv.Close
}

func Test_ProductCache_ReloadAndProducts(t *testing.T) {
	cache, closeFn := newTestBackend(t)
	defer closeFn()
	ctx := context.Background()

	_, err := cache.Submit(ctx, client.ProductFields{Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}, nil)
	require.NoError(t, err)

	cache.Reload(ctx)

	products := cache.Products()
	require.Len(t, products, 1)
	assert.Equal(t, client.Product{ID: 1, Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}, products[0])
}

func Test_ProductCache_SubmitCreateAppends(t *testing.T) {
	cache, closeFn := newTestBackend(t)
	defer closeFn()
	ctx := context.Background()

	first, err := cache.Submit(ctx, client.ProductFields{Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}, nil)
	require.NoError(t, err)
	second, err := cache.Submit(ctx, client.ProductFields{Name: "Pencil", Description: "HB pencil", Price: 0.5, Quantity: 200}, nil)
	require.NoError(t, err)

	products := cache.Products()
	require.Len(t, products, 2)
	assert.Equal(t, first.ID, products[0].ID)
	assert.Equal(t, second.ID, products[1].ID)
}

func Test_ProductCache_SubmitUpdatePatchesByID(t *testing.T) {
	cache, closeFn := newTestBackend(t)
	defer closeFn()
	ctx := context.Background()

	created, err := cache.Submit(ctx, client.ProductFields{Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}, nil)
	require.NoError(t, err)
	_, err = cache.Submit(ctx, client.ProductFields{Name: "Pencil", Description: "HB pencil", Price: 0.5, Quantity: 200}, nil)
	require.NoError(t, err)

	updated, err := cache.Submit(ctx, client.ProductFields{Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 90}, &created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	// The updated row keeps its position; the other row is untouched.
	products := cache.Products()
	require.Len(t, products, 2)
	assert.Equal(t, int64(90), products[0].Quantity)
	assert.Equal(t, 1.5, products[0].Price)
	assert.Equal(t, "Pencil", products[1].Name)
}

func Test_ProductCache_RemoveDropsOnConfirmedDelete(t *testing.T) {
	cache, closeFn := newTestBackend(t)
	defer closeFn()
	ctx := context.Background()

	created, err := cache.Submit(ctx, client.ProductFields{Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}, nil)
	require.NoError(t, err)

	require.NoError(t, cache.Remove(ctx, created.ID))
	assert.Empty(t, cache.Products())

	// A second delete fails server-side with 404 and must propagate.
	err = cache.Remove(ctx, created.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func Test_ProductCache_Get(t *testing.T) {
	cache, closeFn := newTestBackend(t)
	defer closeFn()
	ctx := context.Background()

	created, err := cache.Submit(ctx, client.ProductFields{Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}, nil)
	require.NoError(t, err)

	found, ok := cache.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, *created, found)

	_, ok = cache.Get(999)
	assert.False(t, ok)
}

func Test_ProductCache_ReloadFailureLeavesCacheUntouched(t *testing.T) {
	api := &fakeAPI{product: &client.Product{ID: 1, Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}}
	cache := NewProductCache(api, testLogger())
	ctx := context.Background()

	_, err := cache.Submit(ctx, client.ProductFields{Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}, nil)
	require.NoError(t, err)

	api.error = errors.New("connection refused")
	cache.Reload(ctx)

	// The previously confirmed entry survives the failed refresh.
	products := cache.Products()
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)
}

func Test_ProductCache_SubmitFailureLeavesCacheUntouched(t *testing.T) {
	api := &fakeAPI{error: errors.New("insert failed")}
	cache := NewProductCache(api, testLogger())

	_, err := cache.Submit(context.Background(), client.ProductFields{Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}, nil)

	require.Error(t, err)
	assert.Empty(t, cache.Products())
}

func Test_ProductCache_RemoveFailureLeavesCacheUntouched(t *testing.T) {
	api := &fakeAPI{product: &client.Product{ID: 1, Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}}
	cache := NewProductCache(api, testLogger())
	ctx := context.Background()

	_, err := cache.Submit(ctx, client.ProductFields{Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}, nil)
	require.NoError(t, err)

	api.error = errors.New("delete failed")
	require.Error(t, cache.Remove(ctx, 1))
	require.Len(t, cache.Products(), 1)
}

func Test_ProductCache_EnsureLoaded(t *testing.T) {
	api := &fakeAPI{products: []client.Product{{ID: 1, Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100}}}
	cache := NewProductCache(api, testLogger())
	ctx := context.Background()

	cache.EnsureLoaded(ctx)
	require.Len(t, cache.Products(), 1)
	assert.Equal(t, 1, api.calls)

	// A second call is a no-op once a load succeeded.
	cache.EnsureLoaded(ctx)
	assert.Equal(t, 1, api.calls)
}
