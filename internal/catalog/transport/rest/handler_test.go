package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	caterrors "github.com/acmeshop/catalog/internal/catalog/errors"
	"github.com/acmeshop/catalog/internal/catalog/service"
	"github.com/stretchr/testify/assert"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product  *service.ProductDto
	products []service.ProductDto
	error    error
}

func (m *mockProductService) FindAll(_ context.Context) ([]service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductUpsertDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, _ int64, _ service.ProductUpsertDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, _ int64) error {
	return m.error
}

func newTestHandler(mock *mockProductService) *Handler {
	return NewHandler(mock, slog.New(slog.DiscardHandler))
}

func Test_ProductAPI_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - products found",
			mockService: mockProductService{
				products: []service.ProductDto{
					{ID: 1, Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100},
					{ID: 2, Name: "Pencil", Description: "HB pencil", Price: 0.5, Quantity: 200},
				},
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":1,"name":"Pen","description":"Blue pen","price":1.5,"quantity":100},{"id":2,"name":"Pencil","description":"HB pencil","price":0.5,"quantity":200}]`,
		},
		{
			name:         "Success - empty list",
			mockService:  mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("service unavailable")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to fetch products"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			rr := httptest.NewRecorder()

			// when
			api.FindAll(rr, req)

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_Create(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product created",
			mockService: mockProductService{
				product: &service.ProductDto{ID: 1, Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 100},
			},
			body:         `{"name":"Pen","description":"Blue pen","price":1.5,"quantity":100}`,
			expectedCode: http.StatusCreated,
			expectedBody: `{"id":1,"name":"Pen","description":"Blue pen","price":1.5,"quantity":100}`,
		},
		{
			name: "Success - zero price and quantity are valid",
			mockService: mockProductService{
				product: &service.ProductDto{ID: 2, Name: "Flyer", Description: "Free flyer", Price: 0, Quantity: 0},
			},
			body:         `{"name":"Flyer","description":"Free flyer","price":0,"quantity":0}`,
			expectedCode: http.StatusCreated,
			expectedBody: `{"id":2,"name":"Flyer","description":"Free flyer","price":0,"quantity":0}`,
		},
		{
			name:         "Error - missing name",
			body:         `{"description":"Blue pen","price":1.5,"quantity":100}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Name":"failed on rule: required"}}`,
		},
		{
			name:         "Error - empty name",
			body:         `{"name":"","description":"Blue pen","price":1.5,"quantity":100}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Name":"failed on rule: min"}}`,
		},
		{
			name:         "Error - missing price",
			body:         `{"name":"Pen","description":"Blue pen","quantity":100}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Price":"failed on rule: required"}}`,
		},
		{
			name:         "Error - negative quantity",
			body:         `{"name":"Pen","description":"Blue pen","price":1.5,"quantity":-1}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Quantity":"failed on rule: gte"}}`,
		},
		{
			name:         "Error - malformed body",
			body:         `{"name":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("insert failed")},
			body:         `{"name":"Pen","description":"Blue pen","price":1.5,"quantity":100}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to create product"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			// when
			api.Create(rr, req)

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_Update(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product updated",
			mockService: mockProductService{
				product: &service.ProductDto{ID: 1, Name: "Pen", Description: "Blue pen", Price: 1.5, Quantity: 90},
			},
			productID:    "1",
			body:         `{"name":"Pen","description":"Blue pen","price":1.5,"quantity":90}`,
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"name":"Pen","description":"Blue pen","price":1.5,"quantity":90}`,
		},
		{
			name:         "Error - invalid id",
			productID:    "123-invalid-id",
			body:         `{"name":"Pen","description":"Blue pen","price":1.5,"quantity":90}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid ID: 123-invalid-id"}`,
		},
		{
			name:         "Error - validation precedes existence check",
			mockService:  mockProductService{error: caterrors.ErrProductNotFound},
			productID:    "999",
			body:         `{"description":"Blue pen","price":1.5,"quantity":90}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Name":"failed on rule: required"}}`,
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: caterrors.ErrProductNotFound},
			productID:    "999",
			body:         `{"name":"Pen","description":"Blue pen","price":1.5,"quantity":90}`,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Product with ID 999 not found"}`,
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("update failed")},
			productID:    "1",
			body:         `{"name":"Pen","description":"Blue pen","price":1.5,"quantity":90}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to update product with ID 1"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodPut, "/products/"+tc.productID, strings.NewReader(tc.body))
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			// when
			api.Update(rr, req)

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product deleted",
			mockService:  mockProductService{},
			productID:    "1",
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Product deleted successfully"}`,
		},
		{
			name:         "Error - invalid id",
			productID:    "abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid ID: abc"}`,
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: caterrors.ErrProductNotFound},
			productID:    "999",
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"Product with ID 999 not found"}`,
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("delete failed")},
			productID:    "1",
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to delete product with ID 1"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodDelete, "/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			// when
			api.DeleteByID(rr, req)

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}
