package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"invoice-backend/internal/forms"
	"invoice-backend/internal/models"
	"invoice-backend/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	invoices map[string]*models.Invoice
	fail     bool
}

func newStubStore() *stubStore {
	return &stubStore{invoices: make(map[string]*models.Invoice)}
}

func (s *stubStore) Create(_ context.Context, invoice *models.Invoice) error {
	if s.fail {
		return errors.New("connection refused")
	}
	if invoice.ID == "" {
		invoice.ID = "inv-1"
	}
	s.invoices[invoice.ID] = invoice
	return nil
}

func (s *stubStore) Update(_ context.Context, id string, customerID string, amount int64, status string) error {
	if s.fail {
		return errors.New("connection refused")
	}
	return nil
}

func (s *stubStore) Delete(_ context.Context, id string) error {
	if s.fail {
		return errors.New("connection refused")
	}
	delete(s.invoices, id)
	return nil
}

func (s *stubStore) Get(_ context.Context, id string) (*models.InvoiceWithCustomer, error) {
	invoice, ok := s.invoices[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return &models.InvoiceWithCustomer{Invoice: *invoice}, nil
}

func (s *stubStore) GetByCustomer(_ context.Context, customerID string) ([]*models.Invoice, error) {
	if s.fail {
		return nil, errors.New("connection refused")
	}
	var out []*models.Invoice
	for _, invoice := range s.invoices {
		if invoice.CustomerID == customerID {
			out = append(out, invoice)
		}
	}
	return out, nil
}

func (s *stubStore) List(_ context.Context) ([]*models.InvoiceWithCustomer, error) {
	var out []*models.InvoiceWithCustomer
	for _, invoice := range s.invoices {
		out = append(out, &models.InvoiceWithCustomer{Invoice: *invoice})
	}
	return out, nil
}

func newTestRouter(store services.InvoiceStore) *mux.Router {
	h := NewInvoiceHandler(services.NewInvoiceService(store))

	r := mux.NewRouter()
	r.HandleFunc("/api/invoices", h.CreateInvoice).Methods("POST")
	r.HandleFunc("/api/invoices", h.ListInvoices).Methods("GET")
	r.HandleFunc("/api/invoices/customer/{customer_id}", h.GetCustomerInvoices).Methods("GET")
	r.HandleFunc("/api/invoices/{id}", h.UpdateInvoice).Methods("POST")
	r.HandleFunc("/api/invoices/{id}", h.DeleteInvoice).Methods("DELETE")
	r.HandleFunc("/api/invoices/{id}", h.GetInvoice).Methods("GET")
	return r
}

func postForm(router *mux.Router, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateInvoice_RedirectsToListing(t *testing.T) {
	store := newStubStore()
	router := newTestRouter(store)

	rec := postForm(router, "/api/invoices", url.Values{
		forms.FieldCustomerID: {"c1"},
		forms.FieldAmount:     {"49.99"},
		forms.FieldStatus:     {"pending"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, services.InvoicesRoute, rec.Header().Get("Location"))
	require.Len(t, store.invoices, 1)
	assert.Equal(t, int64(4999), store.invoices["inv-1"].Amount)
}

func TestCreateInvoice_ValidationErrorsRenderedInline(t *testing.T) {
	router := newTestRouter(newStubStore())

	rec := postForm(router, "/api/invoices", url.Values{
		forms.FieldCustomerID: {""},
		forms.FieldAmount:     {"0"},
		forms.FieldStatus:     {"paid"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))

	var state models.InvoiceFormState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, services.MsgCreateMissingFields, state.Message)
	assert.Contains(t, state.Errors, forms.FieldCustomerID)
	assert.Contains(t, state.Errors, forms.FieldAmount)
}

func TestCreateInvoice_DatabaseErrorIsGenericMessage(t *testing.T) {
	store := newStubStore()
	store.fail = true
	router := newTestRouter(store)

	rec := postForm(router, "/api/invoices", url.Values{
		forms.FieldCustomerID: {"c1"},
		forms.FieldAmount:     {"10"},
		forms.FieldStatus:     {"paid"},
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"), "no redirect on a failed write")

	var state models.InvoiceFormState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, services.MsgCreateDBError, state.Message)
	assert.Nil(t, state.Errors)
}

func TestUpdateInvoice_Outcomes(t *testing.T) {
	store := newStubStore()
	router := newTestRouter(store)

	rec := postForm(router, "/api/invoices/inv-7", url.Values{
		forms.FieldCustomerID: {"c2"},
		forms.FieldAmount:     {"20.50"},
		forms.FieldStatus:     {"paid"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, services.InvoicesRoute, rec.Header().Get("Location"))

	rec = postForm(router, "/api/invoices/inv-7", url.Values{
		forms.FieldCustomerID: {"c2"},
		forms.FieldAmount:     {"20.50"},
		forms.FieldStatus:     {"overdue"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var state models.InvoiceFormState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, services.MsgUpdateMissingFields, state.Message)
}

func TestDeleteInvoice(t *testing.T) {
	store := newStubStore()
	store.invoices["inv-9"] = &models.Invoice{ID: "inv-9"}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/invoices/inv-9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.invoices)
}

func TestDeleteInvoice_ErrorSurfaces(t *testing.T) {
	store := newStubStore()
	store.fail = true
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/invoices/inv-9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetCustomerInvoices(t *testing.T) {
	store := newStubStore()
	store.invoices["inv-1"] = &models.Invoice{ID: "inv-1", CustomerID: "c1", Amount: 4999}
	store.invoices["inv-2"] = &models.Invoice{ID: "inv-2", CustomerID: "c2", Amount: 100}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/customer/c1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var invoices []*models.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invoices))
	require.Len(t, invoices, 1)
	assert.Equal(t, "inv-1", invoices[0].ID)
	assert.Equal(t, int64(4999), invoices[0].Amount)
}

func TestGetInvoice_NotFound(t *testing.T) {
	router := newTestRouter(newStubStore())

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
