package services

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"invoice-backend/internal/forms"
	"invoice-backend/internal/models"
	"invoice-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceStore struct {
	invoices map[string]*models.Invoice

	failCreate bool
	failUpdate bool
	failDelete bool

	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{invoices: make(map[string]*models.Invoice)}
}

func (f *fakeInvoiceStore) Create(_ context.Context, invoice *models.Invoice) error {
	f.createCalls++
	if f.failCreate {
		return errors.New("connection refused")
	}
	if invoice.ID == "" {
		invoice.ID = "inv-1"
	}
	stored := *invoice
	f.invoices[invoice.ID] = &stored
	return nil
}

func (f *fakeInvoiceStore) Update(_ context.Context, id string, customerID string, amount int64, status string) error {
	f.updateCalls++
	if f.failUpdate {
		return errors.New("connection refused")
	}
	// Mirrors the repository UPDATE: the date column is never part of it.
	if invoice, ok := f.invoices[id]; ok {
		invoice.CustomerID = customerID
		invoice.Amount = amount
		invoice.Status = status
	}
	return nil
}

func (f *fakeInvoiceStore) Delete(_ context.Context, id string) error {
	f.deleteCalls++
	if f.failDelete {
		return errors.New("connection refused")
	}
	delete(f.invoices, id)
	return nil
}

func (f *fakeInvoiceStore) Get(_ context.Context, id string) (*models.InvoiceWithCustomer, error) {
	invoice, ok := f.invoices[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return &models.InvoiceWithCustomer{Invoice: *invoice}, nil
}

func (f *fakeInvoiceStore) GetByCustomer(_ context.Context, customerID string) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, invoice := range f.invoices {
		if invoice.CustomerID == customerID {
			out = append(out, invoice)
		}
	}
	return out, nil
}

func (f *fakeInvoiceStore) List(_ context.Context) ([]*models.InvoiceWithCustomer, error) {
	var out []*models.InvoiceWithCustomer
	for _, invoice := range f.invoices {
		out = append(out, &models.InvoiceWithCustomer{Invoice: *invoice})
	}
	return out, nil
}

// newTestService wires a service to a fake store and counts cache
// invalidations instead of touching Redis.
func newTestService(store *fakeInvoiceStore) (*InvoiceService, *int) {
	svc := NewInvoiceService(store)
	invalidations := 0
	svc.invalidate = func(context.Context) { invalidations++ }
	return svc, &invalidations
}

func invoiceForm(customerID, amount, status string) url.Values {
	return url.Values{
		forms.FieldCustomerID: {customerID},
		forms.FieldAmount:     {amount},
		forms.FieldStatus:     {status},
	}
}

func TestCreateInvoice_Success(t *testing.T) {
	store := newFakeStore()
	svc, invalidations := newTestService(store)

	res := svc.CreateInvoice(context.Background(), invoiceForm("c1", "49.99", "pending"))

	require.Nil(t, res.State)
	assert.Equal(t, InvoicesRoute, res.RedirectTo)
	assert.Equal(t, 1, *invalidations)

	require.Len(t, store.invoices, 1)
	for _, invoice := range store.invoices {
		assert.Equal(t, "c1", invoice.CustomerID)
		assert.Equal(t, int64(4999), invoice.Amount)
		assert.Equal(t, "pending", invoice.Status)
		assert.Equal(t, timeutil.FormatDate(timeutil.Today()), timeutil.FormatDate(invoice.Date))
	}
}

func TestCreateInvoice_ValidationFailureSkipsStore(t *testing.T) {
	store := newFakeStore()
	svc, invalidations := newTestService(store)

	res := svc.CreateInvoice(context.Background(), invoiceForm("", "0", "paid"))

	require.NotNil(t, res.State)
	assert.Empty(t, res.RedirectTo)
	assert.Equal(t, MsgCreateMissingFields, res.State.Message)
	assert.Contains(t, res.State.Errors, forms.FieldCustomerID)
	assert.Contains(t, res.State.Errors, forms.FieldAmount)
	assert.Equal(t, 0, store.createCalls)
	assert.Equal(t, 0, *invalidations)
}

func TestCreateInvoice_NonNumericAmount(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	res := svc.CreateInvoice(context.Background(), invoiceForm("c1", "forty", "paid"))

	require.NotNil(t, res.State)
	assert.Contains(t, res.State.Errors, forms.FieldAmount)
	assert.Equal(t, 0, store.createCalls)
}

func TestCreateInvoice_PersistenceFailure(t *testing.T) {
	store := newFakeStore()
	store.failCreate = true
	svc, invalidations := newTestService(store)

	res := svc.CreateInvoice(context.Background(), invoiceForm("c1", "10.00", "paid"))

	require.NotNil(t, res.State)
	assert.Empty(t, res.RedirectTo)
	assert.Equal(t, MsgCreateDBError, res.State.Message)
	assert.Nil(t, res.State.Errors, "persistence failure reports a message only")
	assert.Equal(t, 0, *invalidations, "cache must not be invalidated on a failed write")
}

func TestUpdateInvoice_PreservesDate(t *testing.T) {
	store := newFakeStore()
	svc, invalidations := newTestService(store)

	created, _ := timeutil.ParseDate("2024-01-15")
	store.invoices["inv-7"] = &models.Invoice{
		ID: "inv-7", CustomerID: "c1", Amount: 500, Status: "pending", Date: created,
	}

	res := svc.UpdateInvoice(context.Background(), "inv-7", invoiceForm("c2", "20.50", "paid"))

	require.Nil(t, res.State)
	assert.Equal(t, InvoicesRoute, res.RedirectTo)
	assert.Equal(t, 1, *invalidations)

	updated := store.invoices["inv-7"]
	assert.Equal(t, "c2", updated.CustomerID)
	assert.Equal(t, int64(2050), updated.Amount)
	assert.Equal(t, "paid", updated.Status)
	assert.Equal(t, created, updated.Date, "update never modifies the date column")
}

func TestUpdateInvoice_ValidationFailure(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	res := svc.UpdateInvoice(context.Background(), "inv-7", invoiceForm("c1", "10", "overdue"))

	require.NotNil(t, res.State)
	assert.Equal(t, MsgUpdateMissingFields, res.State.Message)
	assert.Contains(t, res.State.Errors, forms.FieldStatus)
	assert.Equal(t, 0, store.updateCalls)
}

func TestUpdateInvoice_PersistenceFailure(t *testing.T) {
	store := newFakeStore()
	store.failUpdate = true
	svc, invalidations := newTestService(store)

	res := svc.UpdateInvoice(context.Background(), "inv-7", invoiceForm("c1", "10", "paid"))

	require.NotNil(t, res.State)
	assert.Equal(t, MsgUpdateDBError, res.State.Message)
	assert.Nil(t, res.State.Errors)
	assert.Equal(t, 0, *invalidations)
}

func TestDeleteInvoice_RemovesRowAndInvalidatesOnce(t *testing.T) {
	store := newFakeStore()
	svc, invalidations := newTestService(store)

	store.invoices["inv-9"] = &models.Invoice{ID: "inv-9"}
	store.invoices["inv-10"] = &models.Invoice{ID: "inv-10"}

	err := svc.DeleteInvoice(context.Background(), "inv-9")

	require.NoError(t, err)
	assert.NotContains(t, store.invoices, "inv-9")
	assert.Contains(t, store.invoices, "inv-10", "delete removes exactly the targeted row")
	assert.Equal(t, 1, *invalidations)
}

func TestDeleteInvoice_ErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.failDelete = true
	svc, invalidations := newTestService(store)

	err := svc.DeleteInvoice(context.Background(), "inv-9")

	require.Error(t, err)
	assert.Equal(t, 0, *invalidations)
}

func TestGenerateInvoicePDF(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	date, _ := timeutil.ParseDate("2024-03-01")
	store.invoices["inv-3"] = &models.Invoice{
		ID: "inv-3", CustomerID: "c1", Amount: 4999, Status: "paid", Date: date,
	}

	data, err := svc.GenerateInvoicePDF(context.Background(), "inv-3")
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$49.99", formatCents(4999))
	assert.Equal(t, "$0.01", formatCents(1))
	assert.Equal(t, "$100.00", formatCents(10000))
}
