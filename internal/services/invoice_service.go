package services

import (
	"context"
	"encoding/json"
	"log"
	"net/url"

	"invoice-backend/internal/cache"
	"invoice-backend/internal/forms"
	"invoice-backend/internal/metrics"
	"invoice-backend/internal/models"
	"invoice-backend/internal/timeutil"
)

// InvoicesRoute is the listing view clients are redirected to after a
// successful mutation.
const InvoicesRoute = "/invoices"

// Summary messages shown above the form when a mutation fails.
const (
	MsgCreateMissingFields = "Missing fields. Failed to create invoice."
	MsgCreateDBError       = "Database Error: Failed to create invoice."
	MsgUpdateMissingFields = "Missing fields. Failed to update invoice."
	MsgUpdateDBError       = "Database Error: Failed to Update Invoice."
)

// InvoiceStore is the persistence surface the service needs. It is
// implemented by repositories.InvoiceRepository.
type InvoiceStore interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, id string, customerID string, amount int64, status string) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.InvoiceWithCustomer, error)
	List(ctx context.Context) ([]*models.InvoiceWithCustomer, error)
	GetByCustomer(ctx context.Context, customerID string) ([]*models.Invoice, error)
}

// MutationResult is the tagged outcome of a create or update. Exactly one
// field is set: a redirect target on success, or the form state to
// re-render on failure. The handler performs the actual redirect, so
// navigation can never be swallowed by persistence error recovery.
type MutationResult struct {
	RedirectTo string
	State      *models.InvoiceFormState
}

type InvoiceService struct {
	Store InvoiceStore

	// invalidate clears the cached listing after a confirmed write.
	// Swappable so tests can observe invalidation counts.
	invalidate func(ctx context.Context)
}

func NewInvoiceService(store InvoiceStore) *InvoiceService {
	return &InvoiceService{
		Store:      store,
		invalidate: cache.InvalidateInvoiceCaches,
	}
}

// CreateInvoice validates the submitted form, converts the amount to cents,
// stamps today's date, and inserts the row. Validation and persistence
// failures are reported through the returned state; neither touches the
// cache or redirects.
func (s *InvoiceService) CreateInvoice(ctx context.Context, form url.Values) *MutationResult {
	values, fieldErrs := forms.ParseInvoice(form)
	if fieldErrs != nil {
		metrics.InvoiceMutationsTotal.WithLabelValues("create", "validation_failed").Inc()
		return &MutationResult{State: &models.InvoiceFormState{
			Errors:  fieldErrs,
			Message: MsgCreateMissingFields,
		}}
	}

	invoice := &models.Invoice{
		CustomerID: values.CustomerID,
		Amount:     values.AmountCents,
		Status:     values.Status,
		Date:       timeutil.Today(),
	}

	if err := s.Store.Create(ctx, invoice); err != nil {
		log.Printf("[Invoice] create failed: %v", err)
		metrics.InvoiceMutationsTotal.WithLabelValues("create", "persistence_failed").Inc()
		return &MutationResult{State: &models.InvoiceFormState{Message: MsgCreateDBError}}
	}

	s.invalidate(ctx)
	metrics.InvoiceMutationsTotal.WithLabelValues("create", "success").Inc()
	return &MutationResult{RedirectTo: InvoicesRoute}
}

// UpdateInvoice is CreateInvoice minus date handling: the targeted row keeps
// its creation date, only customer, amount and status change.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, form url.Values) *MutationResult {
	values, fieldErrs := forms.ParseInvoice(form)
	if fieldErrs != nil {
		metrics.InvoiceMutationsTotal.WithLabelValues("update", "validation_failed").Inc()
		return &MutationResult{State: &models.InvoiceFormState{
			Errors:  fieldErrs,
			Message: MsgUpdateMissingFields,
		}}
	}

	if err := s.Store.Update(ctx, id, values.CustomerID, values.AmountCents, values.Status); err != nil {
		log.Printf("[Invoice] update %s failed: %v", id, err)
		metrics.InvoiceMutationsTotal.WithLabelValues("update", "persistence_failed").Inc()
		return &MutationResult{State: &models.InvoiceFormState{Message: MsgUpdateDBError}}
	}

	s.invalidate(ctx)
	metrics.InvoiceMutationsTotal.WithLabelValues("update", "success").Inc()
	return &MutationResult{RedirectTo: InvoicesRoute}
}

// DeleteInvoice removes the row and invalidates the listing cache. The id
// is path-derived, not form-derived, so there is no validation step; a
// persistence error propagates to the handler unrecovered.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		metrics.InvoiceMutationsTotal.WithLabelValues("delete", "persistence_failed").Inc()
		return err
	}
	s.invalidate(ctx)
	metrics.InvoiceMutationsTotal.WithLabelValues("delete", "success").Inc()
	return nil
}

// GetInvoice retrieves a single invoice with its customer details.
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.InvoiceWithCustomer, error) {
	return s.Store.Get(ctx, id)
}

// ListInvoices returns the invoice listing, served from the Redis cache
// when warm. The cache key is what the mutation paths invalidate.
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]*models.InvoiceWithCustomer, error) {
	if data, ok := cache.GetCached(ctx, cache.InvoiceListKey); ok {
		var invoices []*models.InvoiceWithCustomer
		if err := json.Unmarshal(data, &invoices); err == nil {
			return invoices, nil
		}
	}

	invoices, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(invoices); err == nil {
		cache.SetCached(ctx, cache.InvoiceListKey, data, cache.InvoiceListTTL)
	}
	return invoices, nil
}

// ListCustomerInvoices returns every invoice billed to one customer.
func (s *InvoiceService) ListCustomerInvoices(ctx context.Context, customerID string) ([]*models.Invoice, error) {
	return s.Store.GetByCustomer(ctx, customerID)
}
