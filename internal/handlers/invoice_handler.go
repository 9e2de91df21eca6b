package handlers

import (
	"fmt"
	"net/http"

	"invoice-backend/internal/services"
	"invoice-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
}

func NewInvoiceHandler(s *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Service: s}
}

// CreateInvoice handles the invoice form submission.
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	h.finish(w, r, h.Service.CreateInvoice(r.Context(), r.PostForm))
}

// UpdateInvoice handles the edit form submission for an existing invoice.
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	h.finish(w, r, h.Service.UpdateInvoice(r.Context(), id, r.PostForm))
}

// finish resolves a mutation result. Failed mutations return the form state
// for inline re-rendering; successful ones redirect to the listing. The
// redirect is issued here, at the boundary, so it can never be swallowed by
// the service's persistence error recovery.
func (h *InvoiceHandler) finish(w http.ResponseWriter, r *http.Request, result *services.MutationResult) {
	if result.State != nil {
		status := http.StatusInternalServerError
		if result.State.Errors != nil {
			status = http.StatusUnprocessableEntity
		}
		utils.JSON(w, status, result.State)
		return
	}

	http.Redirect(w, r, result.RedirectTo, http.StatusSeeOther)
}

// DeleteInvoice removes an invoice. The id comes from the path, not a form,
// so there is no validation step; a store error surfaces as-is.
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.DeleteInvoice(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetInvoice retrieves an invoice by ID
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	invoice, err := h.Service.GetInvoice(r.Context(), id)
	if err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	utils.JSON(w, http.StatusOK, invoice)
}

// ListInvoices returns all invoices
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.ListInvoices(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, invoices)
}

// GetCustomerInvoices returns every invoice billed to one customer
func (h *InvoiceHandler) GetCustomerInvoices(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	invoices, err := h.Service.ListCustomerInvoices(r.Context(), customerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, invoices)
}

// InvoicePDF streams a printable PDF of a single invoice
func (h *InvoiceHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	data, err := h.Service.GenerateInvoicePDF(r.Context(), id)
	if err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=invoice-%s.pdf", id))
	w.Write(data)
}
