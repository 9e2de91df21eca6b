package models

import "time"

// Invoice statuses form a closed set; anything else never reaches the store.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Invoice represents a persisted invoice row. Amount is stored as integer
// cents; the form layer works in decimal dollars and converts exactly once
// at write time. Date is stamped by the server at creation and never
// modified afterwards.
type Invoice struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	Date       time.Time `json:"date"`
}

// InvoiceWithCustomer includes the joined customer columns shown on the
// invoice listing.
type InvoiceWithCustomer struct {
	Invoice
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// InvoiceFormState is what a failed mutation returns to the form: field
// errors for inline display plus a summary message. A successful mutation
// never produces one; success is visible only as the redirect.
type InvoiceFormState struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}
