package repositories

import (
	"context"

	"invoice-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// Create inserts a new invoice, assigning its id server-side.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.NewString()
	}

	_, err := r.DB.Exec(ctx,
		`INSERT INTO invoices(id, customer_id, amount, status, date)
		 VALUES($1, $2, $3, $4, $5)`,
		invoice.ID, invoice.CustomerID, invoice.Amount, invoice.Status, invoice.Date,
	)
	return err
}

// Update sets the user-editable columns for an invoice. The date column is
// stamped at creation and deliberately absent here.
func (r *InvoiceRepository) Update(ctx context.Context, id string, customerID string, amount int64, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE invoices
		 SET customer_id = $1, amount = $2, status = $3
		 WHERE id = $4`,
		customerID, amount, status, id,
	)
	return err
}

// Delete removes an invoice by id.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	return err
}

// Get retrieves an invoice by ID with its customer's details
func (r *InvoiceRepository) Get(ctx context.Context, id string) (*models.InvoiceWithCustomer, error) {
	var invoice models.InvoiceWithCustomer
	err := r.DB.QueryRow(ctx,
		`SELECT i.id, i.customer_id, i.amount, i.status, i.date,
		        COALESCE(c.name, '') AS customer_name, COALESCE(c.email, '') AS customer_email
		 FROM invoices i
		 LEFT JOIN customers c ON i.customer_id = c.id
		 WHERE i.id = $1`, id,
	).Scan(&invoice.ID, &invoice.CustomerID, &invoice.Amount, &invoice.Status,
		&invoice.Date, &invoice.CustomerName, &invoice.CustomerEmail)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List returns all invoices with customer details, newest first
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.InvoiceWithCustomer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT i.id, i.customer_id, i.amount, i.status, i.date,
		        COALESCE(c.name, '') AS customer_name, COALESCE(c.email, '') AS customer_email
		 FROM invoices i
		 LEFT JOIN customers c ON i.customer_id = c.id
		 ORDER BY i.date DESC, i.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.InvoiceWithCustomer
	for rows.Next() {
		var invoice models.InvoiceWithCustomer
		err := rows.Scan(&invoice.ID, &invoice.CustomerID, &invoice.Amount,
			&invoice.Status, &invoice.Date, &invoice.CustomerName, &invoice.CustomerEmail)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, &invoice)
	}
	return invoices, rows.Err()
}

// GetByCustomer returns all invoices for a customer
func (r *InvoiceRepository) GetByCustomer(ctx context.Context, customerID string) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, customer_id, amount, status, date
		 FROM invoices WHERE customer_id = $1 ORDER BY date DESC`, customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		var invoice models.Invoice
		err := rows.Scan(&invoice.ID, &invoice.CustomerID, &invoice.Amount,
			&invoice.Status, &invoice.Date)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, &invoice)
	}
	return invoices, rows.Err()
}
