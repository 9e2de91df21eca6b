package repositories

import (
	"context"

	"invoice-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	_, err := r.DB.Exec(ctx,
		`INSERT INTO customers(id, name, email, image_url) VALUES($1, $2, $3, $4)`,
		customer.ID, customer.Name, customer.Email, customer.ImageURL,
	)
	return err
}

func (r *CustomerRepository) Get(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, email, image_url FROM customers WHERE id = $1`, id,
	).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.ImageURL)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns all customers ordered by name, for the invoice form's picker.
func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, email, image_url FROM customers ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var customer models.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.ImageURL); err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}
	return customers, rows.Err()
}
