package services

import (
	"context"
	"errors"

	"invoice-backend/internal/cache"
	"invoice-backend/internal/models"
	"invoice-backend/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	// Validate input
	if customer.Name == "" || customer.Email == "" {
		return errors.New("name and email are required")
	}
	if err := s.Repo.Create(ctx, customer); err != nil {
		return err
	}
	cache.InvalidateCustomerCaches(ctx)
	return nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Repo.List(ctx)
}
