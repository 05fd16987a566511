package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fuelease/fuelease/internal/models"
	"github.com/fuelease/fuelease/internal/repositories"
	pkgauth "github.com/fuelease/fuelease/pkg/auth"
)

// CustomerService manages customer accounts
type CustomerService struct {
	repo   *repositories.CustomerRepository
	logger *slog.Logger
}

func NewCustomerService(repo *repositories.CustomerRepository, logger *slog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

type CreateCustomerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateCustomerRequest struct {
	FullName string `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (s *CustomerService) Create(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error) {
	if err := pkgauth.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrBadRequest, err.Error())
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already in use", models.ErrConflict)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := pkgauth.HashSecret(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := &models.Customer{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		IsActive: true,
	}

	created, err := s.repo.Create(ctx, customer, passwordHash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created", slog.String("customer_id", created.ID))
	return created, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *CustomerService) Update(ctx context.Context, id string, req *UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		customer.FullName = req.FullName
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	return s.repo.Update(ctx, id, customer)
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", slog.String("customer_id", id))
	return nil
}
