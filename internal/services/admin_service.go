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

// AdminService manages administrator accounts
type AdminService struct {
	repo   *repositories.AdminRepository
	logger *slog.Logger
}

func NewAdminService(repo *repositories.AdminRepository, logger *slog.Logger) *AdminService {
	return &AdminService{repo: repo, logger: logger}
}

// CreateAdminRequest carries the fields for registering an administrator
type CreateAdminRequest struct {
	FullName  string `json:"full_name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	NIDNumber string `json:"nid_number" validate:"required"`
	Age       int    `json:"age" validate:"required,min=18"`
	PhoneNo   string `json:"phone_no" validate:"required"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type UpdateAdminRequest struct {
	FullName string `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Age      int    `json:"age,omitempty" validate:"omitempty,min=18"`
	PhoneNo  string `json:"phone_no,omitempty"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// Create registers a new administrator. Email, NID number and phone number
// must each be unique; the error names the field that collided.
func (s *AdminService) Create(ctx context.Context, req *CreateAdminRequest) (*models.Admin, error) {
	if err := pkgauth.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrBadRequest, err.Error())
	}

	existing, err := s.repo.FindConflicting(ctx, req.Email, req.NIDNumber, req.PhoneNo)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		switch {
		case existing.Email == req.Email:
			return nil, fmt.Errorf("%w: email already in use", models.ErrConflict)
		case existing.NIDNumber == req.NIDNumber:
			return nil, fmt.Errorf("%w: NID number already in use", models.ErrConflict)
		default:
			return nil, fmt.Errorf("%w: phone number already in use", models.ErrConflict)
		}
	}

	passwordHash, err := pkgauth.HashSecret(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	admin := &models.Admin{
		FullName:  req.FullName,
		Email:     req.Email,
		NIDNumber: req.NIDNumber,
		Age:       req.Age,
		PhoneNo:   req.PhoneNo,
		Status:    status,
	}

	created, err := s.repo.Create(ctx, admin, passwordHash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin created", slog.String("admin_id", created.ID))
	return created, nil
}

func (s *AdminService) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AdminService) List(ctx context.Context, limit, offset int) ([]*models.Admin, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *AdminService) Update(ctx context.Context, id string, req *UpdateAdminRequest) (*models.Admin, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		admin.FullName = req.FullName
	}
	if req.Age != 0 {
		admin.Age = req.Age
	}
	if req.PhoneNo != "" {
		admin.PhoneNo = req.PhoneNo
	}
	if req.Status != "" {
		admin.Status = req.Status
	}

	return s.repo.Update(ctx, id, admin)
}

// UpdateStatus flips an administrator between active and inactive
func (s *AdminService) UpdateStatus(ctx context.Context, id, status string) (*models.Admin, error) {
	if status != "active" && status != "inactive" {
		return nil, fmt.Errorf("%w: status must be active or inactive", models.ErrBadRequest)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *AdminService) ListByStatus(ctx context.Context, status string) ([]*models.Admin, error) {
	if status != "active" && status != "inactive" {
		return nil, fmt.Errorf("%w: status must be active or inactive", models.ErrBadRequest)
	}
	return s.repo.ListByStatus(ctx, status)
}

func (s *AdminService) ListOlderThan(ctx context.Context, age int) ([]*models.Admin, error) {
	if age < 0 {
		return nil, fmt.Errorf("%w: age must not be negative", models.ErrBadRequest)
	}
	return s.repo.ListOlderThan(ctx, age)
}

func (s *AdminService) UpdateProfileImage(ctx context.Context, id, path string) (*models.Admin, error) {
	return s.repo.UpdateProfileImage(ctx, id, path)
}

func (s *AdminService) UpdateNIDImage(ctx context.Context, id, path string) (*models.Admin, error) {
	return s.repo.UpdateNIDImage(ctx, id, path)
}

func (s *AdminService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("admin deleted", slog.String("admin_id", id))
	return nil
}
