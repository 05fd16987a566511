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

// OperatorService manages station operator accounts
type OperatorService struct {
	repo   *repositories.OperatorRepository
	logger *slog.Logger
}

func NewOperatorService(repo *repositories.OperatorRepository, logger *slog.Logger) *OperatorService {
	return &OperatorService{repo: repo, logger: logger}
}

type CreateOperatorRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required"`
	PhoneNo     string  `json:"phone_no" validate:"required"`
	JoiningDate string  `json:"joining_date" validate:"required,datetime=2006-01-02"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,min=18"`
	Gender      string  `json:"gender" validate:"required,oneof=male female"`
	Address     *string `json:"address,omitempty"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive on_leave"`
}

type UpdateOperatorRequest struct {
	Name    string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	PhoneNo string  `json:"phone_no,omitempty"`
	Age     *int    `json:"age,omitempty" validate:"omitempty,min=18"`
	Address *string `json:"address,omitempty"`
	Status  string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive on_leave"`
}

func (s *OperatorService) Create(ctx context.Context, req *CreateOperatorRequest) (*models.Operator, error) {
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

	operator := &models.Operator{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNo:     req.PhoneNo,
		JoiningDate: req.JoiningDate,
		Age:         req.Age,
		Gender:      req.Gender,
		Address:     req.Address,
		Status:      req.Status,
	}

	created, err := s.repo.Create(ctx, operator, passwordHash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("operator created", slog.String("operator_id", created.ID))
	return created, nil
}

func (s *OperatorService) GetByID(ctx context.Context, id string) (*models.Operator, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OperatorService) List(ctx context.Context, limit, offset int) ([]*models.Operator, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *OperatorService) Update(ctx context.Context, id string, req *UpdateOperatorRequest) (*models.Operator, error) {
	operator, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		operator.Name = req.Name
	}
	if req.PhoneNo != "" {
		operator.PhoneNo = req.PhoneNo
	}
	if req.Age != nil {
		operator.Age = req.Age
	}
	if req.Address != nil {
		operator.Address = req.Address
	}
	if req.Status != "" {
		operator.Status = req.Status
	}

	return s.repo.Update(ctx, id, operator)
}

func (s *OperatorService) UpdateStatus(ctx context.Context, id, status string) (*models.Operator, error) {
	switch status {
	case "active", "inactive", "on_leave":
	default:
		return nil, fmt.Errorf("%w: status must be active, inactive or on_leave", models.ErrBadRequest)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *OperatorService) UpdateProfileImage(ctx context.Context, id, path string) (*models.Operator, error) {
	return s.repo.UpdateProfileImage(ctx, id, path)
}

func (s *OperatorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("operator deleted", slog.String("operator_id", id))
	return nil
}
