package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fuelease/fuelease/internal/models"
	"github.com/fuelease/fuelease/internal/repositories"
)

// FuelStationService manages fuel station inventory records
type FuelStationService struct {
	repo      *repositories.FuelStationRepository
	operators *repositories.OperatorRepository
	logger    *slog.Logger
}

func NewFuelStationService(repo *repositories.FuelStationRepository, operators *repositories.OperatorRepository, logger *slog.Logger) *FuelStationService {
	return &FuelStationService{repo: repo, operators: operators, logger: logger}
}

type CreateFuelStationRequest struct {
	FuelType   string `json:"fuel_type" validate:"required,oneof=petrol diesel octane cng"`
	Quantity   int    `json:"quantity" validate:"min=0"`
	Price      *int   `json:"price,omitempty" validate:"omitempty,min=0"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=available unavailable"`
	OperatorID string `json:"operator_id" validate:"required,uuid"`
}

type UpdateFuelStationRequest struct {
	FuelType string `json:"fuel_type,omitempty" validate:"omitempty,oneof=petrol diesel octane cng"`
	Quantity *int   `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Price    *int   `json:"price,omitempty" validate:"omitempty,min=0"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=available unavailable"`
}

// Create records a station entry owned by an existing operator
func (s *FuelStationService) Create(ctx context.Context, req *CreateFuelStationRequest) (*models.FuelStation, error) {
	if _, err := s.operators.GetByID(ctx, req.OperatorID); err != nil {
		return nil, fmt.Errorf("%w: operator not found", models.ErrBadRequest)
	}

	station := &models.FuelStation{
		FuelType:   req.FuelType,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Status:     req.Status,
		OperatorID: req.OperatorID,
	}

	created, err := s.repo.Create(ctx, station)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fuel station created",
		slog.String("station_id", created.ID),
		slog.String("operator_id", created.OperatorID))
	return created, nil
}

func (s *FuelStationService) GetByID(ctx context.Context, id string) (*models.FuelStation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FuelStationService) List(ctx context.Context, limit, offset int) ([]*models.FuelStation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *FuelStationService) ListByOperator(ctx context.Context, operatorID string) ([]*models.FuelStation, error) {
	return s.repo.ListByOperator(ctx, operatorID)
}

func (s *FuelStationService) Update(ctx context.Context, id string, req *UpdateFuelStationRequest) (*models.FuelStation, error) {
	station, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FuelType != "" {
		station.FuelType = req.FuelType
	}
	if req.Quantity != nil {
		station.Quantity = *req.Quantity
	}
	if req.Price != nil {
		station.Price = req.Price
	}
	if req.Status != "" {
		station.Status = req.Status
	}

	return s.repo.Update(ctx, id, station)
}

func (s *FuelStationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("fuel station deleted", slog.String("station_id", id))
	return nil
}
